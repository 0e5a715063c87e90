package addbookcopies

import (
	"time"

	"github.com/google/uuid"
)

const commandType = "AddBookCopies"

// Command represents the intent to grow or shrink a book's copy count.
// A negative delta retires copies; retiring copies that are out on loan or
// held for pickup is refused.
type Command struct {
	BookID     uuid.UUID
	Delta      int
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for
// observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, delta int, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Delta:      delta,
		OccurredAt: occurredAt,
	}
}
