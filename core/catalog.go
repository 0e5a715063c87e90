package core

import "github.com/google/uuid"

// Author is a catalog record; books reference authors many-to-many.
type Author struct {
	ID      uuid.UUID
	Name    string
	Version uint
}

func (a Author) EntityID() uuid.UUID    { return a.ID }
func (a Author) EntityKind() EntityKind { return KindAuthor }
func (a Author) EntityVersion() uint    { return a.Version }

// Publisher is a catalog record; deleting a publisher nullifies the
// reference on its books rather than deleting them.
type Publisher struct {
	ID      uuid.UUID
	Name    string
	Version uint
}

func (p Publisher) EntityID() uuid.UUID    { return p.ID }
func (p Publisher) EntityKind() EntityKind { return KindPublisher }
func (p Publisher) EntityVersion() uint    { return p.Version }

// Category is a required classification for books. A category with books
// cannot be deleted.
type Category struct {
	ID      uuid.UUID
	Name    string
	Version uint
}

func (c Category) EntityID() uuid.UUID    { return c.ID }
func (c Category) EntityKind() EntityKind { return KindCategory }
func (c Category) EntityVersion() uint    { return c.Version }
