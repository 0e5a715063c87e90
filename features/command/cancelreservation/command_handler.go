package cancelreservation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/shell"
)

// Store defines the interface needed by the CommandHandler for persistence.
type Store interface {
	ReservationByID(ctx context.Context, id uuid.UUID) (core.Reservation, error)
	BookByID(ctx context.Context, id uuid.UUID) (core.Book, error)
	ActiveReservationsByBook(ctx context.Context, bookID uuid.UUID) ([]core.Reservation, error)
	Commit(ctx context.Context, changes ...core.Change) error
}

// CommandHandler orchestrates the complete command processing workflow with
// pure business logic and retry. It handles the core cycle:
// Read -> Decide -> Commit. External wrappers handle metrics and tracing.
type CommandHandler struct {
	store        Store
	policy       core.Policy
	logger       shell.Logger
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogger sets the logger used for consistency fault reporting.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(s Store, policy core.Policy, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:  s,
		policy: policy,
		logger: shell.NopLogger{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// Version conflicts on commit are retried with exponential backoff; when all
// attempts are exhausted the returned error wraps core.ErrBusy. Returns
// HandlerResult containing business outcomes and execution metadata.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), err
	}

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	state, err := h.loadState(ctx, command)
	if err != nil {
		return false, err
	}

	result := Decide(state, command, h.policy)

	if result.IsIdempotent() {
		return true, nil
	}

	if decideErr := result.HasError(); decideErr != nil {
		if errors.Is(decideErr, core.ErrConsistencyFault) {
			h.logger.Error("inventory ledger fault detected",
				"command_type", command.CommandType(),
				"reservation_id", command.ReservationID,
				"error", decideErr)
		}

		return false, decideErr
	}

	return false, h.store.Commit(ctx, result.Changes...)
}

func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	reservation, err := h.store.ReservationByID(ctx, command.ReservationID)
	if err != nil {
		return State{}, err
	}

	book, err := h.store.BookByID(ctx, reservation.BookID)
	if err != nil {
		return State{}, err
	}

	waitlist, err := h.store.ActiveReservationsByBook(ctx, reservation.BookID)
	if err != nil {
		return State{}, err
	}

	return State{
		Reservation: reservation,
		Book:        book,
		Waitlist:    waitlist,
	}, nil
}
