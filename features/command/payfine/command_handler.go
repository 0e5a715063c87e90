package payfine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/shell"
	"github.com/bibliotek-systems/circulation-go/store"
)

// Store defines the interface needed by the CommandHandler for persistence.
type Store interface {
	MemberByID(ctx context.Context, id uuid.UUID) (core.Member, error)
	Commit(ctx context.Context, changes ...core.Change) error
}

// CommandHandler orchestrates the complete command processing workflow with
// pure business logic and retry. It handles the core cycle:
// Read -> Decide -> Commit. External wrappers handle metrics and tracing.
type CommandHandler struct {
	store        Store
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

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(s Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: s}

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
	member, err := h.store.MemberByID(ctx, command.MemberID)
	if err != nil {
		return false, err
	}

	result := Decide(State{Member: member}, command)

	if result.IsIdempotent() {
		return true, nil
	}

	if decideErr := result.HasError(); decideErr != nil {
		return false, decideErr
	}

	commitErr := h.store.Commit(ctx, result.Changes...)

	// A receipt number that already exists means this payment was recorded
	// before; the retransmission is a no-op, not a failure.
	if command.ReceiptNumber != "" && errors.Is(commitErr, store.ErrUniqueViolation) {
		return true, nil
	}

	return false, commitErr
}
