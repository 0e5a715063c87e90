package borrowbook

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/shell"
	"github.com/bibliotek-systems/circulation-go/store"
)

// Store defines the interface needed by the CommandHandler for persistence.
type Store interface {
	MemberByID(ctx context.Context, id uuid.UUID) (core.Member, error)
	BookByID(ctx context.Context, id uuid.UUID) (core.Book, error)
	OpenLoanCount(ctx context.Context, memberID uuid.UUID) (int, error)
	OpenLoanFor(ctx context.Context, memberID, bookID uuid.UUID) (core.Transaction, error)
	LiveHoldFor(ctx context.Context, memberID, bookID uuid.UUID, now time.Time) (core.Reservation, error)
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
				"book_id", command.BookID,
				"error", decideErr)
		}

		return false, decideErr
	}

	return false, h.store.Commit(ctx, result.Changes...)
}

// loadState reads the decision inputs. A missing open loan or pickup hold is
// a normal case, not an error.
func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	member, err := h.store.MemberByID(ctx, command.MemberID)
	if err != nil {
		return State{}, err
	}

	book, err := h.store.BookByID(ctx, command.BookID)
	if err != nil {
		return State{}, err
	}

	openLoanCount, err := h.store.OpenLoanCount(ctx, command.MemberID)
	if err != nil {
		return State{}, err
	}

	state := State{
		Member:        member,
		Book:          book,
		OpenLoanCount: openLoanCount,
	}

	openLoan, err := h.store.OpenLoanFor(ctx, command.MemberID, command.BookID)
	switch {
	case err == nil:
		state.OpenLoan = &openLoan
	case !errors.Is(err, store.ErrNotFound):
		return State{}, err
	}

	hold, err := h.store.LiveHoldFor(ctx, command.MemberID, command.BookID, command.OccurredAt)
	switch {
	case err == nil:
		state.Hold = &hold
	case !errors.Is(err, store.ErrNotFound):
		return State{}, err
	}

	return state, nil
}
