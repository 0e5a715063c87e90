package markoverdueloans

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/shell"
)

// Store defines the interface needed by the CommandHandler for persistence.
type Store interface {
	LoansDueBefore(ctx context.Context, asOf time.Time) ([]core.Transaction, error)
	TransactionByID(ctx context.Context, id uuid.UUID) (core.Transaction, error)
	Commit(ctx context.Context, changes ...core.Change) error
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	// Candidates is the number of loans the sweep considered.
	Candidates int

	// Marked is the number of loans relabeled Overdue.
	Marked int

	// Failed is the number of loans that could not be relabeled; failures
	// are logged and left for the next run.
	Failed int
}

// CommandHandler runs the overdue sweep. Each candidate loan is processed
// under its own conflict retry, so a borrower returning a book mid-sweep
// costs one skipped loan instead of a failed run.
type CommandHandler struct {
	store        Store
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

// WithLogger sets the logger used for per-loan failure reporting.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(s Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:  s,
		logger: shell.NopLogger{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle relabels every Active loan past its due date as Overdue. The sweep
// never assesses fines and never touches inventory; it only makes lateness
// visible to reports between the due date and the eventual return.
func (h CommandHandler) Handle(ctx context.Context, command Command) (SweepResult, error) {
	loans, err := h.store.LoansDueBefore(ctx, command.AsOf)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{Candidates: len(loans)}

	for _, loan := range loans {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		marked, markErr := h.markLoan(ctx, loan.ID, command.AsOf)
		switch {
		case markErr != nil:
			result.Failed++
			h.logger.Warn("overdue sweep: loan skipped",
				"loan_id", loan.ID, "error", markErr)
		case marked:
			result.Marked++
		}
	}

	return result, nil
}

// markLoan re-reads the loan inside the retry loop so each attempt decides
// on fresh state.
func (h CommandHandler) markLoan(ctx context.Context, loanID uuid.UUID, asOf time.Time) (bool, error) {
	var marked bool

	_, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		loan, err := h.store.TransactionByID(retryCtx, loanID)
		if err != nil {
			return err
		}

		result := Decide(loan, asOf)

		if !result.HasChangesToCommit() {
			marked = false
			return nil
		}

		if err := h.store.Commit(retryCtx, result.Changes...); err != nil {
			return err
		}

		marked = true

		return nil
	}, h.retryOptions...)

	return marked, err
}
