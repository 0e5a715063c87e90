package expirereservations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/shell"
)

// Store defines the interface needed by the CommandHandler for persistence.
type Store interface {
	ReservationsDueExpiry(ctx context.Context, asOf time.Time) ([]core.Reservation, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (core.Reservation, error)
	BookByID(ctx context.Context, id uuid.UUID) (core.Book, error)
	ActiveReservationsByBook(ctx context.Context, bookID uuid.UUID) ([]core.Reservation, error)
	Commit(ctx context.Context, changes ...core.Change) error
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	// Candidates is the number of reservations the sweep considered.
	Candidates int

	// Expired is the number of reservations closed.
	Expired int

	// Failed is the number of reservations that could not be closed;
	// failures are logged and left for the next run.
	Failed int
}

// CommandHandler runs the reservation expiry sweep. Each candidate is
// processed under its own conflict retry, so one contended book costs one
// skipped reservation instead of a failed run.
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

// WithLogger sets the logger used for per-reservation failure reporting.
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

// Handle closes every reservation past its expiry date and every pickup
// hold past its window; unclaimed held copies go to the next waiter or
// back on the shelf.
func (h CommandHandler) Handle(ctx context.Context, command Command) (SweepResult, error) {
	reservations, err := h.store.ReservationsDueExpiry(ctx, command.AsOf)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{Candidates: len(reservations)}

	for _, reservation := range reservations {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		expired, expireErr := h.expireReservation(ctx, reservation.ID, command.AsOf)
		switch {
		case expireErr != nil:
			result.Failed++
			h.logger.Warn("reservation expiry sweep: reservation skipped",
				"reservation_id", reservation.ID, "error", expireErr)

			if errors.Is(expireErr, core.ErrConsistencyFault) {
				h.logger.Error("inventory ledger fault detected",
					"command_type", command.CommandType(),
					"reservation_id", reservation.ID,
					"error", expireErr)
			}
		case expired:
			result.Expired++
		}
	}

	return result, nil
}

// expireReservation re-reads the state inside the retry loop so each
// attempt decides on fresh state.
func (h CommandHandler) expireReservation(ctx context.Context, reservationID uuid.UUID, asOf time.Time) (bool, error) {
	var expired bool

	_, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		reservation, err := h.store.ReservationByID(retryCtx, reservationID)
		if err != nil {
			return err
		}

		book, err := h.store.BookByID(retryCtx, reservation.BookID)
		if err != nil {
			return err
		}

		waitlist, err := h.store.ActiveReservationsByBook(retryCtx, reservation.BookID)
		if err != nil {
			return err
		}

		result := Decide(State{
			Reservation: reservation,
			Book:        book,
			Waitlist:    waitlist,
		}, asOf, h.policy)

		if decideErr := result.HasError(); decideErr != nil {
			return decideErr
		}

		if !result.HasChangesToCommit() {
			expired = false
			return nil
		}

		if err := h.store.Commit(retryCtx, result.Changes...); err != nil {
			return err
		}

		expired = true

		return nil
	}, h.retryOptions...)

	return expired, err
}
