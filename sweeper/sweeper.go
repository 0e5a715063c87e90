// Package sweeper runs the periodic maintenance sweeps: relabeling overdue
// loans and expiring lapsed reservations and pickup holds.
package sweeper

import (
	"context"
	"time"

	"github.com/bibliotek-systems/circulation-go/features/command/expirereservations"
	"github.com/bibliotek-systems/circulation-go/features/command/markoverdueloans"
	"github.com/bibliotek-systems/circulation-go/shell"
)

const defaultInterval = time.Minute

// OverdueHandler runs one overdue sweep pass.
type OverdueHandler interface {
	Handle(ctx context.Context, command markoverdueloans.Command) (markoverdueloans.SweepResult, error)
}

// ExpiryHandler runs one reservation expiry sweep pass.
type ExpiryHandler interface {
	Handle(ctx context.Context, command expirereservations.Command) (expirereservations.SweepResult, error)
}

// Sweeper drives both sweeps on a fixed interval until its context ends.
type Sweeper struct {
	overdue  OverdueHandler
	expiry   ExpiryHandler
	interval time.Duration
	logger   shell.Logger
	metrics  shell.MetricsCollector
	now      func() time.Time
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithInterval sets the time between sweep passes.
func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithLogger sets the logger for sweep reporting.
func WithLogger(logger shell.Logger) Option {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

// WithMetricsCollector sets the collector for sweep counters.
func WithMetricsCollector(metrics shell.MetricsCollector) Option {
	return func(s *Sweeper) {
		s.metrics = metrics
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		s.now = now
	}
}

// NewSweeper creates a Sweeper with optional configuration; the default
// interval is one minute.
func NewSweeper(overdue OverdueHandler, expiry ExpiryHandler, opts ...Option) *Sweeper {
	s := &Sweeper{
		overdue:  overdue,
		expiry:   expiry,
		interval: defaultInterval,
		logger:   shell.NopLogger{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run blocks, sweeping once immediately and then on every interval tick,
// until ctx is done. The context error is returned so callers can tell
// shutdown from failure; sweep errors are logged and never stop the loop.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes one pass of both sweeps.
func (s *Sweeper) RunOnce(ctx context.Context) {
	asOf := s.now()

	overdueResult, err := s.overdue.Handle(ctx, markoverdueloans.BuildCommand(asOf))
	if err != nil {
		s.logger.Error("overdue sweep failed", "error", err)
	} else if overdueResult.Candidates > 0 {
		s.logger.Info("overdue sweep finished",
			"candidates", overdueResult.Candidates,
			"marked", overdueResult.Marked,
			"failed", overdueResult.Failed)
		s.countProcessed("overdue", overdueResult.Marked)
	}

	expiryResult, err := s.expiry.Handle(ctx, expirereservations.BuildCommand(asOf))
	if err != nil {
		s.logger.Error("reservation expiry sweep failed", "error", err)
	} else if expiryResult.Candidates > 0 {
		s.logger.Info("reservation expiry sweep finished",
			"candidates", expiryResult.Candidates,
			"expired", expiryResult.Expired,
			"failed", expiryResult.Failed)
		s.countProcessed("reservation_expiry", expiryResult.Expired)
	}
}

func (s *Sweeper) countProcessed(sweep string, count int) {
	if s.metrics == nil || count == 0 {
		return
	}

	for i := 0; i < count; i++ {
		s.metrics.IncrementCounter(shell.SweepProcessedMetric,
			map[string]string{shell.LabelSweep: sweep})
	}
}
