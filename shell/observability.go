package shell

import (
	"context"
	"time"
)

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic
// trace correlation. Implementations can derive trace/span IDs from the
// context; the engine itself stays free of any tracing dependency.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting engine performance and
// operational metrics. Implementations bind to any metrics backend.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and
// updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting distributed tracing
// information. This follows the same dependency-free pattern as
// MetricsCollector: any tracing backend can be bound by implementing it.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// Metric and label names emitted by the command handlers and the sweeper.
const (
	CommandHandledMetric  = "circulation_command_handled_total"
	CommandDurationMetric = "circulation_command_duration"
	CommandRetriesMetric  = "circulation_command_retries_total"
	SweepProcessedMetric  = "circulation_sweep_processed_total"
	LabelCommandType      = "command_type"
	LabelOutcome          = "outcome"
	LabelSweep            = "sweep"
)

// NopLogger discards everything; it is the default when no logger is wired.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
