package shell

import "time"

// HandlerResult represents the outcome of a command handler execution.
// It captures both business outcomes (idempotency) and execution metadata
// (retry information) without coupling the handler to specific
// observability implementations.
type HandlerResult struct {
	// Idempotent indicates whether the operation was idempotent (no state
	// change needed). This is a first-class business outcome, not an error.
	Idempotent bool

	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the final error encountered during retries:
	// "none", "concurrency_conflict", "context_canceled",
	// "context_deadline_exceeded", or "other".
	LastErrorType string

	// RetriesExhausted is true when all attempts ended in retryable
	// conflicts; the accompanying error wraps core.ErrBusy.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for successful operations.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newResult(false, retryMetrics)
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newResult(true, retryMetrics)
}

// NewErrorResult creates a HandlerResult for failed operations, preserving
// the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newResult(false, retryMetrics)
}

func newResult(idempotent bool, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
