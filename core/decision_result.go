package core

// DecisionResult represents the outcome of a business decision in a Decide
// function. Construct it only through IdempotentDecision, SuccessDecision,
// or ErrorDecision.
//
// A success carries the change set to commit; an error decision carries
// only the business error (nothing is written for refused operations); an
// idempotent decision means the requested state already holds.
type DecisionResult struct {
	Outcome string
	Changes []Change
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: idempotentOutcome}
}

// SuccessDecision creates a DecisionResult carrying the changes to commit.
func SuccessDecision(changes ...Change) DecisionResult {
	return DecisionResult{Outcome: successOutcome, Changes: changes}
}

// ErrorDecision creates a DecisionResult for a business rule violation.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{Outcome: errorOutcome, Err: err}
}

// HasChangesToCommit returns true when the decision produced mutations.
func (r DecisionResult) HasChangesToCommit() bool {
	return r.Outcome == successOutcome && len(r.Changes) > 0
}

// IsIdempotent returns true when the requested state already holds.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the business error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
