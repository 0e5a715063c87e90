// Package core contains the pure domain model of the circulation engine:
// the persisted entity types, the circulation business rules (eligibility,
// inventory, reservation ordering, fine accrual), the error taxonomy, and
// the DecisionResult/Change types that command slices use to describe
// state transitions.
//
// Nothing in this package performs I/O. All functions are deterministic:
// they take the current state and a point in time and return either new
// entity values or a business error. Side effects are expressed as Change
// values which a store commits atomically.
package core
