// Package reservebook implements the Reserve Book use case.
//
// This feature puts an eligible member on a book's priority waitlist; at
// most one Active reservation may exist per member and book. It follows
// the Read-Decide-Commit pattern with proper separation between
// infrastructure concerns (CommandHandler) and pure business logic (Decide
// function).
package reservebook
