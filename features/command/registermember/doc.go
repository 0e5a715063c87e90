// Package registermember implements the Register Member use case.
//
// This feature creates an Active member with a unique membership number and
// email. It follows the Read-Decide-Commit pattern with proper separation
// between infrastructure concerns (CommandHandler) and pure business logic
// (Decide function).
package registermember
