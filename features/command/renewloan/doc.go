// Package renewloan implements the Renew Loan use case.
//
// This feature extends the due date of a member's open loan unless another
// member is waiting on the book. It follows the Read-Decide-Commit pattern
// with proper separation between infrastructure concerns (CommandHandler)
// and pure business logic (Decide function).
package renewloan
