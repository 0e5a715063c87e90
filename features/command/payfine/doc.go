// Package payfine implements the Pay Fine use case.
//
// This feature reduces a member's fine balance and writes a receipt-backed
// payment record; overpayment is refused because the engine keeps no
// credit. It follows the Read-Decide-Commit pattern with proper separation
// between infrastructure concerns (CommandHandler) and pure business logic
// (Decide function).
package payfine
