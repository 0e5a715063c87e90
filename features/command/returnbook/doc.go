// Package returnbook implements the Return Book use case.
//
// This feature completes a member's open loan: a late return assesses the
// fine onto the member's balance, and the freed copy is handed to the
// reservation waitlist winner as a pickup hold or put back on the shelf.
// It follows the Read-Decide-Commit pattern with proper separation between
// infrastructure concerns (CommandHandler) and pure business logic (Decide
// function).
package returnbook
