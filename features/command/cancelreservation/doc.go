// Package cancelreservation implements the Cancel Reservation use case.
//
// This feature takes a reservation off the waitlist; cancelling a live
// pickup hold frees the earmarked copy for the next waiter or the shelf.
// It follows the Read-Decide-Commit pattern with proper separation between
// infrastructure concerns (CommandHandler) and pure business logic (Decide
// function).
package cancelreservation
