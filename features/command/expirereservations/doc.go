// Package expirereservations implements the reservation expiry sweep.
//
// This feature closes reservations past their expiry date and pickup holds
// past their window; a copy freed by a lapsed hold goes to the next
// waitlist winner or back on the shelf. Each reservation is processed
// under its own conflict retry.
package expirereservations
