// Package membersummary implements the Member Summary query use case.
//
// This feature summarizes one member's circulation standing: loans by
// state, waitlist standing, and the fine ledger. It follows the
// Read-Project pattern without any command processing: a read-only
// operation that never modifies data.
package membersummary
