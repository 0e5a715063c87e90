// Package borrowbook implements the Borrow Book use case.
//
// This feature lends an available copy to an eligible member, or hands over
// a copy earmarked by the member's pickup hold. It follows the
// Read-Decide-Commit pattern with proper separation between infrastructure
// concerns (CommandHandler) and pure business logic (Decide function).
package borrowbook
