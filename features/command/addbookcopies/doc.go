// Package addbookcopies implements the Add Book Copies use case.
//
// This feature grows or retires a book's physical copy count while keeping
// the inventory ledger consistent. It follows the Read-Decide-Commit
// pattern with proper separation between infrastructure concerns
// (CommandHandler) and pure business logic (Decide function).
package addbookcopies
