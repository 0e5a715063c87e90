// Package availablebooks implements the Available Books query use case.
//
// This feature lists catalog titles with at least one copy on the shelf.
// It follows the Read-Project pattern without any command processing: a
// read-only operation that never modifies data.
package availablebooks
