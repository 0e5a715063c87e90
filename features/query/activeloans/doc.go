// Package activeloans implements the Active Loans query use case.
//
// This feature lists every open loan with its days overdue as of the
// query time. It follows the Read-Project pattern without any command
// processing: a read-only operation that never modifies data.
package activeloans
