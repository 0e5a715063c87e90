package core

import "fmt"

// ReserveCopy takes one available copy off the shelf. It returns the
// adjusted book, or ErrOutOfStock when no copy is available. Callers commit
// the adjusted book together with whatever consumes the copy (a loan or a
// pickup hold) in one change set.
func ReserveCopy(book Book) (Book, error) {
	if book.AvailableCopies <= 0 {
		return Book{}, fmt.Errorf("%w: book %s has 0 of %d copies available",
			ErrOutOfStock, book.ID, book.TotalCopies)
	}

	book.AvailableCopies--

	return book, nil
}

// ReleaseCopy puts one copy back on the shelf. An increment that would
// exceed TotalCopies means a decrement was lost elsewhere; that is a
// ConsistencyFault and must never be clamped away.
func ReleaseCopy(book Book) (Book, error) {
	if book.AvailableCopies >= book.TotalCopies {
		return Book{}, fmt.Errorf("%w: release would put book %s at %d of %d copies",
			ErrConsistencyFault, book.ID, book.AvailableCopies+1, book.TotalCopies)
	}

	book.AvailableCopies++

	return book, nil
}

// AdjustTotalCopies changes a book's total copy count by delta, moving
// AvailableCopies in lockstep. Lowering the total below the number of
// copies currently out (on loan or held) is refused.
func AdjustTotalCopies(book Book, delta int) (Book, error) {
	if delta == 0 {
		return Book{}, fmt.Errorf("%w: copy adjustment must not be zero", ErrInvalidAmount)
	}

	newTotal := book.TotalCopies + delta
	newAvailable := book.AvailableCopies + delta

	if newTotal < 0 || newAvailable < 0 {
		out := book.TotalCopies - book.AvailableCopies
		return Book{}, fmt.Errorf("%w: cannot remove %d copies, %d of %d are out",
			ErrInvalidAmount, -delta, out, book.TotalCopies)
	}

	book.TotalCopies = newTotal
	book.AvailableCopies = newAvailable

	return book, nil
}

// CheckLedgerInvariant verifies 0 <= available <= total. Stores call it as
// a backstop on every commit touching a book.
func CheckLedgerInvariant(book Book) error {
	if book.AvailableCopies < 0 || book.AvailableCopies > book.TotalCopies {
		return fmt.Errorf("%w: book %s has %d available of %d total",
			ErrConsistencyFault, book.ID, book.AvailableCopies, book.TotalCopies)
	}

	return nil
}
