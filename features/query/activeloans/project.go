package activeloans

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

// ProjectActiveLoans implements the query logic to list open loans.
// This is a pure function with no side effects - it takes the loaded loans
// and catalog and returns the projected lending view.
//
// Query Logic:
//
//	GIVEN: The open loans and the catalog
//	WHEN: ActiveLoans query is executed
//	THEN: ActiveLoans struct is returned, ordered by due date (most
//	      overdue first)
//	INCLUDES: Days overdue as of the query time, computed from the due
//	          date regardless of whether the sweep has relabeled the loan
//	EXCLUDES: Completed loans
func ProjectActiveLoans(loans []core.Transaction, books []core.Book, query Query) ActiveLoans {
	titles := make(map[uuid.UUID]string, len(books))
	for _, book := range books {
		titles[book.ID] = book.Title
	}

	infos := make([]LoanInfo, 0, len(loans))
	for _, loan := range loans {
		if !loan.IsOpen() {
			continue
		}

		infos = append(infos, LoanInfo{
			TransactionID: loan.ID,
			MemberID:      loan.MemberID,
			BookID:        loan.BookID,
			BookTitle:     titles[loan.BookID],
			Status:        loan.Status,
			BorrowedAt:    loan.BorrowedAt,
			DueAt:         loan.DueAt,
			DaysOverdue:   core.OverdueDays(loan.DueAt, query.AsOf),
			RenewalCount:  loan.RenewalCount,
		})
	}

	slices.SortFunc(infos, func(a, b LoanInfo) int {
		if c := a.DueAt.Compare(b.DueAt); c != 0 {
			return c
		}

		return strings.Compare(a.TransactionID.String(), b.TransactionID.String())
	})

	return ActiveLoans{
		Loans: infos,
		Count: len(infos),
	}
}
