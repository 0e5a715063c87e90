package membersummary

import (
	"time"

	"github.com/google/uuid"
)

const queryType = "MemberSummary"

// Query represents the intent to summarize one member's circulation
// standing as of a point in time.
type Query struct {
	MemberID uuid.UUID
	AsOf     time.Time
}

// BuildQuery creates a new Query with the provided member ID and
// reference time.
func BuildQuery(memberID uuid.UUID, asOf time.Time) Query {
	return Query{
		MemberID: memberID,
		AsOf:     asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
