package activeloans

import "time"

const queryType = "ActiveLoans"

// Query represents the intent to list all open loans with their lateness
// as of a point in time.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query with the provided reference time.
func BuildQuery(asOf time.Time) Query {
	return Query{AsOf: asOf}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
