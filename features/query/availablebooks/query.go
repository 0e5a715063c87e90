package availablebooks

const queryType = "AvailableBooks"

// Query represents the intent to list catalog titles with at least one
// copy on the shelf.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
