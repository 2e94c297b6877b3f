package memberstatus

const (
	queryType = "MemberStatus"
)

// Query represents the intent to look at a member's circulation status.
type Query struct {
	UserID string
}

// BuildQuery creates a new Query with the provided member id.
func BuildQuery(userID string) Query {
	return Query{
		UserID: userID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
