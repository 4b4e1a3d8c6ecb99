package dynamo

// DynamoDB attribute names referenced by repo expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldRatings   = "ratings"
	fieldAvgRating = "avg_rating"
	fieldVersion   = "version"
	fieldActive    = "active"
	fieldUpdatedAt = "updated_at"
)
