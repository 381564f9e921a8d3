package services

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Thresholds behind the advanced filter triggers.
const (
	HighRatingFloor    = 8.5
	PopularVotesFloor  = 500
	RecentReleaseFloor = "2020-01-01"
	OldReleaseCeiling  = "2000-01-01"
)

// ParseAdvancedFilters derives structured constraints from literal
// trigger substrings in the query. Triggers are additive, and the checks
// run in a fixed order: "recent" and "old" both write release_date, so
// when a query contains both, "old" is applied last and wins.
func ParseAdvancedFilters(query string) bson.M {
	q := strings.ToLower(query)
	filters := bson.M{}

	if strings.Contains(q, "top") || strings.Contains(q, "high-rated") {
		filters["vote_average"] = bson.M{"$gte": HighRatingFloor}
	}
	if strings.Contains(q, "popular") {
		filters["vote_count"] = bson.M{"$gte": PopularVotesFloor}
	}
	if strings.Contains(q, "recent") {
		filters["release_date"] = bson.M{"$gte": RecentReleaseFloor}
	}
	if strings.Contains(q, "old") {
		filters["release_date"] = bson.M{"$lte": OldReleaseCeiling}
	}

	return filters
}
