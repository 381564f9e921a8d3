package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Origin describes where a movie comes from: the original language code
// plus the production country names from TMDB details.
type Origin struct {
	OriginalLanguage string   `bson:"original_language" json:"original_language"`
	CountryNames     []string `bson:"country_names" json:"country_names"`
}

// Movie is the seeded document stored in the movies collection, keyed by
// tmdb_id. The embedding covers title + overview.
type Movie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TMDBID      int                `bson:"tmdb_id" json:"tmdb_id"`
	Title       string             `bson:"title" json:"title"`
	Overview    string             `bson:"overview" json:"overview"`
	ReleaseDate string             `bson:"release_date" json:"release_date"`
	Popularity  float64            `bson:"popularity" json:"popularity"`
	PosterPath  string             `bson:"poster_path" json:"poster_path"`
	VoteAverage float64            `bson:"vote_average" json:"vote_average"`
	VoteCount   int                `bson:"vote_count" json:"vote_count"`
	GenreIDs    []int              `bson:"genre_ids" json:"genre_ids"`
	GenreNames  []string           `bson:"genre_names" json:"genre_names"`
	Embedding   []float32          `bson:"movie_embedding" json:"-"`
	Origin      Origin             `bson:"origin" json:"origin"`
}

// MovieProjection is the partial view of a movie returned to API clients.
// ID is always the hex string form of the store identifier, never the
// native ObjectID type. Score is set by vector search, GenreNames by
// genre-prefix search.
type MovieProjection struct {
	ID          string   `bson:"_id" json:"_id"`
	Title       string   `bson:"title" json:"title"`
	Overview    string   `bson:"overview" json:"overview"`
	PosterPath  string   `bson:"poster_path" json:"poster_path"`
	VoteAverage float64  `bson:"vote_average" json:"vote_average"`
	VoteCount   int      `bson:"vote_count" json:"vote_count"`
	ReleaseDate string   `bson:"release_date" json:"release_date"`
	GenreNames  []string `bson:"genre_names,omitempty" json:"genre_names,omitempty"`
	Score       float64  `bson:"score,omitempty" json:"score,omitempty"`
}

// QueryResult is what a query computes and what the history collection
// caches verbatim.
type QueryResult struct {
	SimilarMovies  []MovieProjection `bson:"similar_movies" json:"similar_movies"`
	Recommendation string            `bson:"recommendation" json:"recommendation"`
}

// HistoryEntry caches one computed result per distinct query string.
// The query field carries a unique index, so concurrent identical
// queries produce at most one entry.
type HistoryEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Query     string             `bson:"query" json:"query"`
	Result    QueryResult        `bson:"result" json:"result"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type QueryRequest struct {
	Query string `json:"query"`
}
