package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cinerag/cinerag/config"
	"github.com/cinerag/cinerag/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VectorIndexName is the Atlas vector search index over movie_embedding.
const VectorIndexName = "movie_index"

// MongoStore handles MongoDB operations for both collections: the seeded
// movie documents and the query history cache.
type MongoStore struct {
	client  *mongo.Client
	movies  *mongo.Collection
	history *mongo.Collection
}

func NewMongoStore(cfg *config.Config) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(cfg.MongoDatabase)

	log.Printf("Connected to MongoDB: %s", cfg.MongoDatabase)

	return &MongoStore{
		client:  client,
		movies:  database.Collection(cfg.MoviesCollection),
		history: database.Collection(cfg.HistoryCollection),
	}, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the uniqueness indexes the pipeline relies on:
// one movie document per tmdb_id, and at most one history entry per
// query string even under concurrent identical queries. The vector
// search index itself is managed in Atlas, not here.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.movies.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tmdb_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create tmdb_id index: %w", err)
	}

	_, err = s.history.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "query", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create history query index: %w", err)
	}

	return nil
}

// UpsertMovie inserts or refreshes a seeded movie document, keyed on its
// TMDB identifier.
func (s *MongoStore) UpsertMovie(ctx context.Context, movie models.Movie) error {
	filter := bson.M{"tmdb_id": movie.TMDBID}
	update := bson.M{"$set": bson.M{
		"tmdb_id":         movie.TMDBID,
		"title":           movie.Title,
		"overview":        movie.Overview,
		"release_date":    movie.ReleaseDate,
		"popularity":      movie.Popularity,
		"poster_path":     movie.PosterPath,
		"vote_average":    movie.VoteAverage,
		"vote_count":      movie.VoteCount,
		"genre_ids":       movie.GenreIDs,
		"genre_names":     movie.GenreNames,
		"movie_embedding": movie.Embedding,
		"origin":          movie.Origin,
	}}

	_, err := s.movies.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert movie %d: %w", movie.TMDBID, err)
	}
	return nil
}

// VectorSearch runs an approximate nearest-neighbor search over the movie
// embeddings, applies the advanced filters as a post-match, and projects
// the transport view with the similarity score attached. IDs come back
// as strings via $toString.
func (s *MongoStore) VectorSearch(ctx context.Context, queryEmbedding []float32, filters bson.M, k, numCandidates, limit int) ([]models.MovieProjection, error) {
	if filters == nil {
		filters = bson.M{}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: VectorIndexName},
			{Key: "queryVector", Value: queryEmbedding},
			{Key: "path", Value: "movie_embedding"},
			{Key: "k", Value: k},
			{Key: "numCandidates", Value: numCandidates},
			{Key: "limit", Value: limit},
		}}},
		bson.D{{Key: "$match", Value: filters}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "title", Value: 1},
			{Key: "overview", Value: 1},
			{Key: "poster_path", Value: 1},
			{Key: "vote_average", Value: 1},
			{Key: "vote_count", Value: 1},
			{Key: "release_date", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cursor, err := s.movies.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.MovieProjection
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode vector search results: %w", err)
	}

	return results, nil
}

// SearchByGenrePrefix looks up movies whose genre_names match the genre
// label as a case-insensitive prefix, applies the advanced filters, and
// returns the most popular matches first.
func (s *MongoStore) SearchByGenrePrefix(ctx context.Context, genre string, filters bson.M, limit int) ([]models.MovieProjection, error) {
	match := bson.M{}
	for field, constraint := range filters {
		match[field] = constraint
	}
	match["genre_names"] = bson.M{"$regex": "^" + genre, "$options": "i"}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "popularity", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "title", Value: 1},
			{Key: "overview", Value: 1},
			{Key: "poster_path", Value: 1},
			{Key: "vote_average", Value: 1},
			{Key: "vote_count", Value: 1},
			{Key: "release_date", Value: 1},
			{Key: "genre_names", Value: 1},
		}}},
	}

	cursor, err := s.movies.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("genre search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.MovieProjection
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode genre search results: %w", err)
	}

	return results, nil
}

// FindResult returns the cached result for an exact query string, or nil
// when the query has never been answered.
func (s *MongoStore) FindResult(ctx context.Context, query string) (*models.QueryResult, error) {
	var entry models.HistoryEntry
	err := s.history.FindOne(ctx, bson.M{"query": query}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up query history: %w", err)
	}
	return &entry.Result, nil
}

// SaveResult caches a computed result keyed by the query string. A
// concurrent duplicate insert loses quietly; the unique index guarantees
// a single entry either way.
func (s *MongoStore) SaveResult(ctx context.Context, query string, result *models.QueryResult) error {
	entry := models.HistoryEntry{
		Query:     query,
		Result:    *result,
		CreatedAt: time.Now(),
	}

	_, err := s.history.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to save query history: %w", err)
	}
	return nil
}

// ListQueries returns every previously answered query string in the
// store's natural order.
func (s *MongoStore) ListQueries(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"query": 1})
	cursor, err := s.history.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list query history: %w", err)
	}
	defer cursor.Close(ctx)

	var queries []string
	for cursor.Next(ctx) {
		var entry struct {
			Query string `bson:"query"`
		}
		if err := cursor.Decode(&entry); err != nil {
			log.Printf("Warning: failed to decode history entry: %v", err)
			continue
		}
		queries = append(queries, entry.Query)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return queries, nil
}
