package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cinerag/cinerag/config"
	"github.com/cinerag/cinerag/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MovieSearcher is the slice of the store the retriever needs.
type MovieSearcher interface {
	VectorSearch(ctx context.Context, queryEmbedding []float32, filters bson.M, k, numCandidates, limit int) ([]models.MovieProjection, error)
	SearchByGenrePrefix(ctx context.Context, genre string, filters bson.M, limit int) ([]models.MovieProjection, error)
}

// TextEmbedder abstracts the embedding service for testing.
type TextEmbedder interface {
	GenerateEmbedding(text string) ([]float32, error)
}

// Retriever finds candidate movies for a query, either by embedding the
// search text and running a similarity search, or by a genre-prefix
// structured lookup.
type Retriever struct {
	store    MovieSearcher
	embedder TextEmbedder

	topK          int
	numCandidates int
	vectorLimit   int
	genreLimit    int
}

func NewRetriever(store MovieSearcher, embedder TextEmbedder, cfg *config.Config) *Retriever {
	return &Retriever{
		store:         store,
		embedder:      embedder,
		topK:          cfg.TopK,
		numCandidates: cfg.VectorCandidates,
		vectorLimit:   cfg.VectorLimit,
		genreLimit:    cfg.GenreLimit,
	}
}

// RetrieveSimilar embeds the search text and runs a filtered similarity
// search. An unreachable store or embedding service fails the whole
// request; there is no partial-result fallback.
func (r *Retriever) RetrieveSimilar(ctx context.Context, searchText string, filters bson.M) ([]models.MovieProjection, error) {
	queryEmbedding, err := r.embedder.GenerateEmbedding(searchText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := r.store.VectorSearch(ctx, queryEmbedding, filters, r.topK, r.numCandidates, r.vectorLimit)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return results, nil
}

// RetrieveByGenre looks up movies by genre-name prefix, most popular
// first.
func (r *Retriever) RetrieveByGenre(ctx context.Context, genre string, filters bson.M) ([]models.MovieProjection, error) {
	results, err := r.store.SearchByGenrePrefix(ctx, genre, filters, r.genreLimit)
	if err != nil {
		return nil, fmt.Errorf("genre search failed: %w", err)
	}

	return results, nil
}

// BuildSearchText combines resolved category labels with the extracted
// keywords into the text that gets embedded. Empty labels are skipped;
// with no labels at all the keywords stand alone.
func BuildSearchText(genre, theme, origin string, keywords []string) string {
	parts := make([]string, 0, 4)
	for _, label := range []string{genre, theme, origin} {
		if label != "" {
			parts = append(parts, label)
		}
	}
	if len(keywords) > 0 {
		parts = append(parts, strings.Join(keywords, " "))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
