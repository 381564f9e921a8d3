package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/cinerag/cinerag/models"
	"github.com/cinerag/cinerag/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// HistoryStore persists one result per distinct query string.
type HistoryStore interface {
	FindResult(ctx context.Context, query string) (*models.QueryResult, error)
	SaveResult(ctx context.Context, query string, result *models.QueryResult) error
	ListQueries(ctx context.Context) ([]string, error)
}

// KeywordSource extracts keywords from raw query text.
type KeywordSource interface {
	Extract(query string) ([]string, error)
}

// SimilarMovieRetriever runs the filtered similarity search.
type SimilarMovieRetriever interface {
	RetrieveSimilar(ctx context.Context, searchText string, filters bson.M) ([]models.MovieProjection, error)
}

// Recommender produces the natural-language recommendation.
type Recommender interface {
	Recommend(query string, titles []string) (string, error)
}

type QueryController struct {
	history     HistoryStore
	cache       *services.ResultCache
	keywords    KeywordSource
	matcher     *services.CategoryMatcher
	retriever   SimilarMovieRetriever
	recommender Recommender
}

func NewQueryController(history HistoryStore, cache *services.ResultCache, keywords KeywordSource, matcher *services.CategoryMatcher, retriever SimilarMovieRetriever, recommender Recommender) *QueryController {
	return &QueryController{
		history:     history,
		cache:       cache,
		keywords:    keywords,
		matcher:     matcher,
		retriever:   retriever,
		recommender: recommender,
	}
}

// HandleQuery answers POST /api/query. A malformed or missing body falls
// back to an empty query rather than erroring. Previously answered
// queries return the stored result verbatim without re-running the
// pipeline.
func (qc *QueryController) HandleQuery(c *gin.Context) {
	startTime := time.Now()

	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Query = ""
	}
	query := req.Query
	ctx := c.Request.Context()

	if result, ok := qc.cache.Get(query); ok {
		c.JSON(http.StatusOK, result)
		return
	}

	cached, err := qc.history.FindResult(ctx, query)
	if err != nil {
		log.Printf("History lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up query history"})
		return
	}
	if cached != nil {
		qc.cache.Set(query, *cached)
		c.JSON(http.StatusOK, cached)
		return
	}

	keywords, err := qc.keywords.Extract(query)
	if err != nil {
		log.Printf("Keyword extraction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process query"})
		return
	}

	genreMatch := qc.matcher.MatchGenre(keywords)
	themeMatch := qc.matcher.MatchTheme(keywords)
	originMatch := qc.matcher.MatchOrigin(keywords)
	log.Printf("Query: %q genre=%q theme=%q origin=%q keywords=%d", query, genreMatch, themeMatch, originMatch, len(keywords))

	filters := services.ParseAdvancedFilters(query)
	searchText := services.BuildSearchText(genreMatch, themeMatch, originMatch, keywords)

	similarMovies, err := qc.retriever.RetrieveSimilar(ctx, searchText, filters)
	if err != nil {
		log.Printf("Retrieval failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movies"})
		return
	}
	if similarMovies == nil {
		similarMovies = []models.MovieProjection{}
	}

	titles := make([]string, len(similarMovies))
	for i, movie := range similarMovies {
		titles[i] = movie.Title
	}

	recommendation, err := qc.recommender.Recommend(query, titles)
	if err != nil {
		log.Printf("Recommendation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recommendation"})
		return
	}

	result := models.QueryResult{
		SimilarMovies:  similarMovies,
		Recommendation: recommendation,
	}

	// Zero-result queries are never cached.
	if len(similarMovies) > 0 {
		if err := qc.history.SaveResult(ctx, query, &result); err != nil {
			log.Printf("Warning: failed to save query history: %v", err)
		} else {
			qc.cache.Set(query, result)
		}
	}

	log.Printf("Query answered in %v (%d movies)", time.Since(startTime), len(similarMovies))
	c.JSON(http.StatusOK, result)
}

// GetHistory answers GET /api/history with every previously issued query
// string.
func (qc *QueryController) GetHistory(c *gin.Context) {
	queries, err := qc.history.ListQueries(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list query history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	if queries == nil {
		queries = []string{}
	}
	c.JSON(http.StatusOK, queries)
}
