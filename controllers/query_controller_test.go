package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinerag/cinerag/models"
	"github.com/cinerag/cinerag/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeHistory struct {
	stored  map[string]*models.QueryResult
	queries []string
	listErr error

	findCalls int
	saveCalls int
	savedWith string
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{stored: make(map[string]*models.QueryResult)}
}

func (f *fakeHistory) FindResult(_ context.Context, query string) (*models.QueryResult, error) {
	f.findCalls++
	return f.stored[query], nil
}

func (f *fakeHistory) SaveResult(_ context.Context, query string, result *models.QueryResult) error {
	f.saveCalls++
	f.savedWith = query
	f.stored[query] = result
	return nil
}

func (f *fakeHistory) ListQueries(_ context.Context) ([]string, error) {
	return f.queries, f.listErr
}

type fakeKeywords struct {
	keywords []string
	gotQuery string
	calls    int
}

func (f *fakeKeywords) Extract(query string) ([]string, error) {
	f.calls++
	f.gotQuery = query
	return f.keywords, nil
}

type fakeRetriever struct {
	results       []models.MovieProjection
	err           error
	calls         int
	gotSearchText string
	gotFilters    bson.M
}

func (f *fakeRetriever) RetrieveSimilar(_ context.Context, searchText string, filters bson.M) ([]models.MovieProjection, error) {
	f.calls++
	f.gotSearchText = searchText
	f.gotFilters = filters
	return f.results, f.err
}

type fakeRecommender struct {
	text      string
	err       error
	calls     int
	gotQuery  string
	gotTitles []string
}

func (f *fakeRecommender) Recommend(query string, titles []string) (string, error) {
	f.calls++
	f.gotQuery = query
	f.gotTitles = titles
	return f.text, f.err
}

type controllerFixture struct {
	history     *fakeHistory
	keywords    *fakeKeywords
	retriever   *fakeRetriever
	recommender *fakeRecommender
	router      *gin.Engine
}

func newFixture() *controllerFixture {
	gin.SetMode(gin.TestMode)

	f := &controllerFixture{
		history:     newFakeHistory(),
		keywords:    &fakeKeywords{},
		retriever:   &fakeRetriever{},
		recommender: &fakeRecommender{text: "You might like these."},
	}

	cache := services.NewResultCache(16, time.Minute)
	qc := NewQueryController(f.history, cache, f.keywords, services.NewCategoryMatcher(), f.retriever, f.recommender)

	f.router = gin.New()
	f.router.POST("/api/query", qc.HandleQuery)
	f.router.GET("/api/history", qc.GetHistory)
	return f
}

func postQuery(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleQueryFullPipeline(t *testing.T) {
	f := newFixture()
	f.keywords.keywords = []string{"korean", "sci-fi", "movie"}
	f.retriever.results = []models.MovieProjection{
		{ID: "665f1c2e9b1d8a0001aabbcc", Title: "Snowpiercer", VoteAverage: 8.7, VoteCount: 900},
	}

	w := postQuery(f.router, `{"query": "top popular korean sci-fi movie"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.QueryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.SimilarMovies, 1)
	assert.Equal(t, "665f1c2e9b1d8a0001aabbcc", resp.SimilarMovies[0].ID)
	assert.Equal(t, "You might like these.", resp.Recommendation)

	// category labels prefix the keywords in the embedded search text
	assert.Equal(t, "sci-fi korean korean sci-fi movie", f.retriever.gotSearchText)
	assert.Equal(t, bson.M{
		"vote_average": bson.M{"$gte": services.HighRatingFloor},
		"vote_count":   bson.M{"$gte": services.PopularVotesFloor},
	}, f.retriever.gotFilters)

	assert.Equal(t, []string{"Snowpiercer"}, f.recommender.gotTitles)
	assert.Equal(t, "top popular korean sci-fi movie", f.recommender.gotQuery)

	assert.Equal(t, 1, f.history.saveCalls)
	assert.Equal(t, "top popular korean sci-fi movie", f.history.savedWith)
}

func TestHandleQueryIDsAreStrings(t *testing.T) {
	f := newFixture()
	f.retriever.results = []models.MovieProjection{{ID: "abc123", Title: "Movie"}}

	w := postQuery(f.router, `{"query": "anything"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	movies := raw["similar_movies"].([]interface{})
	first := movies[0].(map[string]interface{})
	_, isString := first["_id"].(string)
	assert.True(t, isString, "_id must serialize as a string")
}

func TestHandleQueryCachedResultShortCircuits(t *testing.T) {
	f := newFixture()
	stored := &models.QueryResult{
		SimilarMovies:  []models.MovieProjection{{ID: "cached", Title: "Cached Movie"}},
		Recommendation: "Stored verbatim.",
	}
	f.history.stored["seen before"] = stored

	w := postQuery(f.router, `{"query": "seen before"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.QueryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, *stored, resp)

	assert.Equal(t, 0, f.keywords.calls, "no keyword extraction on cache hit")
	assert.Equal(t, 0, f.retriever.calls, "no retrieval on cache hit")
	assert.Equal(t, 0, f.recommender.calls, "no LLM call on cache hit")
}

func TestHandleQueryRepeatServedFromMemory(t *testing.T) {
	f := newFixture()
	f.retriever.results = []models.MovieProjection{{ID: "abc", Title: "Movie"}}

	first := postQuery(f.router, `{"query": "repeat me"}`)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, 1, f.history.findCalls)

	second := postQuery(f.router, `{"query": "repeat me"}`)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String(), "repeated query returns identical JSON")
	assert.Equal(t, 1, f.history.findCalls, "in-process cache absorbs the repeat")
	assert.Equal(t, 1, f.retriever.calls)
}

func TestHandleQueryZeroResultsNotCached(t *testing.T) {
	f := newFixture()
	f.retriever.results = nil

	w := postQuery(f.router, `{"query": "matches nothing"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.QueryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.SimilarMovies)
	assert.Empty(t, resp.SimilarMovies)

	assert.Equal(t, 0, f.history.saveCalls, "zero-movie results are never cached")

	// identical query recomputes
	postQuery(f.router, `{"query": "matches nothing"}`)
	assert.Equal(t, 2, f.retriever.calls)
}

func TestHandleQueryMalformedBodyFallsBackToEmptyQuery(t *testing.T) {
	f := newFixture()

	w := postQuery(f.router, `{not json`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, f.keywords.calls)
	assert.Equal(t, "", f.keywords.gotQuery)
	assert.Equal(t, "", f.retriever.gotSearchText)
	assert.Equal(t, bson.M{}, f.retriever.gotFilters)
}

func TestHandleQueryRetrievalFailureIs500(t *testing.T) {
	f := newFixture()
	f.retriever.err = errors.New("store unreachable")

	w := postQuery(f.router, `{"query": "anything"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, f.history.saveCalls)
}

func TestHandleQueryRecommendationFailureIs500(t *testing.T) {
	f := newFixture()
	f.retriever.results = []models.MovieProjection{{ID: "abc", Title: "Movie"}}
	f.recommender.err = errors.New("llm down")

	w := postQuery(f.router, `{"query": "anything"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, f.history.saveCalls)
}

func TestGetHistory(t *testing.T) {
	f := newFixture()
	f.history.queries = []string{"first query", "second query"}

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var queries []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queries))
	assert.Equal(t, []string{"first query", "second query"}, queries)
}

func TestGetHistoryEmpty(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetHistoryFailureIs500(t *testing.T) {
	f := newFixture()
	f.history.listErr = errors.New("store unreachable")

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
