package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TMDBClient wraps the three TMDB endpoints the seeder needs: the genre
// catalog, the paginated popular listing, and per-movie details.
type TMDBClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewTMDBClient(baseURL, apiKey string) *TMDBClient {
	return &TMDBClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// TMDBMovie is one entry of the popular-movies listing.
type TMDBMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	GenreIDs    []int   `json:"genre_ids"`
	Adult       bool    `json:"adult"`
}

// TMDBMovieDetails carries the fields only the detail endpoint exposes.
type TMDBMovieDetails struct {
	OriginalLanguage    string `json:"original_language"`
	ProductionCountries []struct {
		Name string `json:"name"`
	} `json:"production_countries"`
}

func (c *TMDBClient) get(path string, params url.Values, out interface{}) error {
	params.Set("api_key", c.APIKey)
	params.Set("language", "en-US")

	fullURL := fmt.Sprintf("%s%s?%s", c.BaseURL, path, params.Encode())
	resp, err := c.Client.Get(fullURL)
	if err != nil {
		return fmt.Errorf("failed to call TMDB API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error (status %d) for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}

// FetchGenres returns the genre-id-to-name catalog.
func (c *TMDBClient) FetchGenres() (map[int]string, error) {
	var payload struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.get("/genre/movie/list", url.Values{}, &payload); err != nil {
		return nil, err
	}

	genres := make(map[int]string, len(payload.Genres))
	for _, g := range payload.Genres {
		genres[g.ID] = g.Name
	}
	return genres, nil
}

// FetchPopularMovies returns one page of the popular listing with
// adult-flagged entries dropped.
func (c *TMDBClient) FetchPopularMovies(page int) ([]TMDBMovie, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))

	var payload struct {
		Results []TMDBMovie `json:"results"`
	}
	if err := c.get("/movie/popular", params, &payload); err != nil {
		return nil, err
	}

	filtered := make([]TMDBMovie, 0, len(payload.Results))
	for _, movie := range payload.Results {
		if movie.Adult {
			continue
		}
		filtered = append(filtered, movie)
	}
	return filtered, nil
}

// FetchMovieDetails returns the detail record for one movie.
func (c *TMDBClient) FetchMovieDetails(movieID int) (*TMDBMovieDetails, error) {
	var details TMDBMovieDetails
	if err := c.get(fmt.Sprintf("/movie/%d", movieID), url.Values{}, &details); err != nil {
		return nil, err
	}
	return &details, nil
}
