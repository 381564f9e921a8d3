package services

import (
	"context"
	"fmt"
	"log"

	"github.com/cinerag/cinerag/models"
)

// MovieUpserter is the slice of the store the seeder needs.
type MovieUpserter interface {
	UpsertMovie(ctx context.Context, movie models.Movie) error
}

// Seeder fills the movie collection from TMDB: one sequential pass over
// the popular listing, embedding title+overview for each movie and
// upserting by tmdb_id. A failed per-movie detail fetch logs a warning
// and leaves the origin fields empty rather than aborting the run.
type Seeder struct {
	tmdb     *TMDBClient
	embedder TextEmbedder
	store    MovieUpserter
}

func NewSeeder(tmdb *TMDBClient, embedder TextEmbedder, store MovieUpserter) *Seeder {
	return &Seeder{
		tmdb:     tmdb,
		embedder: embedder,
		store:    store,
	}
}

// Run seeds up to the given number of popular-listing pages, stopping
// early when a page comes back empty.
func (s *Seeder) Run(ctx context.Context, pages int) error {
	genres, err := s.tmdb.FetchGenres()
	if err != nil {
		log.Printf("Failed to fetch genres from TMDB: %v", err)
		genres = map[int]string{}
	} else {
		log.Printf("Fetched %d genres from TMDB", len(genres))
	}

	for page := 1; page <= pages; page++ {
		movies, err := s.tmdb.FetchPopularMovies(page)
		if err != nil {
			log.Printf("Failed to fetch movies from TMDB (page %d): %v", page, err)
			movies = nil
		} else {
			log.Printf("Fetched %d movies from TMDB (page %d)", len(movies), page)
		}

		if len(movies) == 0 {
			break
		}

		if err := s.seedMovies(ctx, movies, genres); err != nil {
			return err
		}
	}

	return nil
}

func (s *Seeder) seedMovies(ctx context.Context, movies []TMDBMovie, genres map[int]string) error {
	for _, movie := range movies {
		var details TMDBMovieDetails
		if d, err := s.tmdb.FetchMovieDetails(movie.ID); err != nil {
			log.Printf("Warning: failed to fetch details for movie %d: %v", movie.ID, err)
		} else {
			details = *d
		}

		countryNames := make([]string, 0, len(details.ProductionCountries))
		for _, country := range details.ProductionCountries {
			countryNames = append(countryNames, country.Name)
		}

		genreNames := make([]string, 0, len(movie.GenreIDs))
		for _, genreID := range movie.GenreIDs {
			if name, ok := genres[genreID]; ok {
				genreNames = append(genreNames, name)
			}
		}

		movieText := fmt.Sprintf("%s %s", movie.Title, movie.Overview)
		embedding, err := s.embedder.GenerateEmbedding(movieText)
		if err != nil {
			return fmt.Errorf("failed to embed movie %d: %w", movie.ID, err)
		}

		doc := models.Movie{
			TMDBID:      movie.ID,
			Title:       movie.Title,
			Overview:    movie.Overview,
			ReleaseDate: movie.ReleaseDate,
			Popularity:  movie.Popularity,
			PosterPath:  movie.PosterPath,
			VoteAverage: movie.VoteAverage,
			VoteCount:   movie.VoteCount,
			GenreIDs:    movie.GenreIDs,
			GenreNames:  genreNames,
			Embedding:   embedding,
			Origin: models.Origin{
				OriginalLanguage: details.OriginalLanguage,
				CountryNames:     countryNames,
			},
		}

		if err := s.store.UpsertMovie(ctx, doc); err != nil {
			return fmt.Errorf("failed to store movie %d: %w", movie.ID, err)
		}
	}

	return nil
}
