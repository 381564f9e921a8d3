package config

import (
	"os"
	"strconv"
)

type Config struct {
	MongoURI          string
	MongoDatabase     string
	MoviesCollection  string
	HistoryCollection string

	OllamaURL        string // "http://localhost:11434"
	OllamaEmbedModel string
	OllamaLLMModel   string

	TMDBBaseURL string
	TMDBAPIKey  string
	SeedPages   int

	Port        string
	Environment string

	TopK             int // nearest neighbors requested from the vector index
	VectorCandidates int // candidate pool scanned by the index
	VectorLimit      int // cap on vector search results
	GenreLimit       int // cap on genre-prefix search results

	CacheSize       int // in-process result cache entries
	CacheTTLMinutes int
}

func Load() *Config {
	getEnv := func(key, defaultValue string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	getEnvInt := func(key string, defaultValue int) int {
		valueStr := os.Getenv(key)
		if valueStr == "" {
			return defaultValue
		}
		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return defaultValue
		}
		return value
	}

	return &Config{
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "movie_app"),
		MoviesCollection:  getEnv("MOVIES_COLLECTION", "movies"),
		HistoryCollection: getEnv("HISTORY_COLLECTION", "search_history"),

		// Ollama
		OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaEmbedModel: getEnv("OLLAMA_EMBEDDING_MODEL", "simple"),
		OllamaLLMModel:   getEnv("OLLAMA_LLM_MODEL", "llama3.2:3b"),

		// TMDB seeding
		TMDBBaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBAPIKey:  getEnv("TMDB_API_KEY", ""),
		SeedPages:   getEnvInt("SEED_PAGES", 500),

		// Application settings
		Port:        getEnv("PORT", "5001"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Retrieval tuning
		TopK:             getEnvInt("TOP_K", 5),
		VectorCandidates: getEnvInt("VECTOR_CANDIDATES", 1000),
		VectorLimit:      getEnvInt("VECTOR_LIMIT", 20),
		GenreLimit:       getEnvInt("GENRE_LIMIT", 150),

		// Result cache
		CacheSize:       getEnvInt("CACHE_SIZE", 1024),
		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 30),
	}
}
