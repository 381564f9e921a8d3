package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cinerag/cinerag/config"
	"github.com/cinerag/cinerag/controllers"
	"github.com/cinerag/cinerag/services"
	"github.com/cinerag/cinerag/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		// usage: go run main.go seed [pages]
		runSeed()
		return
	}

	runServer()
}

func runServer() {
	cfg := config.Load()

	store, err := storage.NewMongoStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close()
	if err := store.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Note: index creation skipped: %v", err)
	}

	extractor, err := services.NewKeywordExtractor()
	if err != nil {
		log.Fatalf("Failed to initialize keyword extractor: %v", err)
	}

	embedder := services.NewEmbedder(cfg.OllamaURL, cfg.OllamaEmbedModel)
	generator := services.NewGenerator(cfg.OllamaURL, cfg.OllamaLLMModel)

	if err := embedder.TestConnection(); err != nil {
		log.Printf("Warning: Ollama embedder connection test failed: %v", err)
	} else {
		log.Println("Connected to Ollama embeddings")
	}
	if err := generator.TestConnection(); err != nil {
		log.Printf("Warning: Ollama generator connection test failed: %v", err)
	} else {
		log.Println("Connected to Ollama LLM")
	}

	retriever := services.NewRetriever(store, embedder, cfg)
	matcher := services.NewCategoryMatcher()
	cache := services.NewResultCache(cfg.CacheSize, time.Duration(cfg.CacheTTLMinutes)*time.Minute)

	queryController := controllers.NewQueryController(store, cache, extractor, matcher, retriever, generator)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "cinerag",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/query", queryController.HandleQuery)
		api.GET("/history", queryController.GetHistory)
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Movie recommendation server starting on %s", addr)
	log.Printf("MongoDB: %s", cfg.MongoDatabase)
	log.Printf("Ollama: %s", cfg.OllamaURL)
	log.Printf("Environment: %s", cfg.Environment)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func runSeed() {
	log.Println("Starting seed mode...")

	cfg := config.Load()

	store, err := storage.NewMongoStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close()
	if err := store.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Note: index creation skipped: %v", err)
	}

	pages := cfg.SeedPages
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
			pages = n
		}
	}
	log.Printf("Seeding up to %d pages of popular movies", pages)

	tmdb := services.NewTMDBClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)
	embedder := services.NewEmbedder(cfg.OllamaURL, cfg.OllamaEmbedModel)
	seeder := services.NewSeeder(tmdb, embedder, store)

	if err := seeder.Run(context.Background(), pages); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Database seeding completed!")
}
