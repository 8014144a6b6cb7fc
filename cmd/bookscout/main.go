package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"bookscout/internal/api"
	"bookscout/internal/completion"
	"bookscout/internal/metadata"
	"bookscout/internal/search"
	"bookscout/internal/storage"
)

func main() {
	// Command-line flags
	urlFlag := flag.String("url", "", "Server bind address (e.g., :8080 or 0.0.0.0:8080)")
	flag.Parse()

	// Configuration: .env (if present) then environment
	_ = godotenv.Load()
	dataDir := getEnv("BOOKSCOUT_DATA_DIR", "./data")
	dbPath := filepath.Join(dataDir, "bookscout.db")
	port := getEnv("BOOKSCOUT_PORT", "8080")

	// Determine bind address: flag takes precedence, then env, then default
	bindAddr := ":" + port
	if *urlFlag != "" {
		bindAddr = *urlFlag
	}

	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Initialize database
	db, err := storage.NewDatabase(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Wire the search pipeline. An absent OPENAI_API_KEY is reported per
	// request, not at startup, so the saved list keeps working without it.
	openAI := completion.NewClient()
	if !openAI.IsConfigured() {
		log.Printf("Warning: OPENAI_API_KEY is not set; searches will fail until it is configured")
	}
	openLibrary := metadata.NewOpenLibraryClient()
	searchService := search.NewService(openAI, openLibrary)

	// Initialize handlers
	handler := api.NewHandler(searchService, db)

	// Set up Gin router
	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(requestIDMiddleware())

	// Health check
	r.GET("/health", handler.HealthCheck)

	// API routes
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("", handler.APIInfo)
		apiGroup.GET("/search", handler.SearchBooks)

		apiGroup.GET("/saved", handler.ListSavedBooks)
		apiGroup.POST("/saved", handler.SaveBook)
		apiGroup.DELETE("/saved/:isbn", handler.RemoveSavedBook)
	}

	// Serve the single-page frontend
	r.Static("/static", "web/static")
	r.GET("/", func(c *gin.Context) {
		c.File("web/static/index.html")
	})

	// Start server
	log.Printf("bookscout server starting on %s", bindAddr)
	log.Printf("Data directory: %s", dataDir)
	if err := r.Run(bindAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware tags each request so log lines can be correlated
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}
