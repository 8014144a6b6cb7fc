package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookscout/internal/completion"
	"bookscout/internal/models"
	"bookscout/internal/search"
)

// BookSearcher runs the discovery pipeline for a query
type BookSearcher interface {
	Search(ctx context.Context, query string) ([]models.Book, error)
}

// SavedBookStore persists the user's saved list
type SavedBookStore interface {
	SaveBook(book models.Book) (bool, error)
	RemoveBook(isbn string) error
	ListBooks() ([]models.Book, error)
}

// Handler contains all HTTP handlers
type Handler struct {
	searcher BookSearcher
	saved    SavedBookStore
}

// NewHandler creates a new handler instance
func NewHandler(searcher BookSearcher, saved SavedBookStore) *Handler {
	return &Handler{searcher: searcher, saved: saved}
}

// SearchBooks handles GET /api/search?q=...
// Every pipeline failure maps to a single status + error payload here;
// nothing propagates past this boundary.
func (h *Handler) SearchBooks(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	books, err := h.searcher.Search(c.Request.Context(), q)
	if err != nil {
		status, message := mapSearchError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, books)
}

// mapSearchError translates pipeline sentinel errors into the endpoint's
// status codes and user-facing messages.
func mapSearchError(err error) (int, string) {
	switch {
	case errors.Is(err, completion.ErrMissingAPIKey):
		return http.StatusInternalServerError, "OpenAI API key is not configured"
	case errors.Is(err, completion.ErrNoMessage):
		return http.StatusInternalServerError, "No message returned from OpenAI"
	case errors.Is(err, completion.ErrParse):
		return http.StatusInternalServerError, "Failed to parse OpenAI response"
	case errors.Is(err, completion.ErrNoBooks):
		return http.StatusNotFound, "No books found for the given query"
	case errors.Is(err, search.ErrNoValidData):
		return http.StatusNotFound, "No valid book data found"
	default:
		// Covers completion.ErrUpstream and anything unforeseen.
		return http.StatusInternalServerError, "Failed to fetch data from OpenAI"
	}
}

// HealthCheck returns server health status
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
}

// APIInfo returns API documentation for programmatic clients
func (h *Handler) APIInfo(c *gin.Context) {
	endpoints := []gin.H{
		{"method": "GET", "path": "/health", "description": "Health check"},
		{"method": "GET", "path": "/api", "description": "API documentation"},
		{"method": "GET", "path": "/api/search", "description": "Find books matching a free-text description", "query": "q"},
		{"method": "GET", "path": "/api/saved", "description": "List saved books"},
		{"method": "POST", "path": "/api/saved", "description": "Save a book", "body": "title, author, imageUrl, summary, isbn"},
		{"method": "DELETE", "path": "/api/saved/:isbn", "description": "Remove a saved book"},
	}

	c.JSON(http.StatusOK, gin.H{
		"name":      "bookscout API",
		"endpoints": endpoints,
	})
}
