package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookscout/internal/models"
)

// ListSavedBooks handles GET /api/saved
func (h *Handler) ListSavedBooks(c *gin.Context) {
	books, err := h.saved.ListBooks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved books"})
		return
	}
	c.JSON(http.StatusOK, books)
}

// SaveBook handles POST /api/saved. Saving a book whose ISBN is already
// in the list is a no-op that answers with a warning instead of creating
// a duplicate.
func (h *Handler) SaveBook(c *gin.Context) {
	var book models.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book payload"})
		return
	}
	if book.ISBN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isbn is required"})
		return
	}

	created, err := h.saved.SaveBook(book)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save book"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"warning": "Book already in your list"})
		return
	}

	c.JSON(http.StatusCreated, book)
}

// RemoveSavedBook handles DELETE /api/saved/:isbn. Removing an ISBN that
// was never saved succeeds without effect.
func (h *Handler) RemoveSavedBook(c *gin.Context) {
	isbn := c.Param("isbn")
	if err := h.saved.RemoveBook(isbn); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove book"})
		return
	}
	c.Status(http.StatusNoContent)
}
