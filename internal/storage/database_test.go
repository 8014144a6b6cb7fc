package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookscout/internal/models"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	tmpFile, err := os.CreateTemp("", "bookscout-test-*.db")
	require.NoError(t, err)
	tmpFile.Close()

	db, err := NewDatabase(tmpFile.Name())
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(tmpFile.Name())
	}

	return db, cleanup
}

func sampleBook(isbn string) models.Book {
	return models.Book{
		Title:    models.Str("Harry Potter and the Philosopher's Stone"),
		Author:   models.Str("J.K. Rowling"),
		ImageURL: models.Str("https://covers.openlibrary.org/b/id/12345-M.jpg"),
		Summary:  models.Str("A boy discovers he is a wizard."),
		ISBN:     isbn,
	}
}

func TestSaveAndListBooks(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	book := sampleBook("9780747532699")
	created, err := db.SaveBook(book)
	require.NoError(t, err)
	assert.True(t, created)

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.Equal(t, book.ISBN, books[0].ISBN)
	assert.Equal(t, *book.Title, *books[0].Title)
	assert.Equal(t, *book.Author, *books[0].Author)
	assert.Equal(t, *book.ImageURL, *books[0].ImageURL)
	assert.Equal(t, *book.Summary, *books[0].Summary)
}

func TestSaveBookDuplicateIsNoOp(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := db.SaveBook(sampleBook("9780747532699"))
	require.NoError(t, err)
	assert.True(t, created)

	// Same ISBN with different fields must not change the stored row
	dupe := sampleBook("9780747532699")
	dupe.Title = models.Str("A Different Title")
	created, err = db.SaveBook(dupe)
	require.NoError(t, err)
	assert.False(t, created)

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Harry Potter and the Philosopher's Stone", *books[0].Title)
}

func TestRemoveBook(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.SaveBook(sampleBook("111"))
	require.NoError(t, err)
	_, err = db.SaveBook(sampleBook("222"))
	require.NoError(t, err)

	require.NoError(t, db.RemoveBook("111"))

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "222", books[0].ISBN)
}

func TestRemoveBookMissingIsNoOp(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.SaveBook(sampleBook("111"))
	require.NoError(t, err)

	require.NoError(t, db.RemoveBook("does-not-exist"))

	books, err := db.ListBooks()
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestListBooksPreservesSaveOrder(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, isbn := range []string{"333", "111", "222"} {
		_, err := db.SaveBook(sampleBook(isbn))
		require.NoError(t, err)
	}

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "333", books[0].ISBN)
	assert.Equal(t, "111", books[1].ISBN)
	assert.Equal(t, "222", books[2].ISBN)
}

func TestNullableFieldsRoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	book := models.Book{ISBN: "444", Title: models.Str("Only a Title")}
	_, err := db.SaveBook(book)
	require.NoError(t, err)

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.Equal(t, "Only a Title", *books[0].Title)
	assert.Nil(t, books[0].Author)
	assert.Nil(t, books[0].ImageURL)
	assert.Nil(t, books[0].Summary)
}

func TestListBooksEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	books, err := db.ListBooks()
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NotNil(t, books, "empty list must marshal as [], not null")
}
