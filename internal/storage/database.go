package storage

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"bookscout/internal/models"
)

// Database persists the user's saved-book list
type Database struct {
	db *sql.DB
}

// NewDatabase creates and initializes the SQLite database
func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saved_books (
		isbn TEXT PRIMARY KEY,
		title TEXT,
		author TEXT,
		image_url TEXT,
		summary TEXT,
		saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

// SaveBook adds a book to the saved list, keyed by ISBN. Saving an ISBN
// that is already present leaves the list unchanged; the return value
// reports whether a new row was actually written.
func (d *Database) SaveBook(book models.Book) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO saved_books (isbn, title, author, image_url, summary)
		 VALUES (?, ?, ?, ?, ?)`,
		book.ISBN, book.Title, book.Author, book.ImageURL, book.Summary,
	)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// RemoveBook deletes a saved book by ISBN. Removing an ISBN that was
// never saved is a no-op.
func (d *Database) RemoveBook(isbn string) error {
	_, err := d.db.Exec(`DELETE FROM saved_books WHERE isbn = ?`, isbn)
	return err
}

// ListBooks returns all saved books in the order they were saved
func (d *Database) ListBooks() ([]models.Book, error) {
	rows, err := d.db.Query(
		`SELECT isbn, title, author, image_url, summary FROM saved_books ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var book models.Book
		var title, author, imageURL, summary sql.NullString
		if err := rows.Scan(&book.ISBN, &title, &author, &imageURL, &summary); err != nil {
			return nil, err
		}
		book.Title = nullableStr(title)
		book.Author = nullableStr(author)
		book.ImageURL = nullableStr(imageURL)
		book.Summary = nullableStr(summary)
		books = append(books, book)
	}
	return books, rows.Err()
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

func nullableStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
