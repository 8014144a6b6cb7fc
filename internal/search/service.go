// Package search drives the discovery pipeline: model completion,
// candidate parsing, then catalog enrichment of the top matches.
package search

import (
	"context"
	"errors"
	"log"
	"sync"

	"bookscout/internal/completion"
	"bookscout/internal/metadata"
	"bookscout/internal/models"
)

// ErrNoValidData means the pipeline ran but every candidate was skipped
// or failed enrichment, leaving nothing to return.
var ErrNoValidData = errors.New("no valid book data found")

// maxCandidates caps how many model candidates are enriched per search.
const maxCandidates = 3

// Completer produces the model's raw reply for a query
type Completer interface {
	Complete(ctx context.Context, query string) (string, error)
}

// Catalog looks up bibliographic data for an identifier
type Catalog interface {
	Lookup(ctx context.Context, query string) (*metadata.CatalogRecord, error)
}

// Service orchestrates a book search end to end
type Service struct {
	completer Completer
	catalog   Catalog
}

// NewService creates a search service
func NewService(completer Completer, catalog Catalog) *Service {
	return &Service{completer: completer, catalog: catalog}
}

// Search runs the full pipeline for a validated non-empty query. The
// completion call must finish before any catalog lookup starts, since
// the lookups are keyed by the model's output.
func (s *Service) Search(ctx context.Context, query string) ([]models.Book, error) {
	raw, err := s.completer.Complete(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates, err := completion.ParseCandidates(raw)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, candidates)
}

// enrich looks up the first three candidates in the catalog and merges
// each pair into a Book. The lookups are independent of one another and
// run concurrently; the indexed results slice restores the model's
// relevance order afterwards, which is trusted and never re-sorted.
// A failed lookup drops only that candidate.
func (s *Service) enrich(ctx context.Context, candidates []completion.Candidate) ([]models.Book, error) {
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	results := make([]*models.Book, len(candidates))
	var wg sync.WaitGroup
	for i, cand := range candidates {
		if cand.ISBN == "" || cand.ISBN == completion.NoneSentinel {
			continue
		}

		wg.Add(1)
		go func(i int, cand completion.Candidate) {
			defer wg.Done()
			record, err := s.catalog.Lookup(ctx, cand.ISBN)
			if err != nil {
				log.Printf("catalog lookup failed for %q: %v", cand.ISBN, err)
				return
			}
			results[i] = merge(cand, record)
		}(i, cand)
	}
	wg.Wait()

	books := make([]models.Book, 0, len(candidates))
	for _, b := range results {
		if b != nil {
			books = append(books, *b)
		}
	}

	if len(books) == 0 {
		return nil, ErrNoValidData
	}
	return books, nil
}

// merge combines a candidate with its catalog record. Model-provided
// fields win; the catalog fills gaps. The cover URL comes only from the
// catalog, since the model never supplies one. record may be nil.
func merge(cand completion.Candidate, record *metadata.CatalogRecord) *models.Book {
	book := &models.Book{
		Title:   models.Str(cand.Title),
		Author:  models.Str(cand.Author),
		Summary: models.Str(cand.Summary),
		ISBN:    cand.ISBN,
	}
	if record != nil {
		if book.Title == nil {
			book.Title = models.Str(record.Title)
		}
		if book.Author == nil {
			book.Author = models.Str(record.Author)
		}
	}
	book.ImageURL = models.Str(record.CoverURL(metadata.CoverMedium))
	return book
}
