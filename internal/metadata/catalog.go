package metadata

import "fmt"

// CoverSize represents cover image size options
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

// CatalogRecord is the best catalog match for a lookup: the fields the
// enrichment step may fall back to when the model left one blank. Fetched
// fresh per lookup and discarded after the merge; never cached.
type CatalogRecord struct {
	Title   string
	Author  string
	CoverID int
}

// CoverURL returns the Open Library covers URL for a cover ID, or ""
// when the record carries no cover reference.
func (r *CatalogRecord) CoverURL(size CoverSize) string {
	if r == nil || r.CoverID == 0 {
		return ""
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-%s.jpg", r.CoverID, size)
}
