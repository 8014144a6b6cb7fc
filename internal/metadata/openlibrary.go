package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// OpenLibraryClient queries the Open Library search API
type OpenLibraryClient struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewOpenLibraryClient creates a new Open Library client. Lookups are
// rate limited client-side; Open Library asks for restraint from
// unauthenticated callers.
func NewOpenLibraryClient() *OpenLibraryClient {
	return &OpenLibraryClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://openlibrary.org",
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// olSearchResponse represents an Open Library search response
type olSearchResponse struct {
	NumFound int           `json:"numFound"`
	Docs     []olSearchDoc `json:"docs"`
}

// olSearchDoc represents a document in search results
type olSearchDoc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	CoverI     int      `json:"cover_i"`
}

// Lookup searches the catalog by free-text query (in practice the
// model-supplied ISBN, passed through opaquely) and returns the first
// matching doc. Returns (nil, nil) when the catalog has no match; an
// error only for transport failures or non-success statuses.
func (c *OpenLibraryClient) Lookup(ctx context.Context, query string) (*CatalogRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("fields", "title,author_name,cover_i")
	params.Set("limit", "1")

	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data olSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	if len(data.Docs) == 0 {
		return nil, nil
	}

	doc := data.Docs[0]
	return &CatalogRecord{
		Title:   doc.Title,
		Author:  firstOrEmpty(doc.AuthorName),
		CoverID: doc.CoverI,
	}, nil
}

// firstOrEmpty returns the first element or empty string
func firstOrEmpty(s []string) string {
	if len(s) > 0 {
		return s[0]
	}
	return ""
}
