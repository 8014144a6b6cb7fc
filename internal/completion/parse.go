package completion

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Parse errors
var (
	ErrParse   = errors.New("failed to parse openai response")
	ErrNoBooks = errors.New("no books found for the given query")
)

// NoneSentinel is the value the prompt instructs the model to use for
// ISBN when no book matches the query.
const NoneSentinel = "none"

// Candidate is a book the model proposed, prior to catalog enrichment.
// JSON keys match the capitalized field names the prompt asks for.
type Candidate struct {
	ISBN    string `json:"ISBN"`
	Title   string `json:"Title"`
	Author  string `json:"Author"`
	Summary string `json:"Summary"`
}

// ParseCandidates decodes a completion reply as a strict JSON array of
// candidates. No repair is attempted: the model is expected to honor the
// prompt's format contract. Malformed JSON is ErrParse; valid JSON that
// is not a non-empty array, or whose first ISBN is the "none" sentinel,
// is ErrNoBooks. Missing Title/Author/Summary fields are tolerated.
func ParseCandidates(raw string) ([]Candidate, error) {
	var candidates []Candidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		if !json.Valid([]byte(raw)) {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		// Well-formed JSON of the wrong shape means the model had no
		// books to offer, not that the reply was unreadable.
		return nil, ErrNoBooks
	}

	if len(candidates) == 0 || candidates[0].ISBN == NoneSentinel {
		return nil, ErrNoBooks
	}
	return candidates, nil
}
