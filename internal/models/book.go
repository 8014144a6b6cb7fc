package models

// Book is a display-ready book record: a search result merged from the
// model's answer and the Open Library catalog, or an entry in the user's
// saved list. Every field except ISBN may be absent; pointer fields keep
// "not set" distinct from "" and marshal as JSON null.
type Book struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	ImageURL *string `json:"imageUrl"`
	Summary  *string `json:"summary"`
	ISBN     string  `json:"isbn"`
}

// Str returns a pointer to s, or nil when s is empty.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
