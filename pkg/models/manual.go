package models

// SearchResult is one ranked page from a manual search.
type SearchResult struct {
	Page  int    `json:"page"`  // 1-based physical page number
	Score int    `json:"score"` // sum of query-token occurrences in the page text
	Text  string `json:"text"`  // full extracted page text
}

// Answer is a synthesized response to a user question.
type Answer struct {
	Text  string `json:"text"`
	Pages []int  `json:"pages"` // cited pages, best match first
}

// UserProfile identifies the person behind a question. Used when filing
// Freshdesk tickets; every field is optional.
type UserProfile struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Agency string `json:"agency,omitempty"`
}

// Snippet returns up to max characters of the result text, flattened to a
// single line. Truncation is a plain character cut, no word-boundary logic.
func (r SearchResult) Snippet(max int) string {
	text := r.Text
	runes := []rune(text)
	if len(runes) > max {
		text = string(runes[:max]) + "..."
	}
	return flatten(text)
}

func flatten(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '\n' || c == '\r' || c == '\t' {
			c = ' '
		}
		out = append(out, c)
	}
	return string(out)
}
