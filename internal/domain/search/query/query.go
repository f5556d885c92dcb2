package query

import (
	"strings"
	"unicode/utf8"
)

// MinLength is the shortest normalized query (in runes) that triggers a search.
const MinLength = 2

// Query is a parsed search query (immutable value object).
type Query struct {
	raw        string
	normalized string
	terms      []string
}

// Parse trims and lower-cases raw input and splits it on whitespace runs.
// Repeated terms are kept: each occurrence is scored separately.
func Parse(raw string) Query {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	return Query{
		raw:        raw,
		normalized: normalized,
		terms:      strings.Fields(normalized),
	}
}

// Raw returns the input as given.
func (q *Query) Raw() string { return q.raw }

// Normalized returns the trimmed, lower-cased query text.
func (q *Query) Normalized() string { return q.normalized }

// Terms returns the query terms in input order, duplicates included.
func (q *Query) Terms() []string { return q.terms }

// TooShort reports whether the query is below MinLength and must not be scored.
func (q *Query) TooShort() bool {
	return utf8.RuneCountInString(q.normalized) < MinLength
}

// HighlightTerms returns the terms eligible for highlighting (at least MinLength runes).
func (q *Query) HighlightTerms() []string {
	out := make([]string, 0, len(q.terms))
	for _, t := range q.terms {
		if utf8.RuneCountInString(t) >= MinLength {
			out = append(out, t)
		}
	}
	return out
}
