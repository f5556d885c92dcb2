package search

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/query"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// Per-field weights added for each query term contained in the field.
const (
	TitleWeight   = 10
	TagWeight     = 5
	ContentWeight = 1
)

// MaxResults caps the number of results returned for any query.
const MaxResults = 20

// Service scores documents of a collection against a query.
type Service struct {
	recorder Recorder
}

// New creates a search service. recorder can be nil.
func New(recorder Recorder) *Service {
	return &Service{recorder: recorder}
}

// Search parses raw input and scores it against the collection.
func (s *Service) Search(c document.Collection, raw string) []result.Result {
	return s.Score(c, query.Parse(raw))
}

// Score returns the matching documents ordered by descending score.
// Ties keep index order. Never more than MaxResults results.
func (s *Service) Score(c document.Collection, q query.Query) []result.Result {
	if q.TooShort() {
		s.observe(OutcomeTooShort, 0)
		return []result.Result{}
	}

	terms := q.Terms()
	results := make([]result.Result, 0)
	for _, doc := range c.All() {
		if score := scoreDocument(&doc, terms); score > 0 {
			results = append(results, result.New(doc, score))
		}
	}

	slices.SortStableFunc(results, func(a, b result.Result) int {
		return b.Score() - a.Score()
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	if len(results) == 0 {
		s.observe(OutcomeEmpty, 0)
	} else {
		s.observe(OutcomeHits, len(results))
	}
	return results
}

// scoreDocument sums field weights per term. Containment is a boolean check per
// field, so a term counts once per field however often it occurs there.
func scoreDocument(doc *document.Document, terms []string) int {
	title := strings.ToLower(doc.Title())
	tags := strings.ToLower(doc.JoinedTags())
	content := strings.ToLower(doc.Content())

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += TitleWeight
		}
		if strings.Contains(tags, term) {
			score += TagWeight
		}
		if strings.Contains(content, term) {
			score += ContentWeight
		}
	}
	return score
}

func (s *Service) observe(outcome string, n int) {
	if s.recorder != nil {
		s.recorder.ObserveQuery(outcome, n)
	}
}
