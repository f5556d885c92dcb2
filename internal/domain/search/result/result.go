package result

import "github.com/kailas-cloud/sitesearch/internal/domain/document"

// Result is a single search hit: a document and its positive score.
type Result struct {
	doc   document.Document
	score int
}

// New creates a search result.
func New(doc document.Document, score int) Result {
	return Result{doc: doc, score: score}
}

// Document returns the matched document.
func (r *Result) Document() document.Document { return r.doc }

// Score returns the relevance score.
func (r *Result) Score() int { return r.score }
