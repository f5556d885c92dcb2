package sitesearch

import "github.com/kailas-cloud/sitesearch/internal/domain/search/result"

// Result is a scored document.
type Result struct {
	Title   string
	Content string
	Tags    []string
	URL     string
	Date    string
	Score   int
}

func fromResults(results []result.Result) []Result {
	out := make([]Result, 0, len(results))
	for i := range results {
		doc := results[i].Document()
		out = append(out, Result{
			Title:   doc.Title(),
			Content: doc.Content(),
			Tags:    doc.Tags(),
			URL:     doc.URL(),
			Date:    doc.Date(),
			Score:   results[i].Score(),
		})
	}
	return out
}
