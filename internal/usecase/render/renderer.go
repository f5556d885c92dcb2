package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// NoResults is the fragment shown when a search has no hits.
const NoResults template.HTML = `<p class="no-results">No results found</p>`

const resultsTemplate = `{{range .}}
<article class="search-result">
  <a {{.Href}} class="search-result-title">{{.Title}}</a>
  <div class="search-result-meta">
    <time>{{.Date}}</time>
    {{range .Tags}}<span class="search-tag">{{.}}</span>{{end}}
  </div>
  <p class="search-result-excerpt">{{.Excerpt}}</p>
</article>
{{end}}`

var tmpl = template.Must(template.New("results").Parse(resultsTemplate))

// view is the template model for one result. Title and Excerpt are pre-escaped by Highlight.
type view struct {
	Href    template.HTMLAttr
	Title   template.HTML
	Date    string
	Tags    []string
	Excerpt template.HTML
}

// Renderer turns ranked results into an HTML fragment.
type Renderer struct {
	excerptLength int
}

// New creates a Renderer that shows whole document content as the excerpt.
func New() *Renderer {
	return &Renderer{}
}

// WithExcerptLength limits excerpts to n runes. n <= 0 keeps the whole content.
func (r *Renderer) WithExcerptLength(n int) *Renderer {
	r.excerptLength = n
	return r
}

// Render builds one article per result, highlighting query terms in title and excerpt.
func (r *Renderer) Render(results []result.Result, rawQuery string) (template.HTML, error) {
	if len(results) == 0 {
		return NoResults, nil
	}

	views := make([]view, len(results))
	for i, res := range results {
		doc := res.Document()
		views[i] = view{
			Href:    hrefAttr(doc.URL()),
			Title:   Highlight(doc.Title(), rawQuery),
			Date:    doc.Date(),
			Tags:    doc.Tags(),
			Excerpt: Highlight(Excerpt(doc.Content(), r.excerptLength), rawQuery),
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, views); err != nil {
		return "", fmt.Errorf("execute results template: %w", err)
	}
	//nolint:gosec // produced by html/template
	return template.HTML(buf.String()), nil
}

// unsafeHref replaces URLs whose scheme is not allowed, like html/template does.
const unsafeHref = "#ZgotmplZ"

// hrefAttr emits an href attribute holding raw verbatim apart from HTML
// escaping, so permalinks with spaces or non-ASCII text survive unchanged.
func hrefAttr(raw string) template.HTMLAttr {
	if !allowedScheme(raw) {
		raw = unsafeHref
	}
	//nolint:gosec // scheme checked and value HTML-escaped
	return template.HTMLAttr(`href="` + template.HTMLEscapeString(raw) + `"`)
}

// allowedScheme accepts relative URLs and http, https and mailto.
func allowedScheme(raw string) bool {
	i := strings.IndexAny(raw, ":/?#")
	if i < 0 || raw[i] != ':' {
		return true
	}
	switch strings.ToLower(raw[:i]) {
	case "http", "https", "mailto":
		return true
	}
	return false
}

// Excerpt cuts content to at most n runes, appending an ellipsis when cut.
func Excerpt(content string, n int) string {
	if n <= 0 || utf8.RuneCountInString(content) <= n {
		return content
	}
	cut := 0
	for i := range content {
		if n == 0 {
			cut = i
			break
		}
		n--
	}
	return strings.TrimRightFunc(content[:cut], unicode.IsSpace) + "…"
}
