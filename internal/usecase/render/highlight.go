package render

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/kailas-cloud/sitesearch/internal/domain/search/query"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

type tokenKind int

const (
	textToken tokenKind = iota
	openToken
	closeToken
)

type token struct {
	kind tokenKind
	text string
}

// Highlight wraps every case-insensitive occurrence of each query term in <mark>.
//
// Terms are applied one after another. Marks placed by earlier terms split the
// text, so a later term can match inside an earlier mark (producing nested
// marks) but never across or within the marker itself. All text is escaped.
func Highlight(text, rawQuery string) template.HTML {
	q := query.Parse(rawQuery)
	tokens := []token{{kind: textToken, text: text}}
	for _, term := range q.HighlightTerms() {
		tokens = markTerm(tokens, term)
	}
	return emit(tokens)
}

func markTerm(tokens []token, term string) []token {
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))

	out := make([]token, 0, len(tokens))
	for _, t := range tokens {
		if t.kind != textToken {
			out = append(out, t)
			continue
		}

		last := 0
		for _, loc := range re.FindAllStringIndex(t.text, -1) {
			if loc[0] > last {
				out = append(out, token{kind: textToken, text: t.text[last:loc[0]]})
			}
			out = append(out,
				token{kind: openToken},
				token{kind: textToken, text: t.text[loc[0]:loc[1]]},
				token{kind: closeToken},
			)
			last = loc[1]
		}
		if last < len(t.text) {
			out = append(out, token{kind: textToken, text: t.text[last:]})
		}
	}
	return out
}

func emit(tokens []token) template.HTML {
	var b strings.Builder
	for _, t := range tokens {
		switch t.kind {
		case openToken:
			b.WriteString(markOpen)
		case closeToken:
			b.WriteString(markClose)
		default:
			b.WriteString(template.HTMLEscapeString(t.text))
		}
	}
	//nolint:gosec // every text token is escaped above
	return template.HTML(b.String())
}
