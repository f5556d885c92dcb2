// Package terminal adapts line-oriented streams to the search controller surfaces.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/kailas-cloud/sitesearch/internal/usecase/render"
)

// Input holds the current query text. Each scanned line replaces it.
type Input struct {
	mu    sync.Mutex
	value string
}

// NewInput creates an empty Input.
func NewInput() *Input {
	return &Input{}
}

// Value returns the current query text.
func (i *Input) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

// SetValue replaces the query text.
func (i *Input) SetValue(v string) {
	i.mu.Lock()
	i.value = v
	i.mu.Unlock()
}

// Scan reads r line by line, storing each line and calling onChange after it.
// It returns nil at EOF and ctx.Err() when ctx is done between lines.
func (i *Input) Scan(ctx context.Context, r io.Reader, onChange func()) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		i.SetValue(sc.Text())
		onChange()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Results writes rendered fragments to a stream.
type Results struct {
	mu    sync.Mutex
	w     io.Writer
	plain bool
}

// NewResults creates a surface writing raw HTML fragments to w.
func NewResults(w io.Writer) *Results {
	return &Results{w: w}
}

// WithPlainText writes one "title\n  url" entry per result instead of HTML.
func (r *Results) WithPlainText() *Results {
	r.plain = true
	return r
}

// Show writes fragment followed by a blank line.
func (r *Results) Show(fragment template.HTML) {
	out := string(fragment)
	if r.plain {
		out = PlainText(fragment)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.w, "%s\n\n", strings.TrimSpace(out))
}

// PlainText flattens a rendered fragment. Fragments without links, like the
// no-results message, become their visible text.
func PlainText(fragment template.HTML) string {
	links, err := render.Links(fragment)
	if err != nil {
		return string(fragment)
	}
	if len(links) == 0 {
		text, err := render.Text(fragment)
		if err != nil {
			return string(fragment)
		}
		return strings.TrimSpace(text)
	}

	var b strings.Builder
	for n, l := range links {
		if n > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s\n   %s", n+1, l.Text, l.Href)
	}
	return b.String()
}
