package controller

import (
	"context"
	"html/template"

	"github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	"github.com/kailas-cloud/sitesearch/internal/usecase/index"
)

// Input is the search box the user types into.
type Input interface {
	Value() string
	SetValue(v string)
}

// Results is the surface rendered results are shown on.
// Show must not call back into the Controller.
type Results interface {
	Show(fragment template.HTML)
}

// Loader provides the search collection.
type Loader interface {
	Load(ctx context.Context) document.Collection
	Collection() document.Collection
	OnLoaded(fn func(document.Collection))
	State() index.State
}

// Scorer ranks a collection against raw query text.
type Scorer interface {
	Search(c document.Collection, raw string) []result.Result
}

// Renderer turns results into an HTML fragment.
type Renderer interface {
	Render(results []result.Result, rawQuery string) (template.HTML, error)
}
