package health

import (
	"github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/usecase/index"
)

// IndexChecker exposes the search index load state.
type IndexChecker interface {
	State() index.State
	Err() error
	Collection() document.Collection
}
