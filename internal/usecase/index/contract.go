package index

import "context"

// Source retrieves the raw search.json payload.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Recorder observes load outcomes (metrics).
type Recorder interface {
	ObserveLoad(result string, documents int)
}

// Load outcomes reported to the Recorder.
const (
	ResultOK           = "ok"
	ResultFetchError   = "fetch_error"
	ResultInvalidIndex = "invalid_index"
)
