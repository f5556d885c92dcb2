package search

// Recorder observes scoring outcomes (metrics).
type Recorder interface {
	ObserveQuery(outcome string, results int)
}

// Query outcomes reported to the Recorder.
const (
	OutcomeTooShort = "too_short"
	OutcomeEmpty    = "empty"
	OutcomeHits     = "hits"
)
