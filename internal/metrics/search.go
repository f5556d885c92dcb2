package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and index Prometheus metrics.
var (
	IndexLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesearch",
			Name:      "index_loads_total",
			Help:      "Total number of search index loads by result",
		},
		[]string{"result"}, // "ok" / "fetch_error" / "invalid_index"
	)

	IndexDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sitesearch",
			Name:      "index_documents",
			Help:      "Number of documents in the loaded search index",
		},
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitesearch",
			Name:      "search_queries_total",
			Help:      "Total number of scored queries by outcome",
		},
		[]string{"outcome"}, // "too_short" / "empty" / "hits"
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sitesearch",
			Name:      "search_results",
			Help:      "Number of results returned per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 20},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexLoadsTotal)
	prometheus.MustRegister(IndexDocuments)
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(SearchResults)
	searchMetricsRegistered = true
}

// Recorder feeds index and search outcomes into Prometheus.
type Recorder struct{}

// NewRecorder creates a Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// ObserveLoad implements index.Recorder.
func (*Recorder) ObserveLoad(result string, documents int) {
	IndexLoadsTotal.WithLabelValues(result).Inc()
	IndexDocuments.Set(float64(documents))
}

// ObserveQuery implements search.Recorder.
func (*Recorder) ObserveQuery(outcome string, results int) {
	SearchQueriesTotal.WithLabelValues(outcome).Inc()
	SearchResults.Observe(float64(results))
}
