package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_ObserveLoad(t *testing.T) {
	rec := NewRecorder()
	before := testutil.ToFloat64(IndexLoadsTotal.WithLabelValues("ok"))

	rec.ObserveLoad("ok", 42)

	if got := testutil.ToFloat64(IndexLoadsTotal.WithLabelValues("ok")); got != before+1 {
		t.Errorf("index_loads_total{ok} = %f, want %f", got, before+1)
	}
	if got := testutil.ToFloat64(IndexDocuments); got != 42 {
		t.Errorf("index_documents = %f, want 42", got)
	}
}

func TestRecorder_ObserveQuery(t *testing.T) {
	rec := NewRecorder()
	before := testutil.ToFloat64(SearchQueriesTotal.WithLabelValues("hits"))

	rec.ObserveQuery("hits", 3)
	rec.ObserveQuery("too_short", 0)

	if got := testutil.ToFloat64(SearchQueriesTotal.WithLabelValues("hits")); got != before+1 {
		t.Errorf("search_queries_total{hits} = %f, want %f", got, before+1)
	}
	if testutil.CollectAndCount(SearchResults) == 0 {
		t.Error("expected search_results observations")
	}
}

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()
}
