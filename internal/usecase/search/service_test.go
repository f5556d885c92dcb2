package search

import (
	"fmt"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/query"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
)

// --- Mocks ---

type mockRecorder struct {
	outcomes []string
	counts   []int
}

func (m *mockRecorder) ObserveQuery(outcome string, n int) {
	m.outcomes = append(m.outcomes, outcome)
	m.counts = append(m.counts, n)
}

// --- Helpers ---

func cachingDoc() document.Document {
	return document.New("Intro to Caching", "A cache stores...", []string{"cache", "systems"}, "/p1", "2024-01-01")
}

func contentOnlyDoc() document.Document {
	return document.New("Databases", "Sometimes a cache helps.", nil, "/p2", "2024-01-02")
}

func assertOrdered(t *testing.T, results []result.Result) {
	t.Helper()
	for i := range results {
		if results[i].Score() <= 0 {
			t.Errorf("result %d has non-positive score %d", i, results[i].Score())
		}
		if i > 0 && results[i].Score() > results[i-1].Score() {
			t.Errorf("result %d score %d > previous %d", i, results[i].Score(), results[i-1].Score())
		}
	}
}

// --- Tests ---

func TestScore_FieldWeights(t *testing.T) {
	svc := New(nil)
	c := document.NewCollection(contentOnlyDoc(), cachingDoc())

	results := svc.Search(c, "cache")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0].Document()
	if first.URL() != "/p1" {
		t.Errorf("expected /p1 first, got %s", first.URL())
	}
	if results[0].Score() != 16 {
		t.Errorf("title+tags+content score: got %d, want 16", results[0].Score())
	}
	if results[1].Score() != 1 {
		t.Errorf("content-only score: got %d, want 1", results[1].Score())
	}
}

func TestScore_RepeatedTermsAreAdditive(t *testing.T) {
	svc := New(nil)
	c := document.NewCollection(cachingDoc())

	single := svc.Search(c, "cache")
	double := svc.Search(c, "cache cache")

	if len(single) != 1 || len(double) != 1 {
		t.Fatalf("expected one result each, got %d and %d", len(single), len(double))
	}
	if double[0].Score() != 32 || double[0].Score() != 2*single[0].Score() {
		t.Errorf("repeated term: got %d, want 32", double[0].Score())
	}
}

func TestScore_ContainmentIsPerField(t *testing.T) {
	svc := New(nil)
	doc := document.New("go go go", "go go go go", []string{"go", "go"}, "/go", "")
	results := svc.Search(document.NewCollection(doc), "go")

	if len(results) != 1 || results[0].Score() != 16 {
		t.Fatalf("expected single score 16, got %+v", results)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	svc := New(nil)
	doc := document.New("KUBERNETES Guide", "", []string{"DevOps"}, "/k", "")
	results := svc.Search(document.NewCollection(doc), "Kubernetes DEVOPS")

	if len(results) != 1 || results[0].Score() != 15 {
		t.Fatalf("expected score 15, got %+v", results)
	}
}

func TestScore_TagsJoinedWithSpace(t *testing.T) {
	svc := New(nil)
	doc := document.New("x", "", []string{"distributed", "systems"}, "/d", "")

	if got := svc.Search(document.NewCollection(doc), "distributed systems"); len(got) != 1 || got[0].Score() != 10 {
		t.Fatalf("expected tag score 10 (5 per term), got %+v", got)
	}
	// the joined string contains "d s" across the tag boundary
	if got := svc.Search(document.NewCollection(doc), "ds"); len(got) != 0 {
		t.Errorf("ds should not match joined tags, got %+v", got)
	}
}

func TestScore_ShortQueries(t *testing.T) {
	svc := New(nil)
	c := document.NewCollection(cachingDoc(), contentOnlyDoc())

	for _, raw := range []string{"", " ", "a", "  c  ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			if got := svc.Search(c, raw); len(got) != 0 {
				t.Errorf("expected no results, got %d", len(got))
			}
		})
	}
}

func TestScore_EmptyCollection(t *testing.T) {
	svc := New(nil)
	results := svc.Search(document.Collection{}, "cache")
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", results)
	}
}

func TestScore_NoMatchesDropped(t *testing.T) {
	svc := New(nil)
	c := document.NewCollection(cachingDoc(), contentOnlyDoc())
	if got := svc.Search(c, "kubernetes"); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestScore_StableOnTies(t *testing.T) {
	svc := New(nil)
	var docs []document.Document
	for i := range 10 {
		docs = append(docs, document.New(fmt.Sprintf("post %d", i), "", nil, fmt.Sprintf("/p%d", i), ""))
	}
	// one higher-scoring document in the middle
	docs[5] = document.New("post 5", "post", []string{"post"}, "/p5", "")

	results := svc.Search(document.NewCollection(docs...), "post")
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	assertOrdered(t, results)

	want := []string{"/p5", "/p0", "/p1", "/p2", "/p3", "/p4", "/p6", "/p7", "/p8", "/p9"}
	for i, r := range results {
		d := r.Document()
		if d.URL() != want[i] {
			t.Errorf("position %d: got %s, want %s", i, d.URL(), want[i])
		}
	}
}

func TestScore_CappedAtMaxResults(t *testing.T) {
	svc := New(nil)
	var docs []document.Document
	for i := range 50 {
		content := ""
		if i%2 == 0 {
			content = "golang"
		}
		docs = append(docs, document.New(fmt.Sprintf("golang %d", i), content, nil, fmt.Sprintf("/p%d", i), ""))
	}

	results := svc.Search(document.NewCollection(docs...), "golang")
	if len(results) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(results))
	}
	assertOrdered(t, results)

	// 25 documents score 11; the cap keeps the first 20 of them in index order
	for i, r := range results {
		d := r.Document()
		if r.Score() != 11 || d.URL() != fmt.Sprintf("/p%d", i*2) {
			t.Errorf("position %d: got %s score %d", i, d.URL(), r.Score())
		}
	}
}

func TestScore_UsesParsedQuery(t *testing.T) {
	svc := New(nil)
	q := query.Parse("  CACHE  ")
	if got := svc.Score(document.NewCollection(cachingDoc()), q); len(got) != 1 || got[0].Score() != 16 {
		t.Errorf("expected one result with score 16, got %+v", got)
	}
}

func TestScore_RecordsOutcomes(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(rec)
	c := document.NewCollection(cachingDoc())

	svc.Search(c, "c")
	svc.Search(c, "nothing")
	svc.Search(c, "cache")

	want := []string{OutcomeTooShort, OutcomeEmpty, OutcomeHits}
	if len(rec.outcomes) != len(want) {
		t.Fatalf("outcomes = %v", rec.outcomes)
	}
	for i := range want {
		if rec.outcomes[i] != want[i] {
			t.Errorf("outcome %d: got %s, want %s", i, rec.outcomes[i], want[i])
		}
	}
	if rec.counts[2] != 1 {
		t.Errorf("hits count = %d, want 1", rec.counts[2])
	}
}
