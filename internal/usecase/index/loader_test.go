package index

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/document"
)

// --- Mocks ---

type mockSource struct {
	data    []byte
	err     error
	calls   int
	release chan struct{}
}

func (m *mockSource) Fetch(ctx context.Context) ([]byte, error) {
	m.calls++
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.data, m.err
}

type mockRecorder struct {
	results []string
	docs    []int
}

func (m *mockRecorder) ObserveLoad(result string, n int) {
	m.results = append(m.results, result)
	m.docs = append(m.docs, n)
}

const validIndex = `[
	{"title":"Intro to Caching","content":"A cache stores...","tags":["cache","systems"],"url":"/p1","date":"2024-01-01"},
	{"title":"Second","content":"more","url":"/p2","date":"2024-01-02"}
]`

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// --- Tests ---

func TestLoad_Success(t *testing.T) {
	rec := &mockRecorder{}
	logger, _ := observedLogger()
	l := NewLoader(&mockSource{data: []byte(validIndex)}, rec, logger)

	if l.State() != Uninitialized {
		t.Fatalf("initial state = %s", l.State())
	}

	c := l.Load(context.Background())
	if c.Len() != 2 {
		t.Fatalf("expected 2 documents, got %d", c.Len())
	}
	if l.State() != Ready {
		t.Errorf("state = %s, want ready", l.State())
	}
	if l.Err() != nil {
		t.Errorf("unexpected error: %v", l.Err())
	}
	if l.Collection().Len() != 2 {
		t.Errorf("Collection().Len() = %d", l.Collection().Len())
	}
	select {
	case <-l.Done():
	default:
		t.Error("Done() should be closed after load")
	}
	if len(rec.results) != 1 || rec.results[0] != ResultOK || rec.docs[0] != 2 {
		t.Errorf("recorder = %+v", rec)
	}
}

func TestLoad_FetchErrorIsLoggedAndEmpty(t *testing.T) {
	rec := &mockRecorder{}
	logger, logs := observedLogger()
	l := NewLoader(&mockSource{err: errors.New("connection refused")}, rec, logger)

	c := l.Load(context.Background())
	if !c.IsEmpty() {
		t.Errorf("expected empty collection, got %d", c.Len())
	}
	if l.State() != Ready {
		t.Errorf("state = %s, want ready", l.State())
	}
	if !errors.Is(l.Err(), domain.ErrIndexFetch) {
		t.Errorf("Err() = %v, want ErrIndexFetch", l.Err())
	}

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 error log, got %d", len(entries))
	}
	if rec.results[0] != ResultFetchError {
		t.Errorf("recorded %q, want %q", rec.results[0], ResultFetchError)
	}
}

func TestLoad_MalformedPayload(t *testing.T) {
	rec := &mockRecorder{}
	logger, logs := observedLogger()
	l := NewLoader(&mockSource{data: []byte("<!doctype html>")}, rec, logger)

	c := l.Load(context.Background())
	if !c.IsEmpty() {
		t.Errorf("expected empty collection, got %d", c.Len())
	}
	if !errors.Is(l.Err(), domain.ErrInvalidIndex) {
		t.Errorf("Err() = %v, want ErrInvalidIndex", l.Err())
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Error("expected the failure to be logged")
	}
	if rec.results[0] != ResultInvalidIndex {
		t.Errorf("recorded %q, want %q", rec.results[0], ResultInvalidIndex)
	}
}

func TestLoad_EmptyIndexWarns(t *testing.T) {
	logger, logs := observedLogger()
	l := NewLoader(&mockSource{data: []byte("[]")}, nil, logger)

	l.Load(context.Background())
	if l.Err() != nil {
		t.Errorf("empty index is not an error, got %v", l.Err())
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Error("expected a warning for an empty index")
	}
}

func TestLoad_OnlyOnce(t *testing.T) {
	src := &mockSource{data: []byte(validIndex)}
	l := NewLoader(src, nil, zap.NewNop())

	l.Load(context.Background())
	c := l.Load(context.Background())

	if src.calls != 1 {
		t.Errorf("source fetched %d times, want 1", src.calls)
	}
	if c.Len() != 2 {
		t.Errorf("second Load should return the loaded collection, got %d", c.Len())
	}
}

func TestLoad_NoRetryAfterFailure(t *testing.T) {
	src := &mockSource{err: errors.New("boom")}
	l := NewLoader(src, nil, zap.NewNop())

	l.Load(context.Background())
	l.Load(context.Background())

	if src.calls != 1 {
		t.Errorf("source fetched %d times, want 1", src.calls)
	}
}

func TestLoad_CollectionEmptyWhileLoading(t *testing.T) {
	src := &mockSource{data: []byte(validIndex), release: make(chan struct{})}
	l := NewLoader(src, nil, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Load(context.Background())
	}()

	// second caller while loading returns immediately
	for l.State() != Loading {
		runtime.Gosched()
	}
	if c := l.Load(context.Background()); !c.IsEmpty() {
		t.Errorf("expected empty collection while loading, got %d", c.Len())
	}
	if !l.Collection().IsEmpty() {
		t.Error("Collection() should be empty while loading")
	}

	close(src.release)
	wg.Wait()

	if l.Collection().Len() != 2 {
		t.Errorf("after load: %d documents", l.Collection().Len())
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	src := &mockSource{data: []byte(validIndex), release: make(chan struct{})}
	l := NewLoader(src, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if c := l.Load(ctx); !c.IsEmpty() {
		t.Errorf("expected empty collection, got %d", c.Len())
	}
	if !errors.Is(l.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", l.Err())
	}
}

func TestOnLoaded(t *testing.T) {
	l := NewLoader(&mockSource{data: []byte(validIndex)}, nil, zap.NewNop())

	var before, after []document.Collection
	l.OnLoaded(func(c document.Collection) { before = append(before, c) })

	if len(before) != 0 {
		t.Fatal("callback ran before load")
	}

	l.Load(context.Background())
	if len(before) != 1 || before[0].Len() != 2 {
		t.Fatalf("pending callback: %+v", before)
	}

	l.OnLoaded(func(c document.Collection) { after = append(after, c) })
	if len(after) != 1 || after[0].Len() != 2 {
		t.Errorf("callback after load should run immediately: %+v", after)
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		Uninitialized: "uninitialized",
		Loading:       "loading",
		Ready:         "ready",
		State(9):      "State(9)",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("String() = %q, want %q", s.String(), want)
		}
	}
}
