package index

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/document"
)

// State is the lifecycle of the loaded collection.
type State int

const (
	// Uninitialized means Load has not been called.
	Uninitialized State = iota
	// Loading means a fetch is in flight.
	Loading
	// Ready means loading finished, successfully or not.
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loader fetches the search index once and holds the resulting collection.
// A failed load leaves the collection empty; nothing is retried.
type Loader struct {
	source   Source
	recorder Recorder
	logger   *zap.Logger

	mu         sync.RWMutex
	state      State
	collection document.Collection
	err        error
	callbacks  []func(document.Collection)
	done       chan struct{}
}

// NewLoader creates a Loader. recorder can be nil.
func NewLoader(source Source, recorder Recorder, logger *zap.Logger) *Loader {
	return &Loader{
		source:   source,
		recorder: recorder,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Load fetches and parses the index. Only the first call does any work;
// later calls return the current collection without waiting.
func (l *Loader) Load(ctx context.Context) document.Collection {
	l.mu.Lock()
	if l.state != Uninitialized {
		c := l.collection
		l.mu.Unlock()
		return c
	}
	l.state = Loading
	l.mu.Unlock()

	c, err := l.fetch(ctx)
	if err != nil {
		l.logger.Error("Failed to load search index", zap.Error(err))
	} else if c.IsEmpty() {
		l.logger.Warn("Search index loaded", zap.Error(domain.ErrEmptyIndex))
	} else {
		l.logger.Info("Search index loaded", zap.Int("documents", c.Len()))
	}

	l.mu.Lock()
	l.state = Ready
	l.collection = c
	l.err = err
	callbacks := l.callbacks
	l.callbacks = nil
	close(l.done)
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn(c)
	}
	return c
}

func (l *Loader) fetch(ctx context.Context) (document.Collection, error) {
	data, err := l.source.Fetch(ctx)
	if err != nil {
		l.observe(ResultFetchError, 0)
		return document.Collection{}, fmt.Errorf("%w: %w", domain.ErrIndexFetch, err)
	}

	c, err := document.Parse(data)
	if err != nil {
		l.observe(ResultInvalidIndex, 0)
		return document.Collection{}, fmt.Errorf("%w: %w", domain.ErrInvalidIndex, err)
	}

	l.observe(ResultOK, c.Len())
	return c, nil
}

// Collection returns the loaded collection; it is empty until loading finishes.
func (l *Loader) Collection() document.Collection {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.collection
}

// State returns the current lifecycle state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Err returns the error of the finished load, nil on success or before loading.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Done is closed once loading has finished.
func (l *Loader) Done() <-chan struct{} { return l.done }

// OnLoaded registers fn to run with the collection once loading finishes.
// If loading already finished, fn runs immediately.
func (l *Loader) OnLoaded(fn func(document.Collection)) {
	l.mu.Lock()
	if l.state != Ready {
		l.callbacks = append(l.callbacks, fn)
		l.mu.Unlock()
		return
	}
	c := l.collection
	l.mu.Unlock()
	fn(c)
}

func (l *Loader) observe(result string, n int) {
	if l.recorder != nil {
		l.recorder.ObserveLoad(result, n)
	}
}
