package controller

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/usecase/index"
)

const (
	// DebounceWindow is the quiet period after the last input change before searching.
	DebounceWindow = 300 * time.Millisecond
	// InitialDelay gives the index load a head start before the URL-supplied search runs.
	InitialDelay = 500 * time.Millisecond
	// QueryParam is the location parameter that seeds the initial search.
	QueryParam = "q"
)

// QueryState is the query-handling state of the controller.
type QueryState int

const (
	// Idle means no search is pending or running.
	Idle QueryState = iota
	// DebouncePending means an input change is waiting for the quiet window to pass.
	DebouncePending
	// Scoring means a search is being scored and rendered.
	Scoring
)

func (s QueryState) String() string {
	switch s {
	case Idle:
		return "idle"
	case DebouncePending:
		return "debounce-pending"
	case Scoring:
		return "scoring"
	default:
		return fmt.Sprintf("QueryState(%d)", int(s))
	}
}

// Controller wires input changes to scoring and rendering. It owns the
// debounce timer and the last executed query. A controller built without an
// input or results surface is inert: every method is a no-op.
type Controller struct {
	input    Input
	results  Results
	loader   Loader
	scorer   Scorer
	renderer Renderer
	clock    clock.WithDelayedExecution
	logger   *zap.Logger

	// runMu serializes scoring passes so a stale pass never renders after a fresh one.
	runMu sync.Mutex

	mu         sync.Mutex
	started    bool
	scoring    bool
	generation uint64
	pending    clock.Timer
	initial    clock.Timer
	lastQuery  string
	hasQuery   bool
	// shownGen is the input generation current when lastQuery was shown.
	shownGen uint64
}

// New creates a controller. Pass a nil interface (not a typed nil pointer)
// for an absent surface.
func New(
	input Input, results Results,
	loader Loader, scorer Scorer, renderer Renderer,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		input:    input,
		results:  results,
		loader:   loader,
		scorer:   scorer,
		renderer: renderer,
		clock:    clock.RealClock{},
		logger:   logger,
	}
}

// WithClock replaces the clock used for debounce and delay timers.
func (c *Controller) WithClock(clk clock.WithDelayedExecution) *Controller {
	c.clock = clk
	return c
}

// Inert reports whether a surface is missing.
func (c *Controller) Inert() bool {
	return c.input == nil || c.results == nil
}

// Start triggers the index load once and, when location carries a q
// parameter, fills the input and schedules a search after InitialDelay.
// The initial pass is not tied to the input generation, so it may render
// after a pass for text the user typed before InitialDelay elapsed.
func (c *Controller) Start(ctx context.Context, location *url.URL) {
	if c.Inert() {
		return
	}

	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.loader.OnLoaded(func(col document.Collection) {
		c.logger.Debug("Index ready", zap.Int("documents", col.Len()))
		c.rerun()
	})
	go c.loader.Load(ctx)

	if location == nil {
		return
	}
	q := location.Query().Get(QueryParam)
	if q == "" {
		return
	}
	c.input.SetValue(q)

	c.mu.Lock()
	c.initial = c.clock.AfterFunc(InitialDelay, func() {
		c.mu.Lock()
		c.initial = nil
		c.scoring = true
		c.mu.Unlock()
		c.run(q, 0, false)
	})
	c.mu.Unlock()
}

// InputChanged restarts the debounce window. Only the last change within
// the window triggers a search, using the input value at that moment.
func (c *Controller) InputChanged() {
	if c.Inert() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending.Stop()
	}
	c.generation++
	gen := c.generation
	c.pending = c.clock.AfterFunc(DebounceWindow, func() {
		c.fire(gen)
	})
}

// Stop cancels pending timers. Searches already running complete.
func (c *Controller) Stop() {
	if c.Inert() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	if c.initial != nil {
		c.initial.Stop()
		c.initial = nil
	}
}

// QueryState returns the current query-handling state.
func (c *Controller) QueryState() QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.scoring:
		return Scoring
	case c.pending != nil, c.initial != nil:
		return DebouncePending
	default:
		return Idle
	}
}

// IndexState returns the state of the collection.
func (c *Controller) IndexState() index.State {
	if c.Inert() {
		return index.Uninitialized
	}
	return c.loader.State()
}

// Query returns the last executed query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQuery
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.scoring = true
	c.mu.Unlock()

	c.run(strings.TrimSpace(c.input.Value()), gen, true)
}

// rerun repeats the last query once the collection is available, unless a
// debounced search is about to run anyway. It waits for any pass in flight
// and is dropped if the input changes while it scores.
func (c *Controller) rerun() {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	c.mu.Lock()
	q, ok := c.lastQuery, c.hasQuery
	pending := c.pending != nil
	gen := c.generation
	fresh := gen == c.shownGen
	c.mu.Unlock()

	// otherwise a newer input is scheduled or in flight and scores the loaded collection itself
	if ok && !pending && fresh {
		c.score(q, gen, true)
	}
}

// run scores and renders q. When checkGen is set the pass is dropped if a
// newer input change arrived while it was scoring.
func (c *Controller) run(q string, gen uint64, checkGen bool) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	c.score(q, gen, checkGen)
}

// score must be called with runMu held.
func (c *Controller) score(q string, gen uint64, checkGen bool) {
	c.setScoring(true)
	defer c.setScoring(false)

	results := c.scorer.Search(c.loader.Collection(), q)
	fragment, err := c.renderer.Render(results, q)
	if err != nil {
		c.logger.Error("Failed to render search results", zap.String("query", q), zap.Error(err))
		return
	}

	c.mu.Lock()
	if checkGen && gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.lastQuery = q
	c.hasQuery = true
	c.shownGen = c.generation
	c.mu.Unlock()

	c.logger.Debug("Search rendered", zap.String("query", q), zap.Int("results", len(results)))
	c.results.Show(fragment)
}

func (c *Controller) setScoring(v bool) {
	c.mu.Lock()
	c.scoring = v
	c.mu.Unlock()
}
