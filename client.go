package sitesearch

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	indexrepo "github.com/kailas-cloud/sitesearch/internal/repository/index"
	"github.com/kailas-cloud/sitesearch/internal/transport/fetch"
	"github.com/kailas-cloud/sitesearch/internal/usecase/controller"
	"github.com/kailas-cloud/sitesearch/internal/usecase/index"
	"github.com/kailas-cloud/sitesearch/internal/usecase/render"
	searchuc "github.com/kailas-cloud/sitesearch/internal/usecase/search"
)

// Input is the surface the user types queries into.
type Input = controller.Input

// Results is the surface rendered fragments are shown on.
type Results = controller.Results

// Controller drives debounced search-as-you-type between two surfaces.
type Controller = controller.Controller

// Client is the sitesearch entry point.
type Client struct {
	loader   *index.Loader
	search   *searchuc.Service
	renderer *render.Renderer
	logger   *zap.Logger
	obs      *observer
}

// New creates a Client. Exactly one of WithIndexFile and WithURL is required.
// The index is not read until Load or Attach.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{indexPath: fetch.DefaultPath}
	for _, o := range opts {
		o.apply(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	source, err := newSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		loader:   index.NewLoader(source, nil, logger),
		search:   searchuc.New(nil),
		renderer: render.New().WithExcerptLength(cfg.excerptLength),
		logger:   logger,
		obs:      obs,
	}, nil
}

func newSource(cfg *clientConfig, logger *zap.Logger) (index.Source, error) {
	switch {
	case cfg.indexFile != "" && cfg.siteURL != "":
		return nil, errors.New("sitesearch: WithIndexFile and WithURL are mutually exclusive")
	case cfg.indexFile != "":
		return indexrepo.NewFileSource(cfg.indexFile), nil
	case cfg.siteURL != "":
		src, err := fetch.NewSource(&fetch.Config{
			BaseURL: cfg.siteURL,
			Path:    cfg.indexPath,
			Retries: cfg.retries,
			Timeout: cfg.timeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("sitesearch: %w", err)
		}
		return src, nil
	default:
		return nil, errors.New("sitesearch: index source required (use WithIndexFile or WithURL)")
	}
}

// Load reads the index once. A failed load leaves the client with an empty
// index and returns the cause; later calls return the same result.
func (c *Client) Load(ctx context.Context) error {
	start := time.Now()
	c.loader.Load(ctx)
	err := c.loader.Err()
	c.obs.observe("load", start, err)
	return err
}

// Loaded reports whether loading has finished, successfully or not.
func (c *Client) Loaded() bool {
	return c.loader.State() == index.Ready
}

// Len returns the number of indexed documents.
func (c *Client) Len() int {
	return c.loader.Collection().Len()
}

// Search scores the index against q. Queries shorter than two characters
// and an unloaded index give no results.
func (c *Client) Search(q string) []Result {
	start := time.Now()
	results := c.search.Search(c.loader.Collection(), q)
	c.obs.observe("search", start, nil)
	return fromResults(results)
}

// Render searches q and renders the results as an HTML fragment.
func (c *Client) Render(q string) (template.HTML, error) {
	start := time.Now()
	fragment, err := c.renderer.Render(c.search.Search(c.loader.Collection(), q), q)
	c.obs.observe("render", start, err)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return fragment, nil
}

// Attach creates a controller showing results for input. The controller is
// inert when either surface is nil. Start loads the index if needed.
func (c *Client) Attach(input Input, results Results) *Controller {
	return controller.New(input, results, c.loader, c.search, c.renderer, c.logger)
}
