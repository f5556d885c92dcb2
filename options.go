package sitesearch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	indexFile string
	siteURL   string
	indexPath string
	retries   int
	timeout   time.Duration

	excerptLength int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithIndexFile reads the index from a local search.json.
func WithIndexFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexFile = path
	})
}

// WithURL fetches the index from a site root, e.g. https://example.com.
// The index is expected at /search.json unless WithIndexPath says otherwise.
func WithURL(siteURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.siteURL = siteURL
	})
}

// WithIndexPath overrides the index location relative to the site root.
func WithIndexPath(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexPath = path
	})
}

// WithRetries retries a failed index fetch n times. Default: 0.
func WithRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.retries = n
	})
}

// WithTimeout bounds the index fetch. Default: no timeout.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithExcerptLength limits rendered excerpts to n runes.
// Default: 0, the whole content.
func WithExcerptLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.excerptLength = n
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
