package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/version"
)

// DefaultPath is the well-known location of the search index on a site.
const DefaultPath = "/search.json"

// Source fetches search.json over HTTP.
type Source struct {
	client    *retryablehttp.Client
	url       string
	userAgent string
}

// Config holds the index fetch settings.
type Config struct {
	BaseURL   string        // site root, e.g. https://example.com
	Path      string        // default /search.json
	Retries   int           // transport retries, 0 = single attempt
	RetryWait time.Duration // minimum wait between retries
	Timeout   time.Duration // 0 = no timeout
	Logger    *zap.Logger
}

// NewSource creates an HTTP index source.
func NewSource(cfg *Config) (*Source, error) {
	indexURL, err := resolveURL(cfg.BaseURL, cfg.Path)
	if err != nil {
		return nil, err
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Retries
	if cfg.RetryWait > 0 {
		client.RetryWaitMin = cfg.RetryWait
		client.RetryWaitMax = 4 * cfg.RetryWait
	}
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = nil
	if cfg.Logger != nil {
		client.Logger = &leveledLogger{sugar: cfg.Logger.Sugar()}
	}

	return &Source{
		client:    client,
		url:       indexURL,
		userAgent: version.UserAgent(),
	}, nil
}

// URL returns the resolved index URL.
func (s *Source) URL() string { return s.url }

// Fetch implements index.Source.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", s.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(body) == 0 {
		return nil, errors.New("response body is empty")
	}
	return body, nil
}

func resolveURL(base, path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base url %q: scheme must be http or https", base)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid index path: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.ResolveReference(ref).String(), nil
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	sugar *zap.SugaredLogger
}

func (l *leveledLogger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }
func (l *leveledLogger) Info(msg string, kv ...any)  { l.sugar.Debugw(msg, kv...) }
func (l *leveledLogger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *leveledLogger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
