package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sitesearch/internal/domain"
	"github.com/kailas-cloud/sitesearch/internal/domain/document"
	"github.com/kailas-cloud/sitesearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/sitesearch/internal/logger"
	healthuc "github.com/kailas-cloud/sitesearch/internal/usecase/health"
	"github.com/kailas-cloud/sitesearch/internal/usecase/index"
	"github.com/kailas-cloud/sitesearch/internal/usecase/render"
	searchuc "github.com/kailas-cloud/sitesearch/internal/usecase/search"
)

// Error codes returned in ErrorResponse.
const (
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeIndexLoading     = "index_loading"
	ErrorCodeIndexUnavailable = "index_unavailable"
	ErrorCodeInternalError    = "internal_error"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Results []SearchResult `json:"results"`
}

// SearchResult is one scored document in SearchResponse.
type SearchResult struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Date  string   `json:"date"`
	Tags  []string `json:"tags"`
	Score int      `json:"score"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Documents int               `json:"documents"`
}

// IndexReader exposes the loaded search index.
type IndexReader interface {
	Collection() document.Collection
	State() index.State
	Err() error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search index, search results and operational endpoints.
type Server struct {
	index         IndexReader
	search        *searchuc.Service
	renderer      *render.Renderer
	health        *healthuc.Service
	logger        *zap.Logger
	siteDir       string
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server.
func NewServer(
	idx IndexReader,
	search *searchuc.Service,
	renderer *render.Renderer,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		index:    idx,
		search:   search,
		renderer: renderer,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrIndexFetch, http.StatusServiceUnavailable, ErrorCodeIndexUnavailable),
		sentinelHandler(domain.ErrInvalidIndex, http.StatusServiceUnavailable, ErrorCodeIndexUnavailable),
	}
	return s
}

// WithSiteDir serves static files from dir on every route not matched otherwise.
func (s *Server) WithSiteDir(dir string) *Server {
	s.siteDir = dir
	return s
}

// Register mounts all routes on r. Non-empty apiKeys protect /api/*.
func (s *Server) Register(r chi.Router, apiKeys []string) {
	r.Get("/search.json", s.SearchIndex)
	r.Get("/search", s.SearchHTML)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(api chi.Router) {
		api.Use(BearerAuthMiddleware(apiKeys))
		api.Get("/search", s.SearchAPI)
	})

	if s.siteDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.siteDir)))
	}
}

// SearchIndex handles GET /search.json.
func (s *Server) SearchIndex(w http.ResponseWriter, _ *http.Request) {
	if s.index.State() != index.Ready {
		writeError(w, http.StatusServiceUnavailable, ErrorCodeIndexLoading, "index is loading")
		return
	}
	if err := s.index.Err(); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.index.Collection())
}

// SearchHTML handles GET /search. It always answers with a renderable fragment.
func (s *Server) SearchHTML(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := s.search.Search(s.index.Collection(), q)

	fragment, err := s.renderer.Render(results, q)
	if err != nil {
		logpkg.FromContext(r.Context()).Error("render search results", zap.Error(err))
		fragment = render.NoResults
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(fragment))
}

// SearchAPI handles GET /api/search.
func (s *Server) SearchAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := s.search.Search(s.index.Collection(), q)
	writeJSON(w, http.StatusOK, searchResponse(q, results))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:    string(report.Status),
		Checks:    checks,
		Documents: report.Documents,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func searchResponse(q string, results []result.Result) SearchResponse {
	items := make([]SearchResult, 0, len(results))
	for i := range results {
		doc := results[i].Document()
		items = append(items, SearchResult{
			Title: doc.Title(),
			URL:   doc.URL(),
			Date:  doc.Date(),
			Tags:  doc.Tags(),
			Score: results[i].Score(),
		})
	}
	return SearchResponse{Query: q, Total: len(items), Results: items}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrIndexFetch,
		domain.ErrInvalidIndex,
		domain.ErrEmptyIndex,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
