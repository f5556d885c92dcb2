package health

import (
	"context"

	"github.com/kailas-cloud/sitesearch/internal/usecase/index"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the server runs but search returns nothing useful.
	Degraded Status = "degraded"
	// Unhealthy indicates the index is not loaded yet.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckLoading indicates the index is still loading.
	CheckLoading CheckResult = "loading"
	// CheckEmpty indicates a loaded index without documents.
	CheckEmpty CheckResult = "empty"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status    Status
	Checks    map[string]CheckResult
	Documents int
}

// Service coordinates health checks.
type Service struct {
	index IndexChecker
}

// New creates a Service.
func New(idx IndexChecker) *Service {
	return &Service{index: idx}
}

// Check reports the search index state.
func (s *Service) Check(_ context.Context) Report {
	checks := make(map[string]CheckResult)
	n := s.index.Collection().Len()

	status := Healthy
	switch {
	case s.index.State() != index.Ready:
		checks["index"] = CheckLoading
		status = Unhealthy
	case s.index.Err() != nil:
		checks["index"] = CheckError
		status = Degraded
	case n == 0:
		checks["index"] = CheckEmpty
		status = Degraded
	default:
		checks["index"] = CheckOK
	}

	return Report{Status: status, Checks: checks, Documents: n}
}
