// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/stride/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitSteps writes one record and returns the assigned identifier.
	SubmitSteps(ctx context.Context, sub model.Submission) (string, error)

	// ListSteps returns a device's records in server-timestamp order.
	ListSteps(ctx context.Context, deviceID string) (model.DeviceLog, error)

	// DeviceStats folds a device's records into totals.
	DeviceStats(ctx context.Context, deviceID string) (model.DeviceStats, error)
}

// Server wires HTTP routes for the step telemetry API.
type Server struct {
	healthHandler    *HealthHandler
	stepsHandler     *StepsHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		stepsHandler:     NewStepsHandler(deps),
		statsHandler:     NewStatsHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/steps", MetricsMiddleware(s.stepsHandler.HandleSteps, "steps"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
}

// submitRequest mirrors the POST /api/steps body. step_count and timestamp
// are pointers so absent keys can be told apart from zero values.
type submitRequest struct {
	DeviceID  string           `json:"device_id"`
	StepCount *model.StepCount `json:"step_count"`
	Timestamp *string          `json:"timestamp"`
}

func (r submitRequest) validate() error {
	if r.StepCount == nil || r.Timestamp == nil {
		return ErrMissingFields
	}
	return nil
}

// submitResponse confirms a stored record.
type submitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// listResponse packages a device's ordered records.
type listResponse struct {
	DeviceID string             `json:"device_id"`
	Count    int                `json:"count"`
	Data     []model.RecordView `json:"data"`
}

// errorResponse is the uniform failure body.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
