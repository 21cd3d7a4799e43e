// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// healthResponse is the fixed payload reported while the process is up.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth handles GET /api/health requests. The store is deliberately
// not consulted: liveness of the process is the whole contract.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Message: "Step Counter API is running",
	})
}
