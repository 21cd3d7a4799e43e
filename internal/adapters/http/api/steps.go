// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/metrics"
)

// StepsHandler handles submission and listing of step records.
type StepsHandler struct {
	deps Dependencies
}

// NewStepsHandler creates a new steps handler.
func NewStepsHandler(deps Dependencies) *StepsHandler {
	return &StepsHandler{deps: deps}
}

// HandleSteps dispatches /api/steps by method.
func (h *StepsHandler) HandleSteps(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleSubmit handles POST /api/steps. A record is written only after both
// required keys are present and step_count parses; nothing is stored on a
// rejected submission.
func (h *StepsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordSubmissionRejected()
		if errors.Is(err, model.ErrNonNumericSteps) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, ErrMissingFields.Error())
		return
	}
	if err := req.validate(); err != nil {
		metrics.RecordSubmissionRejected()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.deps.SubmitSteps(r.Context(), model.Submission{
		DeviceID:        req.DeviceID,
		StepCount:       req.StepCount.Int(),
		ClientTimestamp: *req.Timestamp,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Message: "Step data added successfully",
		ID:      id,
	})
}

// handleList handles GET /api/steps?device_id=...
func (h *StepsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	log, err := h.deps.ListSteps(r.Context(), r.URL.Query().Get("device_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		DeviceID: log.DeviceID,
		Count:    len(log.Records),
		Data:     log.Records,
	})
}
