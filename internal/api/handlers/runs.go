package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/buyside/internal/scenario"
	"github.com/wonny/buyside/pkg/logger"
)

const defaultRunLimit = 20

// RunStore provides read access to persisted run history
type RunStore interface {
	RecentRuns(ctx context.Context, limit int) ([]scenario.RunRecord, error)
	ScenarioRuns(ctx context.Context, name string, limit int) ([]scenario.RunRecord, error)
}

// RunsHandler handles run history API endpoints
type RunsHandler struct {
	store  RunStore
	logger *logger.Logger
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(store RunStore, log *logger.Logger) *RunsHandler {
	return &RunsHandler{
		store:  store,
		logger: log,
	}
}

// GetRecent returns the most recent run records across all scenarios
// GET /api/runs?limit=20
func (h *RunsHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, defaultRunLimit)

	records, err := h.store.RecentRuns(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load recent runs")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(records),
		"runs":  records,
	})
}

// GetScenario returns the run history for one scenario
// GET /api/runs/{scenario}?limit=20
func (h *RunsHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["scenario"]
	limit := parseLimit(r, defaultRunLimit)

	records, err := h.store.ScenarioRuns(r.Context(), name, limit)
	if err != nil {
		h.logger.WithField("scenario", name).WithError(err).Error("Failed to load scenario runs")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve runs")
		return
	}

	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "No runs found for scenario")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scenario": name,
		"count":    len(records),
		"runs":     records,
	})
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
