package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/buyside/internal/api/handlers"
	"github.com/wonny/buyside/internal/scenario"
	"github.com/wonny/buyside/pkg/logger"
)

type emptyStore struct{}

func (emptyStore) RecentRuns(ctx context.Context, limit int) ([]scenario.RunRecord, error) {
	return nil, nil
}

func (emptyStore) ScenarioRuns(ctx context.Context, name string, limit int) ([]scenario.RunRecord, error) {
	return nil, nil
}

func TestRouterHealthCheck(t *testing.T) {
	h := handlers.NewRunsHandler(emptyStore{}, logger.NewNop())
	router := NewRouter(h, logger.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouterRunsRoute(t *testing.T) {
	h := handlers.NewRunsHandler(emptyStore{}, logger.NewNop())
	router := NewRouter(h, logger.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/runs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
