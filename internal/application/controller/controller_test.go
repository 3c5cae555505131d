package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/model"
)

type stubObservations struct {
	page      int
	size      int
	station   string
	latest    []entity.Observation
	latestErr error
}

func (s *stubObservations) FindPage(station string, page int, size int) (*model.Page[entity.Observation], error) {
	s.station, s.page, s.size = station, page, size
	return model.NewPage([]entity.Observation{{Timestamp: "t1", StationID: "2044"}}, page, size, 1), nil
}

func (s *stubObservations) Latest(context.Context) ([]entity.Observation, error) {
	return s.latest, s.latestErr
}

type stubCollect struct {
	mu      sync.Mutex
	runIDs  []string
	summary *model.CollectionSummary
}

func (s *stubCollect) Run(_ context.Context, runID string) (*model.CollectionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runIDs = append(s.runIDs, runID)
	return &model.CollectionSummary{RunID: runID}, nil
}

func (s *stubCollect) Summary() *model.CollectionSummary { return s.summary }

type stubHealth struct {
	response model.HealthResponse
}

func (s stubHealth) CheckHealth() model.HealthResponse { return s.response }

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestObservationController_FindPage(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		station string
		page    int
		size    int
	}{
		{name: "defaults", target: "/api/observations", page: 0, size: defaultPageSize},
		{name: "filtered", target: "/api/observations?station=2044&page=2&size=5", station: "2044", page: 2, size: 5},
		{name: "zero size", target: "/api/observations?size=0", page: 0, size: 1},
		{name: "negative page", target: "/api/observations?page=-3&size=abc", page: 0, size: defaultPageSize},
		{name: "oversized", target: "/api/observations?size=5000", page: 0, size: maxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			useCase := &stubObservations{}
			NewObservationController(e.Group("/api"), useCase).InitObservationRoutes()

			rec := serve(e, http.MethodGet, tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.station, useCase.station)
			assert.Equal(t, tt.page, useCase.page)
			assert.Equal(t, tt.size, useCase.size)

			var body model.Page[entity.Observation]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.EqualValues(t, 1, body.TotalElements)
		})
	}
}

func TestObservationController_Latest(t *testing.T) {
	e := echo.New()
	useCase := &stubObservations{latest: []entity.Observation{{Timestamp: "t1", StationID: "2044"}}}
	NewObservationController(e.Group("/api"), useCase).InitObservationRoutes()

	rec := serve(e, http.MethodGet, "/api/observations/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stationId":"2044"`)

	useCase.latestErr = errors.New("disk full")
	rec = serve(e, http.MethodGet, "/api/observations/latest")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCollectionController(t *testing.T) {
	e := echo.New()
	useCase := &stubCollect{}
	controller := NewCollectionController(context.Background(), e.Group("/api"), useCase)
	controller.InitCollectionRoutes()

	rec := serve(e, http.MethodGet, "/api/collections/last")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodPost, "/api/collections")
	require.Equal(t, http.StatusAccepted, rec.Code)

	var accepted model.CollectionAccepted
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	assert.NotEmpty(t, accepted.RunID)

	controller.Wait()
	assert.Equal(t, []string{accepted.RunID}, useCase.runIDs)

	useCase.summary = &model.CollectionSummary{RunID: accepted.RunID, Status: entity.RunSuccess}
	rec = serve(e, http.MethodGet, "/api/collections/last")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"SUCCESS"`)
}

func TestHealthController(t *testing.T) {
	tests := []struct {
		status model.HealthStatus
		code   int
	}{
		{status: model.StatusUp, code: http.StatusOK},
		{status: model.StatusDown, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e := echo.New()
			NewHealthController(e.Group("/api"), stubHealth{model.HealthResponse{Status: tt.status}}).InitHealthRoutes()

			rec := serve(e, http.MethodGet, "/api/health")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
