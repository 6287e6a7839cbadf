package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aristath/qlab/internal/config"
	"github.com/aristath/qlab/internal/database"
	"github.com/aristath/qlab/internal/experiment"
	experimenthandlers "github.com/aristath/qlab/internal/experiment/handlers"
	"github.com/aristath/qlab/internal/noise"
	"github.com/aristath/qlab/internal/results"
	"github.com/aristath/qlab/internal/simulator"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := zerolog.New(nil).Level(zerolog.Disabled)

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "results.db"),
		Profile: database.ProfileStandard,
		Name:    "results",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := results.NewRepository(db.Conn(), log)
	require.NoError(t, repo.Migrate())

	catalog := noise.NewCatalog(log)
	handlers := experimenthandlers.NewHandler(
		experiment.NewAssembler(catalog, log),
		simulator.NewService(catalog, 10, log),
		repo,
		catalog,
		log,
	)

	return New(Config{
		Log:                log,
		ResultsDB:          db,
		Config:             &config.Config{Port: 0, DevMode: true},
		ExperimentHandlers: handlers,
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestSystemStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "cpu_percent")
	assert.Contains(t, body, "memory_percent")
	assert.Contains(t, body, "goroutines")
}

func TestDatabaseStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/database", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "results", body["name"])
}

func TestExperimentRoutesMounted(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
