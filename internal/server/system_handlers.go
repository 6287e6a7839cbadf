package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/qlab/internal/database"
)

// SystemHandlers provides monitoring endpoints: liveness, host resource
// usage, and storage statistics.
type SystemHandlers struct {
	resultsDB *database.DB
	startedAt time.Time
	log       zerolog.Logger
}

// NewSystemHandlers creates system monitoring handlers.
func NewSystemHandlers(log zerolog.Logger, resultsDB *database.DB) *SystemHandlers {
	return &SystemHandlers{
		resultsDB: resultsDB,
		startedAt: time.Now(),
		log:       log.With().Str("handler", "system").Logger(),
	}
}

// HandleHealth handles GET /health. It runs a database integrity check and
// reports degraded instead of failing the request when the check errors.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	if err := h.resultsDB.QuickCheck(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Database quick check failed")
		status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":         status,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"cpu_percent":    cpuPercent,
		"memory_percent": memPercent,
		"goroutines":     runtime.NumGoroutine(),
		"heap_alloc_mb":  float64(ms.HeapAlloc) / 1024 / 1024,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}

// HandleDatabaseStats handles GET /api/system/database
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.resultsDB.GetStats()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get database stats")
		http.Error(w, "Failed to get database stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":        h.resultsDB.Name(),
		"size_mb":     float64(stats.SizeBytes) / 1024 / 1024,
		"wal_size_mb": float64(stats.WALSizeBytes) / 1024 / 1024,
		"page_count":  stats.PageCount,
		"page_size":   stats.PageSize,
	})
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a short interval (100ms) so the endpoint stays responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
