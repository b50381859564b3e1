package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/agentstation/servicemap/internal/server/response"
	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/logging"
)

// HandleReload handles POST /api/v1/reload.
// @Summary Reload datasets
// @Description Load the datasets again and rebuild the linked hierarchy. On failure the previous tree keeps serving.
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 500 {object} response.Response{error=response.Error}
// @Security ApiKeyAuth
// @Router /api/v1/reload [post].
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	sm, ok := h.servicemap(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.LoadTimeout)
	defer cancel()

	start := time.Now()
	if err := sm.Reload(ctx); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Reload failed")
		response.ErrorFromType(w, err)
		return
	}

	tree := sm.Snapshot().Tree()
	response.OK(w, map[string]any{
		"status":      "completed",
		"build_id":    tree.BuildID,
		"built_at":    tree.BuiltAt,
		"duration_ms": time.Since(start).Milliseconds(),
		"stats":       tree.Stats(),
	})
}

// HandleStats handles GET /api/v1/stats.
// @Summary Server statistics
// @Description Get tree, dataset, cache and runtime statistics
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Security ApiKeyAuth
// @Router /api/v1/stats [get].
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	tree := v.Tree()
	ds := v.Datasets()
	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
			"memory_sys_mb":  memStats.Sys / 1024 / 1024,
		},
		"tree": map[string]any{
			"build_id": tree.BuildID,
			"built_at": tree.BuiltAt,
			"stats":    tree.Stats(),
		},
		"datasets": ds.Counts(),
		"cache": h.cache.GetStats(),
	})
}
