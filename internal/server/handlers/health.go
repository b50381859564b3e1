package handlers

import (
	"net/http"

	"github.com/agentstation/servicemap/internal/server/response"
)

// HandleHealth handles GET /health.
// @Summary Health check
// @Description Health check endpoint (liveness probe). Includes the current build ID once the service map is loaded.
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"status":  "healthy",
		"service": "servicemap-api",
		"version": h.app.Version(),
	}
	if sm, err := h.app.Servicemap(r.Context()); err == nil {
		data["build_id"] = sm.Tree().BuildID
	}
	response.OK(w, data)
}

// HandleReady handles GET /api/v1/ready.
// @Summary Readiness check
// @Description Readiness check reporting the current build and cache state
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	tree := v.Tree()
	response.OK(w, map[string]any{
		"status":   "ready",
		"build_id": tree.BuildID,
		"built_at": tree.BuiltAt,
		"services": tree.Stats().Services,
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
	})
}
