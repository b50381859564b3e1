package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/server/cache"
	"github.com/agentstation/servicemap/internal/server/response"
	"github.com/agentstation/servicemap/pkg/logging"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app       application.Application
	cache     *cache.Cache
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(app application.Application, cache *cache.Cache, logger *zerolog.Logger, startTime time.Time) *Handlers {
	return &Handlers{
		app:       app,
		cache:     cache,
		logger:    logger,
		startTime: startTime,
	}
}

// servicemap returns the shared service map. When it is unavailable a 503
// response has already been written and ok is false.
func (h *Handlers) servicemap(w http.ResponseWriter, r *http.Request) (servicemap.Servicemap, bool) {
	sm, err := h.app.Servicemap(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Service map unavailable")
		response.ServiceUnavailable(w, "Service map not available")
		return nil, false
	}
	return sm, true
}

// view returns a view pinned to the current build. Handlers read through
// one view and key their cache entries by its build ID, so a reload in
// between cannot mix two builds or serve an entry from an older one.
func (h *Handlers) view(w http.ResponseWriter, r *http.Request) (servicemap.View, bool) {
	sm, ok := h.servicemap(w, r)
	if !ok {
		return nil, false
	}
	return sm.Snapshot(), true
}

// cached serves the value stored under key, computing and storing it on a
// miss. Errors are written with their mapped status and are not cached.
func (h *Handlers) cached(w http.ResponseWriter, key string, compute func() (any, error)) {
	data, err := h.cache.GetOrCompute(key, compute)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, data)
}
