package server

import (
	"net/http"
	"strings"

	"github.com/agentstation/servicemap/internal/server/handlers"
	"github.com/agentstation/servicemap/internal/server/middleware"
	"github.com/agentstation/servicemap/internal/server/response"
	"github.com/agentstation/servicemap/pkg/constants"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.app, s.cache, s.logger, s.startTime)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// get wraps a handler that only accepts GET (and HEAD) requests.
func get(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		fn(w, r)
	}
}

// post wraps a handler that only accepts POST requests.
func post(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		fn(w, r)
	}
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints (no auth required)
	mux.HandleFunc("/health", get(h.HandleHealth))
	mux.HandleFunc(prefix+"/health", get(h.HandleHealth))
	mux.HandleFunc(prefix+"/ready", get(h.HandleReady))

	// Hierarchy and filter options
	mux.HandleFunc(prefix+"/tree", get(h.HandleTree))
	mux.HandleFunc(prefix+"/facets", get(h.HandleFacets))

	// Services endpoints
	mux.HandleFunc(prefix+"/services", get(h.HandleListServices))
	mux.HandleFunc(prefix+"/services/", get(func(w http.ResponseWriter, r *http.Request) {
		// Node IDs contain slashes (svc:G/T/S), so the ID is everything
		// between the prefix and an optional /price suffix.
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix+"/services/"), "/")

		switch {
		case rest == "" || rest == "price":
			response.NotFound(w, "Not found", "Service ID required")
		case strings.HasSuffix(rest, "/price"):
			// GET /services/{id}/price
			h.HandleGetServicePrice(w, r, strings.TrimSuffix(rest, "/price"))
		default:
			// GET /services/{id}
			h.HandleGetService(w, r, rest)
		}
	}))

	// Explorers
	mux.HandleFunc(prefix+"/funding-sources", get(h.HandleListFundingSources))
	mux.HandleFunc(prefix+"/items", get(h.HandleListItems))
	mux.HandleFunc(prefix+"/budget-codes", get(func(w http.ResponseWriter, r *http.Request) {
		h.HandleListBudgetCodes(w, r, "")
	}))
	mux.HandleFunc(prefix+"/budget-codes/", get(func(w http.ResponseWriter, r *http.Request) {
		h.HandleListBudgetCodes(w, r, extractPathParam(r.URL.Path, prefix+"/budget-codes/"))
	}))
	mux.HandleFunc(prefix+"/activities/", get(func(w http.ResponseWriter, r *http.Request) {
		kind := extractPathParam(r.URL.Path, prefix+"/activities/")
		if kind == "" {
			response.BadRequest(w, "Activity kind required", "Use /activities/care or /activities/restorative")
			return
		}
		h.HandleListActivities(w, r, kind)
	}))

	// Admin endpoints
	mux.HandleFunc(prefix+"/reload", post(h.HandleReload))
	mux.HandleFunc(prefix+"/stats", get(h.HandleStats))
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Rate limiting (if enabled)
	if s.rateLimiter != nil {
		handler = middleware.RateLimit(s.rateLimiter)(handler)
	}

	// Authentication (if enabled)
	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		authConfig.PublicPaths = append(authConfig.PublicPaths, cfg.PathPrefix+"/health", cfg.PathPrefix+"/ready")
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
		middleware.LimitBody(constants.MaxRequestBodySize),
	)(handler)
}

// extractPathParam extracts path parameter from URL.
func extractPathParam(path, prefix string) string {
	trimmed := strings.TrimPrefix(path, prefix)
	parts := strings.Split(trimmed, "/")
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}
