// Package server provides HTTP server implementation for the servicemap API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/server/cache"
	"github.com/agentstation/servicemap/internal/server/middleware"
	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/hierarchy"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app         application.Application
	cache       *cache.Cache
	rateLimiter *middleware.RateLimiter
	logger      *zerolog.Logger
	config      Config
	startTime   time.Time
}

// New creates a new server instance with the given configuration. It loads
// the service map if needed and flushes the query cache on every rebuild.
func New(ctx context.Context, app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	logger.Debug().Msg("Creating new server instance")

	// Set defaults
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}

	server := &Server{
		app:       app,
		cache:     cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		server.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	if err := server.connectHooks(ctx); err != nil {
		server.Shutdown()
		return nil, err
	}

	logger.Debug().Msg("Server instance created successfully")
	return server, nil
}

// connectHooks invalidates cached query results whenever a new tree is
// swapped in.
func (s *Server) connectHooks(ctx context.Context) error {
	sm, err := s.app.Servicemap(ctx)
	if err != nil {
		return err
	}

	sm.OnBuilt(func(tree *hierarchy.Tree, stats hierarchy.Stats) {
		s.cache.Flush()
		s.logger.Info().
			Str("build_id", tree.BuildID).
			Int("services", stats.Services).
			Msg("Service map rebuilt, query cache flushed")
	})

	s.logger.Debug().Msg("Service map hooks connected")
	return nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown releases background resources. It does not touch the service map.
func (s *Server) Shutdown() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.logger.Debug().Msg("Server background services stopped")
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Config returns the server configuration.
func (s *Server) Config() Config {
	return s.config
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
