// Package app provides the application context and dependency management
// for the servicemap CLI. It centralizes configuration, logging, and the
// lazily loaded service map shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/pkg/constants"
	"github.com/agentstation/servicemap/pkg/errors"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the servicemap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Service map (lazy-initialized, singleton)
	mu         sync.RWMutex
	servicemap servicemap.Servicemap
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and the default config
// file; functional options customize the result.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether informational output is suppressed.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// ServerSettings returns the configured API server defaults.
func (a *App) ServerSettings() application.ServerSettings {
	s := a.config.Server
	return application.ServerSettings{
		Host:        s.Host,
		Port:        s.Port,
		PathPrefix:  s.PathPrefix,
		CacheTTL:    s.CacheTTL,
		CORSOrigins: s.CORSOrigins,
		APIKey:      s.APIKey,
	}
}

// Servicemap returns the service map, loading the datasets on first use.
// It is safe for concurrent use and only one instance is ever created.
func (a *App) Servicemap(ctx context.Context) (servicemap.Servicemap, error) {
	a.mu.RLock()
	if a.servicemap != nil {
		sm := a.servicemap
		a.mu.RUnlock()
		return sm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.servicemap != nil {
		return a.servicemap, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.LoadTimeout)
	defer cancel()

	sm, err := servicemap.New(ctx, a.buildServicemapOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "servicemap", a.config.DataDir, err)
	}

	a.servicemap = sm
	return sm, nil
}

// Shutdown stops background work of the service map, if one was created.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	sm := a.servicemap
	a.mu.RUnlock()

	if sm != nil {
		if err := sm.AutoReloadOff(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop auto-reload during shutdown")
		}
	}
	return nil
}

// buildServicemapOptions constructs service map options from the configuration.
func (a *App) buildServicemapOptions() []servicemap.Option {
	opts := []servicemap.Option{
		servicemap.WithLogger(a.logger),
		servicemap.WithPaths(a.config.Paths),
		servicemap.WithStrictDuplicates(a.config.StrictDuplicates),
	}

	if a.config.DataDir != "" {
		opts = append(opts, servicemap.WithDataDir(a.config.DataDir))
	}
	if a.config.MinSimilarity > 0 {
		opts = append(opts, servicemap.WithMinSimilarity(a.config.MinSimilarity))
	}
	if a.config.ActivityLimit > 0 {
		opts = append(opts, servicemap.WithActivityLimit(a.config.ActivityLimit))
	}
	if a.config.AutoReloadInterval > 0 {
		opts = append(opts, servicemap.WithAutoReload(a.config.AutoReloadInterval))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithServicemap sets a prebuilt service map (useful for testing).
func WithServicemap(sm servicemap.Servicemap) Option {
	return func(a *App) error {
		a.servicemap = sm
		return nil
	}
}
