// Package application provides the application interface for servicemap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            sm, err := app.Servicemap(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... query sm
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    ServicemapFunc: func(context.Context) (servicemap.Servicemap, error) {
//	        return testMap, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap"
)

// Application provides the application interface that commands need.
// The App struct from cmd/servicemap/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Servicemap returns the shared service map, loading the configured
	// datasets on first use.
	Servicemap(ctx context.Context) (servicemap.Servicemap, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide, markdown).
	OutputFormat() string

	// Quiet reports whether informational output should be suppressed.
	Quiet() bool

	// ServerSettings returns the configured defaults for the API server.
	ServerSettings() ServerSettings

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// ServerSettings holds the configured API server defaults. Command flags
// override them.
type ServerSettings struct {
	Host        string
	Port        int
	PathPrefix  string
	CacheTTL    time.Duration
	CORSOrigins []string
	APIKey      string
}
