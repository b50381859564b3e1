package application

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/pkg/constants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ServicemapFunc     func(ctx context.Context) (servicemap.Servicemap, error)
	LoggerFunc         func() *zerolog.Logger
	OutputFormatFunc   func() string
	QuietFunc          func() bool
	ServerSettingsFunc func() ServerSettings
	VersionFunc        func() string
	CommitFunc         func() string
	DateFunc           func() string
	BuiltByFunc        func() string
}

// Servicemap returns a service map using the mock function or an error.
func (m *Mock) Servicemap(ctx context.Context) (servicemap.Servicemap, error) {
	if m.ServicemapFunc != nil {
		return m.ServicemapFunc(ctx)
	}
	return nil, errors.New("no service map configured")
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Quiet returns the quiet flag using the mock function or true.
func (m *Mock) Quiet() bool {
	if m.QuietFunc != nil {
		return m.QuietFunc()
	}
	return true
}

// ServerSettings returns server settings using the mock function or defaults.
func (m *Mock) ServerSettings() ServerSettings {
	if m.ServerSettingsFunc != nil {
		return m.ServerSettingsFunc()
	}
	return ServerSettings{
		Host:       constants.DefaultServerHost,
		Port:       constants.DefaultServerPort,
		PathPrefix: constants.DefaultPathPrefix,
		CacheTTL:   constants.CacheTTL,
	}
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
