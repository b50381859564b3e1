package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/pkg/catalogs"
)

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	logger := zerolog.Nop()
	opts = append([]Option{WithConfig(&Config{LogFormat: "json", LogOutput: "discard"}), WithLogger(&logger)}, opts...)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Servicemap_Singleton verifies that Servicemap() returns the same instance.
func TestApp_Servicemap_Singleton(t *testing.T) {
	app := newTestApp(t)

	sm1, err := app.Servicemap(context.Background())
	if err != nil {
		t.Fatalf("Servicemap() failed: %v", err)
	}
	sm2, err := app.Servicemap(context.Background())
	if err != nil {
		t.Fatalf("Servicemap() failed on second call: %v", err)
	}
	if sm1 != sm2 {
		t.Error("Servicemap() returned different instances, expected singleton")
	}
}

// TestApp_Servicemap_ThreadSafe verifies concurrent Servicemap() calls are safe.
func TestApp_Servicemap_ThreadSafe(t *testing.T) {
	app := newTestApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]servicemap.Servicemap, goroutines)
	errs := make([]error, goroutines)

	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Servicemap(context.Background())
		}(i)
	}
	wg.Wait()

	for i := range goroutines {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: Servicemap() failed: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Errorf("goroutine %d got a different instance", i)
		}
	}
}

// TestApp_Servicemap_MissingDataDir verifies that a bad data directory is reported.
func TestApp_Servicemap_MissingDataDir(t *testing.T) {
	app := newTestApp(t, WithConfig(&Config{DataDir: t.TempDir() + "/missing"}))

	if _, err := app.Servicemap(context.Background()); err == nil {
		t.Error("Servicemap() succeeded, want error for missing data directory")
	}
}

// TestApp_WithServicemap verifies that a prebuilt service map is used.
func TestApp_WithServicemap(t *testing.T) {
	sm, err := servicemap.New(context.Background(), servicemap.WithDatasets(catalogs.TestDatasets(t)))
	if err != nil {
		t.Fatalf("servicemap.New() failed: %v", err)
	}
	app := newTestApp(t, WithServicemap(sm))

	got, err := app.Servicemap(context.Background())
	if err != nil {
		t.Fatalf("Servicemap() failed: %v", err)
	}
	if got != sm {
		t.Error("Servicemap() did not return the injected instance")
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

// TestApp_ServerSettings verifies the server section is passed through.
func TestApp_ServerSettings(t *testing.T) {
	app := newTestApp(t, WithConfig(&Config{Server: ServerConfig{Host: "0.0.0.0", Port: 9090, APIKey: "k"}}))

	s := app.ServerSettings()
	if s.Host != "0.0.0.0" || s.Port != 9090 || s.APIKey != "k" {
		t.Errorf("ServerSettings() = %+v", s)
	}
}

// TestExecute_Version verifies the version command.
func TestExecute_Version(t *testing.T) {
	app := newTestApp(t)

	root := app.createRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(buf.String(), "servicemap 1.0.0") {
		t.Errorf("version output = %q", buf.String())
	}
}

// TestExecute_InvalidFormat verifies that unknown output formats are rejected.
func TestExecute_InvalidFormat(t *testing.T) {
	app := newTestApp(t)

	err := app.Execute(context.Background(), []string{"version", "--format", "xml"})
	if err == nil {
		t.Fatal("Execute() succeeded, want error for invalid format")
	}
	if !strings.Contains(err.Error(), "format") {
		t.Errorf("error = %v, want it to mention format", err)
	}
}

// TestExecute_Flags verifies that persistent flags update the config.
func TestExecute_Flags(t *testing.T) {
	app := newTestApp(t)

	err := app.Execute(context.Background(), []string{"version", "-o", "json", "--data-dir", "/srv/data", "-v"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if app.OutputFormat() != "json" {
		t.Errorf("OutputFormat() = %q, want json", app.OutputFormat())
	}
	if app.Config().DataDir != "/srv/data" {
		t.Errorf("DataDir = %q, want /srv/data", app.Config().DataDir)
	}
	if !app.Config().Verbose {
		t.Error("Verbose not set by -v")
	}
}
