package activities

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/pkg/catalogs"
)

func run(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	sm, err := servicemap.New(context.Background(), servicemap.WithDatasets(catalogs.TestDatasets(t)))
	if err != nil {
		t.Fatalf("servicemap.New() failed: %v", err)
	}
	app := &application.Mock{
		ServicemapFunc:   func(context.Context) (servicemap.Servicemap, error) { return sm, nil },
		OutputFormatFunc: func() string { return format },
	}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRestorativeActivities(t *testing.T) {
	out, err := run(t, "table", "restorative", "--scope", "Excluded")
	if err != nil {
		t.Fatalf("activities restorative failed: %v", err)
	}
	if !strings.Contains(out, "Gym membership") {
		t.Errorf("output missing excluded activity:\n%s", out)
	}
	if strings.Contains(out, "Included") {
		t.Errorf("output contains included activities:\n%s", out)
	}
}

func TestCareActivities_Grouped(t *testing.T) {
	out, err := run(t, "json", "care", "--grouped")
	if err != nil {
		t.Fatalf("activities care failed: %v", err)
	}
	if !strings.Contains(out, `"category": "Care planning"`) {
		t.Errorf("grouped output missing category:\n%s", out)
	}
}

func TestActivities_UnknownKind(t *testing.T) {
	out, err := run(t, "table", "dental")
	if err == nil && !strings.Contains(out, "Usage") {
		t.Errorf("unknown kind neither failed nor printed help:\n%s", out)
	}
}
