package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/pkg/catalogs"
)

func newTestApp(t *testing.T, format string) application.Application {
	t.Helper()
	sm, err := servicemap.New(context.Background(), servicemap.WithDatasets(catalogs.TestDatasets(t)))
	if err != nil {
		t.Fatalf("servicemap.New() failed: %v", err)
	}
	return &application.Mock{
		ServicemapFunc:   func(context.Context) (servicemap.Servicemap, error) { return sm, nil },
		OutputFormatFunc: func() string { return format },
	}
}

func run(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListServices(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name:     "all services",
			args:     nil,
			contains: []string{"Domestic Assistance", "Physiotherapy", "Meal preparation"},
		},
		{
			name:        "search term",
			args:        []string{"--search", "nurs"},
			contains:    []string{"Nursing care"},
			notContains: []string{"Gardening"},
		},
		{
			name:        "type filter",
			args:        []string{"--type", "Meals"},
			contains:    []string{"Meal preparation"},
			notContains: []string{"Domestic Assistance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, newTestApp(t, "table"), tt.args...)
			if err != nil {
				t.Fatalf("services failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(out, unwanted) {
					t.Errorf("output contains %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestListServices_Limit(t *testing.T) {
	out, err := run(t, newTestApp(t, "json"), "--limit", "2")
	if err != nil {
		t.Fatalf("services failed: %v", err)
	}
	if got := strings.Count(out, `"kind": "service"`); got != 2 {
		t.Errorf("got %d services, want 2:\n%s", got, out)
	}
}

func TestListServices_InvalidFilter(t *testing.T) {
	_, err := run(t, newTestApp(t, "table"), "--type", "Meal")
	if err == nil {
		t.Fatal("expected validation error for unknown type")
	}
	if !strings.Contains(err.Error(), "Meals") {
		t.Errorf("error %q does not suggest Meals", err)
	}
}

func TestShowService(t *testing.T) {
	out, err := run(t, newTestApp(t, "markdown"), "show", "svc:G1/T1/S1")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"# Domestic Assistance", "## Reference Price", "$55.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, newTestApp(t, "json"), "show", "S1")
	if err != nil {
		t.Fatalf("show by service ID failed: %v", err)
	}
	if !strings.Contains(out, `"breadcrumbs"`) {
		t.Errorf("json output missing breadcrumbs:\n%s", out)
	}
}

func TestShowService_NotFound(t *testing.T) {
	if _, err := run(t, newTestApp(t, "table"), "show", "S9"); err == nil {
		t.Error("expected not found error")
	}
}

func TestServicePrice(t *testing.T) {
	out, err := run(t, newTestApp(t, "table"), "price", "S4")
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !strings.Contains(out, "$110.00") {
		t.Errorf("output missing median:\n%s", out)
	}
	if !strings.Contains(out, "Exact (L2)") {
		t.Errorf("output missing match type:\n%s", out)
	}
}
