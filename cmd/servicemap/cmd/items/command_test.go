package items

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

func TestItems_Search(t *testing.T) {
	out, err := run(t, "wide", "--search", "free text required")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if !strings.Contains(out, "Linen services") || !strings.Contains(out, "required") {
		t.Errorf("output missing linen item:\n%s", out)
	}
	if strings.Contains(out, "General house cleaning") {
		t.Errorf("output contains unmatched items:\n%s", out)
	}
}

func TestItems_Grouped(t *testing.T) {
	out, err := run(t, "json", "--group", "Everyday Living", "--grouped")
	if err != nil {
		t.Fatalf("items --grouped failed: %v", err)
	}
	for _, want := range []string{`"text": "Everyday Living"`, `"text": "Domestic assistance"`, `"itemText": "Linen services"`} {
		if !strings.Contains(out, want) {
			t.Errorf("grouped output missing %s:\n%s", want, out)
		}
	}
}
