package tree

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/pkg/catalogs"
)

func runTree(t *testing.T, args ...string) (string, error) {
	t.Helper()
	sm, err := servicemap.New(context.Background(), servicemap.WithDatasets(catalogs.TestDatasets(t)))
	if err != nil {
		t.Fatalf("servicemap.New() failed: %v", err)
	}
	app := &application.Mock{
		ServicemapFunc: func(context.Context) (servicemap.Servicemap, error) { return sm, nil },
	}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTree(t *testing.T) {
	out, err := runTree(t)
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	for _, want := range []string{"Everyday Living", "Domestic assistance", "Gardening", "svc:G1/T1/S1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTree_Pruned(t *testing.T) {
	out, err := runTree(t, "--search", "physio")
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if !strings.Contains(out, "Clinical Supports") || !strings.Contains(out, "Physiotherapy") {
		t.Errorf("output missing matching branch:\n%s", out)
	}
	if strings.Contains(out, "Everyday Living") {
		t.Errorf("output contains pruned branch:\n%s", out)
	}
}

func TestTree_Stats(t *testing.T) {
	out, err := runTree(t, "--stats")
	if err != nil {
		t.Fatalf("tree --stats failed: %v", err)
	}
	if !strings.Contains(out, "Services") || !strings.Contains(out, "5") {
		t.Errorf("stats output unexpected:\n%s", out)
	}
}
