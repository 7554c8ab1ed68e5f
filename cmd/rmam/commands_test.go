package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mamecholeye-lab/Rmam/pkg/config"
	"github.com/mamecholeye-lab/Rmam/pkg/logger"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// newTestCLI returns a runner whose commands share one in-memory store.
func newTestCLI(t *testing.T) func(stdin string, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{
		StoreBackend: config.StoreMemory,
		LogLevel:     "error",
		ServiceName:  "rmam-test",
		RandomSource: "seeded",
		RandomSeed:   7,
		HistoryLimit: 10,
	}
	e, err := openEnv(context.Background(), cfg, logger.New(cfg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })

	shared := func(context.Context) (*env, error) {
		return &env{collection: e.collection, selection: e.selection}, nil
	}

	return func(stdin string, args ...string) (string, error) {
		var out bytes.Buffer
		root := newRootCmd("cli-test", shared)
		root.SetArgs(args)
		root.SetIn(strings.NewReader(stdin))
		root.SetOut(&out)
		root.SetErr(&out)
		err := root.ExecuteContext(context.Background())
		return out.String(), err
	}
}

func TestCLI_ImportAndShow(t *testing.T) {
	run := newTestCLI(t)

	out, err := run("a,https://a.example,G1\nb\nc,https://c.example,G2\n", "import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Imported 3 items") {
		t.Errorf("expected import summary, got %q", out)
	}
	if !strings.Contains(out, "Groups: G1, default, G2") {
		t.Errorf("expected groups line, got %q", out)
	}

	out, err = run("", "show", "--group", "G2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "https://c.example") || strings.Contains(out, "https://a.example") {
		t.Errorf("expected only G2 items, got %q", out)
	}
}

func TestCLI_ShowEmpty(t *testing.T) {
	run := newTestCLI(t)

	out, err := run("", "show")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No items") {
		t.Errorf("expected empty hint, got %q", out)
	}
}

func TestCLI_GroupLifecycle(t *testing.T) {
	run := newTestCLI(t)
	if _, err := run(`["one","two"]`, "import", "-"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := run("", "group", "create", "Work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := run("", "group", "create", "Work"); err == nil {
		t.Fatal("expected duplicate group error, got nil")
	}

	out, err := run("", "assign", "2", "Work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "two → Work") {
		t.Errorf("expected assignment line, got %q", out)
	}

	out, err = run("", "groups")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Work") {
		t.Errorf("expected Work in groups, got %q", out)
	}

	if _, err := run("", "group", "delete", "Work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err = run("", "show", "--group", "Work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No items") {
		t.Errorf("expected Work to be empty after delete, got %q", out)
	}
}

func TestCLI_AssignErrors(t *testing.T) {
	run := newTestCLI(t)
	if _, err := run("a\n", "import"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"bad id", []string{"assign", "x", "G"}},
		{"unknown id", []string{"assign", "9", "G"}},
		{"strict unknown group", []string{"assign", "1", "G", "--strict"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run("", tt.args...); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestCLI_PickAndSets(t *testing.T) {
	run := newTestCLI(t)
	if _, err := run("a\nb\nc\nd\n", "import"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := run("", "pick", "--count", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// header plus three rows
	if lines := strings.Count(out, "\n"); lines != 4 {
		t.Errorf("expected 4 lines, got %d: %q", lines, out)
	}

	out, err = run("", "sets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "Set ") != 5 {
		t.Errorf("expected 5 sets, got %q", out)
	}

	if _, err := run("", "pick", "--group", "missing"); err == nil {
		t.Fatal("expected empty pool error, got nil")
	}
}

func TestCLI_ExportStatsClear(t *testing.T) {
	run := newTestCLI(t)
	if _, err := run("a,u1,G1\nb,u2,G1\n", "import"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := run("", "stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Total:  2") || !strings.Contains(out, "G1: 2") {
		t.Errorf("unexpected stats output %q", out)
	}

	path := filepath.Join(t.TempDir(), "export.json")
	if _, err := run("", "export", "-o", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err = run("", "export")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var exp models.Export
	if err := json.Unmarshal([]byte(out), &exp); err != nil {
		t.Fatalf("expected JSON export, got %q: %v", out, err)
	}
	if exp.Stats.Total != 2 || len(exp.Websites) != 2 {
		t.Errorf("expected 2 items in export, got %+v", exp.Stats)
	}

	if _, err := run("", "clear"); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
	if _, err := run("", "clear", "--yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err = run("", "stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Total:  0") {
		t.Errorf("expected empty stats after clear, got %q", out)
	}
}
