package simrun

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nishs1729/simulation-manager/internal/config"
)

func newTestClient() *Client {
	return New(Options{
		Settings: config.Settings{StoreKind: "memory", LogLevel: "info"},
		Now: func() time.Time {
			return time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)
		},
	})
}

func inlineSource(dataLoc string) map[string]any {
	return map[string]any{
		"description": "t",
		"sim_dir":     "run1",
		"data_loc":    dataLoc,
		"params":      map[string]any{"tend": 10.0},
	}
}

func TestClientRunEndToEnd(t *testing.T) {
	dataLoc := t.TempDir()
	client := newTestClient()

	summary, err := client.Run(context.Background(), RunRequest{
		ConfigSource: inlineSource(dataLoc),
		Seed:         7,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Model != "fhn" || summary.Trial != 7 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	wantPath := filepath.Join(dataLoc, "run1", "trial_7")
	if summary.SimPath != wantPath {
		t.Fatalf("sim path = %s, want %s", summary.SimPath, wantPath)
	}
	if len(summary.Series) != 3 {
		t.Fatalf("expected 3 series, got %v", summary.Series)
	}

	for _, file := range []string{"config.json", "sim.log", "Readme.md"} {
		if _, err := os.Stat(filepath.Join(summary.SimPath, file)); err != nil {
			t.Fatalf("expected artifact %s: %v", file, err)
		}
	}
}

func TestClientRunFromConfigFile(t *testing.T) {
	dataLoc := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "fhn.json")
	body := `{"description":"t","sim_dir":"run1","data_loc":"` + dataLoc + `","params":{"tend":5}}`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	summary, err := newTestClient().Run(context.Background(), RunRequest{
		ConfigPath: configPath,
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID != "run1-trial_1" {
		t.Fatalf("unexpected run id: %s", summary.RunID)
	}
}

func TestClientRunsShowExport(t *testing.T) {
	dataLoc := t.TempDir()
	client := newTestClient()

	if _, err := client.Run(context.Background(), RunRequest{ConfigSource: inlineSource(dataLoc), Seed: 2}); err != nil {
		t.Fatalf("run: %v", err)
	}

	entries, err := client.Runs(dataLoc, 0)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(entries) != 1 || entries[0].Trial != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	merged, err := client.Show(ShowRequest{DataLoc: dataLoc, Latest: true})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if merged.Params["tend"] != 10.0 {
		t.Fatalf("unexpected merged params: %+v", merged.Params)
	}
	// Defaults the config did not override survive the merge.
	if merged.Params["tau"] != 12.5 {
		t.Fatalf("default tau missing: %+v", merged.Params)
	}

	outDir := filepath.Join(t.TempDir(), "exports")
	dst, err := client.Export(ExportRequest{DataLoc: dataLoc, Latest: true, OutDir: outDir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "config.json")); err != nil {
		t.Fatalf("exported config missing: %v", err)
	}
}

func TestClientRunTestMode(t *testing.T) {
	dataLoc := t.TempDir()

	summary, err := newTestClient().Run(context.Background(), RunRequest{
		ConfigSource: inlineSource(dataLoc),
		Seed:         1,
		TestRun:      true,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := filepath.Join(dataLoc, "test", "trial_1")
	if summary.SimPath != want {
		t.Fatalf("sim path = %s, want %s", summary.SimPath, want)
	}
}

func TestClientRunUnknownModel(t *testing.T) {
	_, err := newTestClient().Run(context.Background(), RunRequest{
		Model:        "lorenz",
		ConfigSource: inlineSource(t.TempDir()),
	})
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestClientRunRequiresSource(t *testing.T) {
	_, err := newTestClient().Run(context.Background(), RunRequest{Seed: 1})
	if err == nil {
		t.Fatal("expected error without config source")
	}
}
