package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var fhnDefaults = map[string]any{
	"a":    0.7,
	"b":    0.8,
	"tau":  12.5,
	"tend": 100.0,
}

func TestResolveOverlaysParamsOnDefaults(t *testing.T) {
	source := map[string]any{
		"description": "overlay",
		"data_loc":    "data/",
		"params": map[string]any{
			"b":    1.0,
			"tend": 200.0,
			"y0":   []any{0.1, 0.5},
		},
	}

	cfg, params, err := Resolve(source, fhnDefaults)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.DataLoc != "data/" {
		t.Fatalf("unexpected data_loc: %s", cfg.DataLoc)
	}

	// Union of keys, config wins on overlap.
	if len(params) != 5 {
		t.Fatalf("expected 5 resolved params, got %d: %+v", len(params), params)
	}
	if params["a"] != 0.7 {
		t.Fatalf("default a not preserved: %v", params["a"])
	}
	if params["b"] != 1.0 {
		t.Fatalf("config b did not win: %v", params["b"])
	}
	if params["tend"] != 200.0 {
		t.Fatalf("config tend did not win: %v", params["tend"])
	}
	if _, ok := params["y0"]; !ok {
		t.Fatal("admitted key y0 missing from resolved params")
	}
}

func TestResolveDoesNotMutateDefaults(t *testing.T) {
	defaults := map[string]any{"a": 0.7}
	source := map[string]any{
		"data_loc": "data/",
		"params":   map[string]any{"a": 9.9},
	}

	if _, _, err := Resolve(source, defaults); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if defaults["a"] != 0.7 {
		t.Fatalf("defaults mutated: %v", defaults["a"])
	}
}

func TestResolveMissingParamsField(t *testing.T) {
	source := map[string]any{"description": "no params", "data_loc": "data/"}

	_, _, err := Resolve(source, fhnDefaults)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestResolveBadSourceType(t *testing.T) {
	_, _, err := Resolve(42, fhnDefaults)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for int source, got %v", err)
	}
}

func TestResolveMissingFile(t *testing.T) {
	_, _, err := Resolve(filepath.Join(t.TempDir(), "nope.json"), fhnDefaults)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for missing file, got %v", err)
	}
}

func TestResolveEmptyDefaults(t *testing.T) {
	source := map[string]any{"data_loc": "data/", "params": map[string]any{}}

	_, _, err := Resolve(source, nil)
	var contractErr *ContractError
	if !errors.As(err, &contractErr) {
		t.Fatalf("expected ContractError, got %v", err)
	}
}

func TestResolveFromFiles(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		body string
	}{
		{"cfg.json", `{"description":"t","sim_dir":"run1","data_loc":"data/","params":{"tend":200}}`},
		{"cfg.yaml", "description: t\nsim_dir: run1\ndata_loc: data/\nparams:\n  tend: 200\n"},
		{"cfg.toml", "description = \"t\"\nsim_dir = \"run1\"\ndata_loc = \"data/\"\n[params]\ntend = 200\n"},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name)
		if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
			t.Fatalf("write %s: %v", tc.name, err)
		}

		cfg, params, err := Resolve(path, fhnDefaults)
		if err != nil {
			t.Fatalf("resolve %s: %v", tc.name, err)
		}
		if cfg.SimDir != "run1" || cfg.Description != "t" {
			t.Fatalf("%s: unexpected config %+v", tc.name, cfg)
		}
		tend, ok := AsFloat64(params["tend"])
		if !ok || tend != 200 {
			t.Fatalf("%s: tend not overridden: %v", tc.name, params["tend"])
		}
	}
}

func TestAsFloat64Slice(t *testing.T) {
	values, ok := AsFloat64Slice([]any{0.1, 0.5})
	if !ok || len(values) != 2 || values[1] != 0.5 {
		t.Fatalf("unexpected slice: %v ok=%v", values, ok)
	}
	if _, ok := AsFloat64Slice([]any{"x"}); ok {
		t.Fatal("expected failure for non-numeric element")
	}
}
