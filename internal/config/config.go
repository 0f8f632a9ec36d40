// Package config resolves simulation configuration from inline mappings or
// JSON/YAML/TOML documents and overlays user parameters onto model defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the user-facing simulation configuration document.
type Config struct {
	Description string         `json:"description" yaml:"description" toml:"description"`
	SimDir      string         `json:"sim_dir,omitempty" yaml:"sim_dir,omitempty" toml:"sim_dir,omitempty"`
	DataLoc     string         `json:"data_loc" yaml:"data_loc" toml:"data_loc"`
	Params      map[string]any `json:"params" yaml:"params" toml:"params"`
}

// Resolve accepts a configuration source and a model's default-parameter map
// and produces the parsed config plus the resolved parameter set.
//
// The source is either an in-memory mapping (map[string]any, Config or
// *Config) or a string naming an existing config file. Resolved parameters
// are a shallow copy of defaults with every key from config params overlaid;
// keys absent from defaults are admitted unchanged.
func Resolve(source any, defaults map[string]any) (Config, map[string]any, error) {
	if len(defaults) == 0 {
		return Config{}, nil, &ContractError{Reason: "model default parameters are missing or empty"}
	}

	cfg, err := loadSource(source)
	if err != nil {
		return Config{}, nil, err
	}
	if cfg.Params == nil {
		return Config{}, nil, &ConfigError{Reason: "configuration has no params field; supply at least an empty mapping"}
	}

	params := make(map[string]any, len(defaults)+len(cfg.Params))
	for key, value := range defaults {
		params[key] = value
	}
	for key, value := range cfg.Params {
		params[key] = value
	}
	return cfg, params, nil
}

func loadSource(source any) (Config, error) {
	switch src := source.(type) {
	case Config:
		return src, nil
	case *Config:
		if src == nil {
			return Config{}, &ConfigError{Reason: "nil config"}
		}
		return *src, nil
	case map[string]any:
		return fromMap(src)
	case string:
		return loadFile(src)
	default:
		return Config{}, &ConfigError{Reason: fmt.Sprintf("source must be a mapping or a file path, got %T", source)}
	}
}

func loadFile(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Config{}, &ConfigError{Reason: fmt.Sprintf("config file %s does not exist", path), Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Reason: fmt.Sprintf("read config file %s", path), Err: err}
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return Config{}, &ConfigError{Reason: fmt.Sprintf("parse config file %s", path), Err: err}
	}
	return fromMap(raw)
}

func fromMap(raw map[string]any) (Config, error) {
	var cfg Config
	if v, ok := asString(raw["description"]); ok {
		cfg.Description = v
	}
	if v, ok := asString(raw["sim_dir"]); ok {
		cfg.SimDir = v
	}
	if v, ok := asString(raw["data_loc"]); ok {
		cfg.DataLoc = v
	}
	if params, ok := raw["params"].(map[string]any); ok {
		cfg.Params = make(map[string]any, len(params))
		for key, value := range params {
			cfg.Params[key] = value
		}
	}
	return cfg, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsFloat64 extracts a numeric parameter value, accepting the int and
// float64 representations the JSON/YAML/TOML decoders produce.
func AsFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// AsFloat64Slice extracts a numeric-array parameter value such as y0.
func AsFloat64Slice(v any) ([]float64, bool) {
	switch xs := v.(type) {
	case []float64:
		out := make([]float64, len(xs))
		copy(out, xs)
		return out, true
	case []any:
		out := make([]float64, 0, len(xs))
		for _, item := range xs {
			f, ok := AsFloat64(item)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	default:
		return nil, false
	}
}
