package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are harness-level options read from the environment. They sit
// above any config document: a non-empty DataLoc overrides the document's
// data_loc.
type Settings struct {
	DataLoc   string `env:"SIMMAN_DATA_LOC"`
	LogLevel  string `env:"SIMMAN_LOG_LEVEL" envDefault:"info"`
	StoreKind string `env:"SIMMAN_STORE" envDefault:"sqlite"`
}

// LoadSettings parses harness settings from environment variables.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
