// Package provision creates the on-disk layout for a single trial: the run
// directory, the Readme describing it, and the empty trial data store.
package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nishs1729/simulation-manager/internal/config"
	"github.com/nishs1729/simulation-manager/internal/store"
)

// RunMode selects the run-directory naming policy.
type RunMode string

const (
	// ModeRun resolves the directory from sim_dir, falling back to a
	// timestamped name.
	ModeRun RunMode = "run"
	// ModeTest pins the directory to the literal name "test".
	ModeTest RunMode = "test"
)

const fallbackDescription = "No description provided."

// Paths locates every artifact of a provisioned trial. The trial suffix is
// a path component: everything lives under data_loc/<sim_dir>/trial_<n>.
type Paths struct {
	SimPath    string
	ConfigPath string
	LogPath    string
	ReadmePath string
	DataPath   string
}

// Provisioner creates trial directories and placeholder artifacts.
type Provisioner struct {
	// Now supplies wall-clock time for timestamped directory names.
	// Nil means time.Now.
	Now func() time.Time

	// StoreKind selects the data-store backend for the placeholder,
	// "sqlite" (default) or "memory". The memory backend produces no
	// file artifact.
	StoreKind string
}

// Provision resolves the trial path, creates it (idempotently), writes the
// Readme and creates the empty data store. Existing Readme and data files
// at the same path are overwritten. Provisioning is not transactional: a
// failure partway leaves whatever was already created.
func (p Provisioner) Provision(ctx context.Context, cfg config.Config, trial int, mode RunMode) (Paths, error) {
	simPath := filepath.Join(cfg.DataLoc, p.simDirName(cfg, mode), fmt.Sprintf("trial_%d", trial))
	if err := os.MkdirAll(simPath, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create sim directory: %w", err)
	}

	paths := Paths{
		SimPath:    simPath,
		ConfigPath: filepath.Join(simPath, "config.json"),
		LogPath:    filepath.Join(simPath, "sim.log"),
		ReadmePath: filepath.Join(simPath, "Readme.md"),
		DataPath:   filepath.Join(simPath, fmt.Sprintf("data_%d.db", trial)),
	}

	description := cfg.Description
	if description == "" {
		description = fallbackDescription
	}
	if err := os.WriteFile(paths.ReadmePath, []byte(description+"\n"), 0o644); err != nil {
		return Paths{}, fmt.Errorf("write readme: %w", err)
	}

	if p.StoreKind != "memory" {
		if err := createEmptyDataStore(ctx, paths.DataPath); err != nil {
			return Paths{}, err
		}
	}
	return paths, nil
}

func (p Provisioner) simDirName(cfg config.Config, mode RunMode) string {
	if mode == ModeTest {
		return "test"
	}
	if cfg.SimDir != "" {
		return cfg.SimDir
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return "sim_" + now().Format("20060102_150405")
}

// createEmptyDataStore truncates any prior data file and initializes a fresh
// store schema with no rows.
func createEmptyDataStore(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("truncate data store: %w", err)
	}

	s := store.NewSQLiteStore(path)
	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("create data store: %w", err)
	}
	return s.Close()
}
