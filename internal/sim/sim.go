// Package sim builds the immutable context a simulation model runs inside:
// resolved configuration and parameters, the seeded random source, the
// provisioned trial directory, the run logger and the trial data store.
package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/nishs1729/simulation-manager/internal/artifacts"
	"github.com/nishs1729/simulation-manager/internal/config"
	"github.com/nishs1729/simulation-manager/internal/model"
	"github.com/nishs1729/simulation-manager/internal/provision"
	"github.com/nishs1729/simulation-manager/internal/runlog"
	"github.com/nishs1729/simulation-manager/internal/store"
)

// Model is a concrete simulation. Defaults supplies the model's
// default-parameter map; Run executes the simulation inside a built context.
type Model interface {
	Name() string
	Defaults() map[string]any
	Run(ctx context.Context, rc *RunContext) error
}

// Options tune how a run context is built.
type Options struct {
	// RunMode selects directory naming; zero value is provision.ModeRun.
	RunMode provision.RunMode

	// Verbosity is the log verbosity string; a value containing "debug"
	// enables debug logging. Empty falls back to Settings.LogLevel.
	Verbosity string

	// Settings are the environment-level overrides; zero value means no
	// overrides and the default sqlite backend.
	Settings config.Settings

	// Now supplies wall-clock time for timestamped directory names and
	// run-index entries. Nil means time.Now.
	Now func() time.Time
}

// RunContext is the materialized state of a single trial. It is built once
// and read-only during the run.
type RunContext struct {
	RunID  string
	Config config.Config
	Params map[string]any
	Trial  int
	Seed   int64
	Paths  provision.Paths
	RNG    *rand.Rand
	Logger *slog.Logger
	Store  store.Store

	logCloser io.Closer
}

// NewRunContext executes the fixed construction sequence: resolve config and
// parameters, derive the trial from the seed (zero means trial 1), seed a
// run-local random source, provision the trial directory, open the run
// logger and data store, and persist the merged configuration. Any failure
// before provisioning leaves the filesystem untouched.
func NewRunContext(ctx context.Context, m Model, source any, seed int64, opts Options) (*RunContext, error) {
	if m == nil {
		return nil, &config.ContractError{Reason: "model is nil"}
	}

	cfg, params, err := config.Resolve(source, m.Defaults())
	if err != nil {
		return nil, err
	}
	if opts.Settings.DataLoc != "" {
		cfg.DataLoc = opts.Settings.DataLoc
	}
	if cfg.DataLoc == "" {
		return nil, &config.ConfigError{Reason: "data_loc is required"}
	}

	trial := 1
	if seed != 0 {
		trial = int(seed)
	}
	rng := rand.New(rand.NewSource(int64(trial)))

	mode := opts.RunMode
	if mode == "" {
		mode = provision.ModeRun
	}
	storeKind := opts.Settings.StoreKind
	if storeKind == "" {
		storeKind = "sqlite"
	}

	provisioner := provision.Provisioner{Now: opts.Now, StoreKind: storeKind}
	paths, err := provisioner.Provision(ctx, cfg, trial, mode)
	if err != nil {
		return nil, err
	}

	verbosity := opts.Verbosity
	if verbosity == "" {
		verbosity = opts.Settings.LogLevel
	}
	logger, logCloser, err := runlog.New(paths.LogPath, verbosity)
	if err != nil {
		return nil, err
	}

	rc := &RunContext{
		RunID:     runID(paths.SimPath),
		Config:    cfg,
		Params:    params,
		Trial:     trial,
		Seed:      seed,
		Paths:     paths,
		RNG:       rng,
		Logger:    logger,
		logCloser: logCloser,
	}

	dataStore, err := store.NewStore(storeKind, paths.DataPath)
	if err != nil {
		rc.Close()
		return nil, err
	}
	if err := dataStore.Init(ctx); err != nil {
		rc.Close()
		return nil, fmt.Errorf("init data store: %w", err)
	}
	rc.Store = dataStore

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	createdAt := now().UTC().Format(time.RFC3339)

	meta := model.RunMeta{
		VersionedRecord: model.VersionedRecord{SchemaVersion: store.CurrentSchemaVersion, CodecVersion: store.CurrentCodecVersion},
		RunID:           rc.RunID,
		Model:           m.Name(),
		Trial:           trial,
		Seed:            seed,
		Description:     cfg.Description,
		CreatedAt:       createdAt,
	}
	if err := dataStore.SaveRunMeta(ctx, meta); err != nil {
		rc.Close()
		return nil, fmt.Errorf("save run meta: %w", err)
	}

	merged := artifacts.MergedConfig{
		Description: cfg.Description,
		SimDir:      cfg.SimDir,
		DataLoc:     cfg.DataLoc,
		Params:      params,
	}
	if err := artifacts.WriteMergedConfig(paths.ConfigPath, merged); err != nil {
		rc.Close()
		return nil, fmt.Errorf("persist merged config: %w", err)
	}

	entry := artifacts.RunIndexEntry{
		RunID:        rc.RunID,
		Model:        m.Name(),
		Trial:        trial,
		Seed:         seed,
		SimPath:      paths.SimPath,
		Description:  cfg.Description,
		CreatedAtUTC: createdAt,
	}
	if err := artifacts.AppendRunIndex(cfg.DataLoc, entry); err != nil {
		rc.Close()
		return nil, fmt.Errorf("append run index: %w", err)
	}

	logger.Info("run context ready",
		"run_id", rc.RunID,
		"model", m.Name(),
		"trial", trial,
		"seed", seed,
		"sim_path", paths.SimPath,
	)
	return rc, nil
}

// Close releases the log file and the data store.
func (rc *RunContext) Close() error {
	var firstErr error
	if rc.logCloser != nil {
		if err := rc.logCloser.Close(); err != nil {
			firstErr = err
		}
		rc.logCloser = nil
	}
	if rc.Store != nil {
		if err := store.CloseIfSupported(rc.Store); err != nil && firstErr == nil {
			firstErr = err
		}
		rc.Store = nil
	}
	return firstErr
}

// runID derives a stable identifier from the trial path, e.g.
// data/run1/trial_7 -> run1-trial_7.
func runID(simPath string) string {
	return filepath.Base(filepath.Dir(simPath)) + "-" + filepath.Base(simPath)
}
