// Package simrun is the public interface of the simulation harness: build a
// run context for a named model, execute it, and inspect past runs.
package simrun

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nishs1729/simulation-manager/internal/artifacts"
	"github.com/nishs1729/simulation-manager/internal/config"
	"github.com/nishs1729/simulation-manager/internal/fhn"
	"github.com/nishs1729/simulation-manager/internal/provision"
	"github.com/nishs1729/simulation-manager/internal/sim"
)

const DefaultSeed = 42

type Options struct {
	// Settings overlay the environment-level overrides; the zero value
	// selects the sqlite store and info logging.
	Settings config.Settings

	// Now supplies wall-clock time; nil means time.Now.
	Now func() time.Time
}

type Client struct {
	settings config.Settings
	now      func() time.Time
}

type RunRequest struct {
	// Model names the registered simulation model; empty means "fhn".
	Model string

	// ConfigSource is an inline configuration mapping. When nil,
	// ConfigPath must name a config file.
	ConfigSource any
	ConfigPath   string

	Seed      int64
	Verbosity string

	// TestRun pins the run directory to the literal name "test".
	TestRun bool
}

type RunSummary struct {
	RunID   string
	Model   string
	Trial   int
	Seed    int64
	SimPath string
	Series  []string
}

type ShowRequest struct {
	DataLoc string
	RunID   string
	Latest  bool
}

type ExportRequest struct {
	DataLoc string
	RunID   string
	Latest  bool
	OutDir  string
}

func New(opts Options) *Client {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Client{settings: opts.Settings, now: now}
}

// Run builds a run context for the requested model, executes it and records
// the run. The returned summary lists the persisted series.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	m, err := modelFromName(req.Model)
	if err != nil {
		return RunSummary{}, err
	}

	var source any = req.ConfigSource
	if source == nil {
		if req.ConfigPath == "" {
			return RunSummary{}, &config.ConfigError{Reason: "a config source or config path is required"}
		}
		source = req.ConfigPath
	}

	opts := sim.Options{
		Verbosity: req.Verbosity,
		Settings:  c.settings,
		Now:       c.now,
	}
	if req.TestRun {
		opts.RunMode = provision.ModeTest
	}

	rc, err := sim.NewRunContext(ctx, m, source, req.Seed, opts)
	if err != nil {
		return RunSummary{}, err
	}
	defer rc.Close()

	if err := m.Run(ctx, rc); err != nil {
		rc.Logger.Error("run failed", "error", err)
		return RunSummary{}, err
	}

	series, err := rc.Store.ListSeries(ctx)
	if err != nil {
		return RunSummary{}, err
	}
	return RunSummary{
		RunID:   rc.RunID,
		Model:   m.Name(),
		Trial:   rc.Trial,
		Seed:    req.Seed,
		SimPath: rc.Paths.SimPath,
		Series:  series,
	}, nil
}

// Runs lists recorded runs under dataLoc, newest first. A positive limit
// truncates the list.
func (c *Client) Runs(dataLoc string, limit int) ([]artifacts.RunIndexEntry, error) {
	entries, err := artifacts.ListRunIndex(dataLoc)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Show returns the merged configuration persisted for a run.
func (c *Client) Show(req ShowRequest) (artifacts.MergedConfig, error) {
	entry, err := c.findRun(req.DataLoc, req.RunID, req.Latest)
	if err != nil {
		return artifacts.MergedConfig{}, err
	}

	merged, ok, err := artifacts.ReadMergedConfig(filepath.Join(entry.SimPath, "config.json"))
	if err != nil {
		return artifacts.MergedConfig{}, err
	}
	if !ok {
		return artifacts.MergedConfig{}, fmt.Errorf("run %s has no config.json", entry.RunID)
	}
	return merged, nil
}

// Export copies a run's artifacts into outDir/<run id> and returns the
// destination directory.
func (c *Client) Export(req ExportRequest) (string, error) {
	entry, err := c.findRun(req.DataLoc, req.RunID, req.Latest)
	if err != nil {
		return "", err
	}
	return artifacts.ExportRun(entry.SimPath, req.OutDir, entry.RunID)
}

func (c *Client) findRun(dataLoc, runID string, latest bool) (artifacts.RunIndexEntry, error) {
	entries, err := artifacts.ListRunIndex(dataLoc)
	if err != nil {
		return artifacts.RunIndexEntry{}, err
	}
	if len(entries) == 0 {
		return artifacts.RunIndexEntry{}, fmt.Errorf("no recorded runs under %s", dataLoc)
	}
	if latest || runID == "" {
		return entries[0], nil
	}
	for _, entry := range entries {
		if entry.RunID == runID {
			return entry, nil
		}
	}
	return artifacts.RunIndexEntry{}, fmt.Errorf("unknown run: %s", runID)
}

func modelFromName(name string) (sim.Model, error) {
	switch name {
	case "", "fhn":
		return fhn.New(), nil
	default:
		return nil, fmt.Errorf("unknown model: %s", name)
	}
}
