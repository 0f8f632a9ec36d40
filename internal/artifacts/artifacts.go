// Package artifacts reads and writes per-run file artifacts: the merged
// config.json inside a trial directory, the run_index.json under the storage
// root, and run exports.
package artifacts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

const runIndexFile = "run_index.json"

// MergedConfig is the configuration persisted into a trial directory after
// parameter resolution: the user's document with params replaced by the
// resolved parameter set.
type MergedConfig struct {
	Description string         `json:"description"`
	SimDir      string         `json:"sim_dir,omitempty"`
	DataLoc     string         `json:"data_loc"`
	Params      map[string]any `json:"params"`
}

type RunIndexEntry struct {
	RunID        string `json:"run_id"`
	Model        string `json:"model"`
	Trial        int    `json:"trial"`
	Seed         int64  `json:"seed"`
	SimPath      string `json:"sim_path"`
	Description  string `json:"description,omitempty"`
	CreatedAtUTC string `json:"created_at_utc"`
}

func WriteMergedConfig(path string, cfg MergedConfig) error {
	return writeJSON(path, cfg)
}

func ReadMergedConfig(path string) (MergedConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return MergedConfig{}, false, nil
		}
		return MergedConfig{}, false, err
	}

	var cfg MergedConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return MergedConfig{}, false, err
	}
	return cfg, true, nil
}

// AppendRunIndex records a run in <baseDir>/run_index.json, replacing any
// entry with the same run id.
func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex returns the recorded runs, newest first.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry RunIndexEntry
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]RunIndexEntry, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

// ExportRun copies a trial directory's artifacts into outDir/<runID>.
// config.json and Readme.md are required; sim.log and data files are copied
// when present.
func ExportRun(simPath, outDir, runID string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}
	if _, err := os.Stat(simPath); err != nil {
		return "", err
	}

	dst := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", err
	}

	for _, file := range []string{"config.json", "Readme.md"} {
		if err := copyFile(filepath.Join(simPath, file), filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}

	optional := []string{"sim.log"}
	dataFiles, err := filepath.Glob(filepath.Join(simPath, "data_*.db"))
	if err != nil {
		return "", err
	}
	for _, path := range dataFiles {
		optional = append(optional, filepath.Base(path))
	}
	for _, file := range optional {
		src := filepath.Join(simPath, file)
		if _, err := os.Stat(src); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		if err := copyFile(src, filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}

	return dst, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
