package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one recorded baseline in the history file.
type Entry struct {
	// Version is the library version the benchmarks were recorded for.
	Version string `json:"version"`
	// Timestamp is the UTC recording time, e.g. "2026-08-25T10:30:00Z".
	Timestamp string `json:"timestamp"`
	// Commit is the short git revision at recording time, or "unknown".
	Commit string `json:"commit"`
	// Benchmarks maps benchmark names to their mean in nanoseconds.
	Benchmarks map[string]float64 `json:"benchmarks"`
}

// LoadHistory reads the baseline history file. A missing, unreadable, or
// corrupt file yields an empty history.
func LoadHistory(path string) []Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var history []Entry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil
	}
	return history
}

// saveHistory writes the history file, creating its directory as needed.
func saveHistory(path string, history []Entry) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Record stores results as the baseline for version. An existing entry for
// the same version is overwritten in place, otherwise a new entry is
// appended. Returns a status message for display.
func Record(path, version, commit string, results []Result) (string, error) {
	history := LoadHistory(path)

	benchmarks := make(map[string]float64, len(results))
	for _, r := range results {
		benchmarks[r.Name] = r.MeanNs
	}

	entry := Entry{
		Version:    version,
		Timestamp:  time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		Commit:     commit,
		Benchmarks: benchmarks,
	}

	replaced := false
	for i := range history {
		if history[i].Version == version {
			history[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		history = append(history, entry)
	}

	if err := saveHistory(path, history); err != nil {
		return "", err
	}
	return fmt.Sprintf("Baseline updated for v%s (%d benchmarks)", version, len(benchmarks)), nil
}

// Reset deletes the baseline history file. Deleting a file that does not
// exist is not an error.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ShouldAutoRecord reports whether a run should record its results without
// being asked: there is no baseline yet, or the last recorded version
// differs from the current one.
func ShouldAutoRecord(path, version string) bool {
	if _, err := os.Stat(path); err != nil {
		return true
	}

	history := LoadHistory(path)
	last := ""
	if len(history) > 0 {
		last = history[len(history)-1].Version
	}
	return version != last
}
