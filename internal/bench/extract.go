// Package bench extracts benchmark measurements and tracks them against a
// versioned baseline history.
package bench

import (
	"encoding/json"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Result is one benchmark measurement extracted from a criterion run.
type Result struct {
	// Name identifies the benchmark, path segments joined with "/".
	Name string `json:"name"`
	// MeanNs is the mean point estimate in nanoseconds, rounded to 0.1 ns.
	MeanNs float64 `json:"mean_ns"`
}

// Extract walks criterionDir for new/estimates.json files and returns the
// mean point estimate of every benchmark found. Trees containing a "report"
// segment and files that cannot be parsed are skipped. A missing directory
// yields no results.
func Extract(criterionDir string) []Result {
	info, err := os.Stat(criterionDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	var results []Result
	filepath.WalkDir(criterionDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || d.Name() != "estimates.json" {
			return nil
		}

		rel, err := filepath.Rel(criterionDir, path)
		if err != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		// Only <bench>/.../new/estimates.json counts as a fresh measurement.
		if len(parts) < 3 || parts[len(parts)-2] != "new" {
			return nil
		}
		benchParts := parts[: len(parts)-2]
		for _, p := range benchParts {
			if p == "report" {
				return nil
			}
		}

		mean, ok := readMean(path)
		if !ok {
			return nil
		}
		results = append(results, Result{
			Name:   strings.Join(benchParts, "/"),
			MeanNs: math.Round(mean*10) / 10,
		})
		return nil
	})

	return results
}

// readMean parses mean.point_estimate out of an estimates.json file.
func readMean(path string) (float64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	var est struct {
		Mean struct {
			PointEstimate *float64 `json:"point_estimate"`
		} `json:"mean"`
	}
	if err := json.Unmarshal(data, &est); err != nil {
		return 0, false
	}
	if est.Mean.PointEstimate == nil {
		return 0, false
	}
	return *est.Mean.PointEstimate, true
}
