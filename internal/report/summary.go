// Package report turns clustering run results into summaries, JSON
// exports and plots.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/sparseccl/internal/fsutil"
	"github.com/banshee-data/sparseccl/internal/pipeline"
)

// ModuleSummary describes one module of a run.
type ModuleSummary struct {
	Index     int    `json:"index"`
	Geometry  uint64 `json:"geometry"`
	Cells     int    `json:"cells"`
	Clusters  int    `json:"clusters"`
	ElapsedUs int64  `json:"elapsed_us"`
	Error     string `json:"error,omitempty"`
}

// Summary aggregates a run.
type Summary struct {
	RunID         string  `json:"run_id"`
	DurationMs    float64 `json:"duration_ms"`
	Modules       int     `json:"modules"`
	FailedModules int     `json:"failed_modules"`
	Cells         int     `json:"cells"` // cells in successfully clustered modules
	Clusters      int     `json:"clusters"`
	Singletons    int     `json:"singletons"`

	MeanClusterSize   float64 `json:"mean_cluster_size"`
	StdDevClusterSize float64 `json:"stddev_cluster_size"`
	MedianClusterSize float64 `json:"median_cluster_size"`
	MaxClusterSize    int     `json:"max_cluster_size"`

	PerModule []ModuleSummary `json:"per_module"`
}

// Summarize computes cluster-size statistics over every successful module
// of res.
func Summarize(res *pipeline.RunResult) Summary {
	s := Summary{
		RunID:      res.RunID.String(),
		DurationMs: float64(res.Duration.Microseconds()) / 1000,
		Modules:    len(res.Modules),
		PerModule:  make([]ModuleSummary, 0, len(res.Modules)),
	}

	for _, m := range res.Modules {
		ms := ModuleSummary{
			Index:     m.Index,
			Geometry:  m.Module.Geometry,
			ElapsedUs: m.Elapsed.Microseconds(),
		}
		if m.Err != nil {
			s.FailedModules++
			ms.Error = m.Err.Error()
		} else if m.Clusters != nil {
			ms.Clusters = m.Clusters.Len()
			for _, e := range m.Clusters.All() {
				ms.Cells += len(e.Items)
			}
		}
		s.Cells += ms.Cells
		s.PerModule = append(s.PerModule, ms)
	}

	sizes := res.ClusterSizes()
	s.Clusters = len(sizes)
	if len(sizes) == 0 {
		return s
	}

	xs := make([]float64, len(sizes))
	for i, n := range sizes {
		xs[i] = float64(n)
		if n == 1 {
			s.Singletons++
		}
		s.MaxClusterSize = max(s.MaxClusterSize, n)
	}
	slices.Sort(xs)

	s.MeanClusterSize = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.StdDevClusterSize = stat.StdDev(xs, nil)
	}
	s.MedianClusterSize = stat.Quantile(0.5, stat.Empirical, xs, nil)
	return s
}

// WriteJSON writes s as indented JSON to path, creating parent directories.
func WriteJSON(fsys fsutil.FileSystem, path string, s Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
