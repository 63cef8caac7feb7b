// Package config loads clustering run parameters from JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/sparseccl/internal/ccl"
)

// DefaultConfigPath is the path to the canonical clustering defaults file.
const DefaultConfigPath = "config/clustering.defaults.json"

// ClusteringConfig holds the parameters of a clustering run. Every field is
// optional; the Get* methods supply defaults for missing values.
type ClusteringConfig struct {
	// Threshold is copied into every cluster identity.
	Threshold *float64 `json:"threshold,omitempty"`
	// Workers bounds concurrent module tasks; 0 means one per CPU.
	Workers *int `json:"workers,omitempty"`
	// SortPolicy is one of "check", "trust" or "sort".
	SortPolicy *string `json:"sort_policy,omitempty"`

	// Report params
	HistogramBins  *int `json:"histogram_bins,omitempty"`
	MinClusterSize *int `json:"min_cluster_size,omitempty"` // histogram filter only
	ScatterModules *int `json:"scatter_modules,omitempty"`  // modules rendered to HTML
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyClusteringConfig returns a ClusteringConfig with all fields set to nil.
func EmptyClusteringConfig() *ClusteringConfig {
	return &ClusteringConfig{}
}

// DefaultClusteringConfig returns a config with every field populated with
// its default.
func DefaultClusteringConfig() *ClusteringConfig {
	return &ClusteringConfig{
		Threshold:      ptrFloat64(0),
		Workers:        ptrInt(0),
		SortPolicy:     ptrString(ccl.DefaultSortPolicy.String()),
		HistogramBins:  ptrInt(20),
		MinClusterSize: ptrInt(1),
		ScatterModules: ptrInt(4),
	}
}

// LoadClusteringConfig loads a ClusteringConfig from a JSON file.
// The file must have a .json extension and be at most 1MB. Fields omitted
// from the file keep their defaults.
func LoadClusteringConfig(path string) (*ClusteringConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyClusteringConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root. Panics if the file
// cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *ClusteringConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadClusteringConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *ClusteringConfig) Validate() error {
	if c.Threshold != nil && *c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %f", *c.Threshold)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.SortPolicy != nil {
		if _, err := ccl.ParseSortPolicy(*c.SortPolicy); err != nil {
			return fmt.Errorf("invalid sort_policy: %w", err)
		}
	}
	if c.HistogramBins != nil && *c.HistogramBins <= 0 {
		return fmt.Errorf("histogram_bins must be positive, got %d", *c.HistogramBins)
	}
	if c.MinClusterSize != nil && *c.MinClusterSize < 1 {
		return fmt.Errorf("min_cluster_size must be at least 1, got %d", *c.MinClusterSize)
	}
	if c.ScatterModules != nil && *c.ScatterModules < 0 {
		return fmt.Errorf("scatter_modules must be non-negative, got %d", *c.ScatterModules)
	}
	return nil
}

// GetThreshold returns the threshold value or the default.
func (c *ClusteringConfig) GetThreshold() float64 {
	if c.Threshold == nil {
		return 0
	}
	return *c.Threshold
}

// GetWorkers returns the workers value or the default (0, one per CPU).
func (c *ClusteringConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// GetSortPolicy returns the parsed sort_policy or the default. Invalid
// values fall back to the default; Validate reports them.
func (c *ClusteringConfig) GetSortPolicy() ccl.SortPolicy {
	if c.SortPolicy == nil {
		return ccl.DefaultSortPolicy
	}
	p, err := ccl.ParseSortPolicy(*c.SortPolicy)
	if err != nil {
		return ccl.DefaultSortPolicy
	}
	return p
}

// GetHistogramBins returns the histogram_bins value or the default.
func (c *ClusteringConfig) GetHistogramBins() int {
	if c.HistogramBins == nil {
		return 20
	}
	return *c.HistogramBins
}

// GetMinClusterSize returns the min_cluster_size value or the default.
func (c *ClusteringConfig) GetMinClusterSize() int {
	if c.MinClusterSize == nil {
		return 1
	}
	return *c.MinClusterSize
}

// GetScatterModules returns the scatter_modules value or the default.
func (c *ClusteringConfig) GetScatterModules() int {
	if c.ScatterModules == nil {
		return 4
	}
	return *c.ScatterModules
}
