package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/sparseccl/internal/ccl"
)

func TestDefaultClusteringConfig(t *testing.T) {
	cfg := DefaultClusteringConfig()

	if cfg.SortPolicy == nil || *cfg.SortPolicy != "check" {
		t.Errorf("Expected SortPolicy 'check', got %v", cfg.SortPolicy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
	if cfg.GetSortPolicy() != ccl.PolicyCheck {
		t.Errorf("GetSortPolicy() = %v, want check", cfg.GetSortPolicy())
	}
	if cfg.GetHistogramBins() != 20 {
		t.Errorf("GetHistogramBins() = %d, want 20", cfg.GetHistogramBins())
	}
}

func TestEmptyClusteringConfig_Getters(t *testing.T) {
	cfg := EmptyClusteringConfig()
	def := DefaultClusteringConfig()

	if cfg.GetThreshold() != *def.Threshold {
		t.Errorf("GetThreshold() = %f", cfg.GetThreshold())
	}
	if cfg.GetWorkers() != *def.Workers {
		t.Errorf("GetWorkers() = %d", cfg.GetWorkers())
	}
	if cfg.GetSortPolicy() != ccl.DefaultSortPolicy {
		t.Errorf("GetSortPolicy() = %v", cfg.GetSortPolicy())
	}
	if cfg.GetHistogramBins() != *def.HistogramBins {
		t.Errorf("GetHistogramBins() = %d", cfg.GetHistogramBins())
	}
	if cfg.GetMinClusterSize() != *def.MinClusterSize {
		t.Errorf("GetMinClusterSize() = %d", cfg.GetMinClusterSize())
	}
	if cfg.GetScatterModules() != *def.ScatterModules {
		t.Errorf("GetScatterModules() = %d", cfg.GetScatterModules())
	}
}

func TestLoadClusteringConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "threshold": 0.3,
  "workers": 4,
  "sort_policy": "sort"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadClusteringConfig(configPath)
	if err != nil {
		t.Fatalf("LoadClusteringConfig failed: %v", err)
	}

	if cfg.GetThreshold() != 0.3 {
		t.Errorf("GetThreshold() = %f, want 0.3", cfg.GetThreshold())
	}
	if cfg.GetWorkers() != 4 {
		t.Errorf("GetWorkers() = %d, want 4", cfg.GetWorkers())
	}
	if cfg.GetSortPolicy() != ccl.PolicySort {
		t.Errorf("GetSortPolicy() = %v, want sort", cfg.GetSortPolicy())
	}
	// Omitted fields keep defaults.
	if cfg.GetHistogramBins() != 20 {
		t.Errorf("GetHistogramBins() = %d, want 20", cfg.GetHistogramBins())
	}
}

func TestLoadClusteringConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, body string) string {
		t.Helper()
		p := filepath.Join(tmpDir, name)
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return p
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"wrong extension", write("cfg.yaml", "{}"), ".json extension"},
		{"missing file", filepath.Join(tmpDir, "absent.json"), "failed to stat"},
		{"bad json", write("bad.json", "{"), "failed to parse"},
		{"bad policy", write("policy.json", `{"sort_policy": "maybe"}`), "invalid sort_policy"},
		{"negative workers", write("workers.json", `{"workers": -1}`), "workers must be non-negative"},
		{"negative threshold", write("threshold.json", `{"threshold": -0.1}`), "threshold must be non-negative"},
		{"zero bins", write("bins.json", `{"histogram_bins": 0}`), "histogram_bins must be positive"},
		{"min size zero", write("min.json", `{"min_cluster_size": 0}`), "min_cluster_size must be at least 1"},
		{"negative scatter", write("scatter.json", `{"scatter_modules": -2}`), "scatter_modules must be non-negative"},
		{"too large", write("large.json", `{"threshold": 0}`+strings.Repeat(" ", 1024*1024+1)), "too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadClusteringConfig(tt.path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetSortPolicy_InvalidFallsBack(t *testing.T) {
	cfg := &ClusteringConfig{SortPolicy: ptrString("sideways")}
	if cfg.GetSortPolicy() != ccl.DefaultSortPolicy {
		t.Errorf("GetSortPolicy() = %v, want default", cfg.GetSortPolicy())
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults file invalid: %v", err)
	}

	// The defaults file and DefaultClusteringConfig must agree.
	def := DefaultClusteringConfig()
	if cfg.GetSortPolicy() != def.GetSortPolicy() ||
		cfg.GetWorkers() != def.GetWorkers() ||
		cfg.GetThreshold() != def.GetThreshold() ||
		cfg.GetHistogramBins() != def.GetHistogramBins() ||
		cfg.GetMinClusterSize() != def.GetMinClusterSize() ||
		cfg.GetScatterModules() != def.GetScatterModules() {
		t.Errorf("defaults file %+v disagrees with DefaultClusteringConfig", cfg)
	}
}
