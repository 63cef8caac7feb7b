// Package main provides a command-line driver that clusters detector hits
// read from a CSV file and reports the resulting clusters.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/banshee-data/sparseccl/internal/ccl"
	"github.com/banshee-data/sparseccl/internal/cells"
	"github.com/banshee-data/sparseccl/internal/config"
	"github.com/banshee-data/sparseccl/internal/fsutil"
	"github.com/banshee-data/sparseccl/internal/ingest"
	"github.com/banshee-data/sparseccl/internal/monitoring"
	"github.com/banshee-data/sparseccl/internal/pipeline"
	"github.com/banshee-data/sparseccl/internal/report"
	"github.com/banshee-data/sparseccl/internal/version"
)

// Config holds the command-line configuration.
type Config struct {
	Input       string
	ConfigPath  string
	Event       uint64
	Workers     int
	SortPolicy  string
	OutputJSON  string
	PlotDir     string
	Verbose     bool
	ShowVersion bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("invalid flags: %v", err)
	}
	if cfg.ShowVersion {
		fmt.Println("ccl", version.String())
		return
	}

	logger, err := monitoring.NewZapLogger(cfg.Verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	monitoring.UseZap(logger)

	if err := run(context.Background(), cfg, fsutil.OSFileSystem{}, os.Stdout); err != nil {
		logger.Sugar().Errorf("ccl: %v", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func parseFlags(args []string) (Config, error) {
	cfg := Config{}
	fs := flag.NewFlagSet("ccl", flag.ContinueOnError)

	fs.StringVar(&cfg.Input, "input", "", "CSV of hits: geometry_id,hit_id,channel0,channel1,timestamp,value")
	fs.StringVar(&cfg.ConfigPath, "config", "", "Clustering config JSON (defaults apply when empty)")
	fs.Uint64Var(&cfg.Event, "event", 0, "Event id stamped on every module")
	fs.IntVar(&cfg.Workers, "workers", -1, "Concurrent module tasks (0 = one per CPU, -1 = from config)")
	fs.StringVar(&cfg.SortPolicy, "sort-policy", "", "Unsorted input handling: check, trust or sort (empty = from config)")
	fs.StringVar(&cfg.OutputJSON, "json", "", "Write the run summary as JSON to this path")
	fs.StringVar(&cfg.PlotDir, "plot-dir", "", "Write cluster-size histogram and module scatter plots here")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if !cfg.ShowVersion && cfg.Input == "" {
		return Config{}, errors.New("-input is required")
	}
	if cfg.SortPolicy != "" {
		if _, err := ccl.ParseSortPolicy(cfg.SortPolicy); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// loadConfig reads the clustering config and applies flag overrides.
func loadConfig(cfg Config) (*config.ClusteringConfig, error) {
	cc := config.DefaultClusteringConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadClusteringConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		cc = loaded
	}
	if cfg.Workers >= 0 {
		w := cfg.Workers
		cc.Workers = &w
	}
	if cfg.SortPolicy != "" {
		p := cfg.SortPolicy
		cc.SortPolicy = &p
	}
	if err := cc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cc, nil
}

func run(ctx context.Context, cfg Config, fsys fsutil.FileSystem, stdout io.Writer) error {
	cc, err := loadConfig(cfg)
	if err != nil {
		return err
	}

	modules, err := ingest.ReadFile(cfg.Input, cells.EventID(cfg.Event))
	if err != nil {
		return err
	}
	monitoring.Logf("[ccl] loaded %d modules from %s", modules.Len(), cfg.Input)

	res := pipeline.NewDriver(pipeline.OptionsFromConfig(cc)).Run(ctx, modules)
	summary := report.Summarize(res)
	printSummary(stdout, summary)

	if cfg.OutputJSON != "" {
		if err := report.WriteJSON(fsys, cfg.OutputJSON, summary); err != nil {
			return err
		}
		monitoring.Logf("[ccl] summary written to %s", cfg.OutputJSON)
	}

	if cfg.PlotDir != "" {
		if err := writePlots(fsys, cfg.PlotDir, res, cc); err != nil {
			return err
		}
	}

	return res.Err()
}

// writePlots writes the size histogram and the module scatter. Each output
// is skipped on its own when it has nothing to draw.
func writePlots(fsys fsutil.FileSystem, dir string, res *pipeline.RunResult, cc *config.ClusteringConfig) error {
	hist := filepath.Join(dir, "cluster_sizes.png")
	err := report.WriteSizeHistogram(fsys, hist, res.ClusterSizes(), cc.GetHistogramBins(), cc.GetMinClusterSize())
	switch {
	case errors.Is(err, report.ErrNoData):
		monitoring.Logf("[ccl] no clusters of size >= %d for histogram", cc.GetMinClusterSize())
	case err != nil:
		return err
	}

	scatter := filepath.Join(dir, "modules.html")
	err = report.WriteModuleScatter(fsys, scatter, res, cc.GetScatterModules())
	switch {
	case errors.Is(err, report.ErrNoData):
		monitoring.Logf("[ccl] no clustered modules for scatter")
	case err != nil:
		return err
	}
	monitoring.Logf("[ccl] plots written to %s", dir)
	return nil
}

func printSummary(w io.Writer, s report.Summary) {
	fmt.Fprintf(w, "run %s: %d modules (%d failed), %d cells, %d clusters in %.2f ms\n",
		s.RunID, s.Modules, s.FailedModules, s.Cells, s.Clusters, s.DurationMs)
	fmt.Fprintf(w, "cluster size: mean %.2f, stddev %.2f, median %.0f, max %d, singletons %d\n",
		s.MeanClusterSize, s.StdDevClusterSize, s.MedianClusterSize, s.MaxClusterSize, s.Singletons)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tGEOMETRY\tCELLS\tCLUSTERS\tSTATUS")
	for _, m := range s.PerModule {
		status := "ok"
		if m.Error != "" {
			status = m.Error
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n", m.Index, m.Geometry, m.Cells, m.Clusters, status)
	}
	_ = tw.Flush()
}
