package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/sparseccl/internal/ccl"
	"github.com/banshee-data/sparseccl/internal/cells"
	"github.com/banshee-data/sparseccl/internal/config"
	"github.com/banshee-data/sparseccl/internal/monitoring"
	"github.com/banshee-data/sparseccl/internal/timeutil"
)

// ErrModulePanic marks a module whose task panicked.
var ErrModulePanic = errors.New("module task panicked")

// Options configures a Driver.
type Options struct {
	// Workers bounds concurrent module tasks. Zero or negative means
	// runtime.NumCPU().
	Workers int
	// Threshold is copied into every cluster identity.
	Threshold float64
	// SortPolicy decides how unsorted module input is handled.
	SortPolicy ccl.SortPolicy
	// Logf receives run diagnostics. Nil uses monitoring.Logf.
	Logf func(format string, v ...interface{})
	// Clock times the run and each module. Nil uses the wall clock.
	Clock timeutil.Clock
}

// OptionsFromConfig maps a loaded clustering config onto driver options.
func OptionsFromConfig(cfg *config.ClusteringConfig) Options {
	if cfg == nil {
		cfg = config.EmptyClusteringConfig()
	}
	return Options{
		Workers:    cfg.GetWorkers(),
		Threshold:  cfg.GetThreshold(),
		SortPolicy: cfg.GetSortPolicy(),
	}
}

// ModuleResult is the outcome of clustering one module.
type ModuleResult struct {
	Index    int
	Module   cells.Module
	Clusters *ccl.Container // nil when Err is set
	Err      error
	Elapsed  time.Duration
}

// RunResult collects every module's outcome, index-aligned with the input
// container.
type RunResult struct {
	RunID    uuid.UUID
	Started  time.Time
	Duration time.Duration
	Modules  []ModuleResult
}

// Err joins every module failure, or returns nil if all modules succeeded.
func (r *RunResult) Err() error {
	var errs []error
	for _, m := range r.Modules {
		if m.Err != nil {
			errs = append(errs, m.Err)
		}
	}
	return errors.Join(errs...)
}

// Failed returns the results of modules that did not cluster.
func (r *RunResult) Failed() []ModuleResult {
	var out []ModuleResult
	for _, m := range r.Modules {
		if m.Err != nil {
			out = append(out, m)
		}
	}
	return out
}

// Succeeded counts modules that clustered without error.
func (r *RunResult) Succeeded() int {
	n := 0
	for _, m := range r.Modules {
		if m.Err == nil {
			n++
		}
	}
	return n
}

// TotalClusters counts clusters over all successful modules.
func (r *RunResult) TotalClusters() int {
	n := 0
	for _, m := range r.Modules {
		if m.Clusters != nil {
			n += m.Clusters.Len()
		}
	}
	return n
}

// ClusterSizes returns the cell count of every produced cluster, module by
// module in label order.
func (r *RunResult) ClusterSizes() []int {
	var out []int
	for _, m := range r.Modules {
		out = append(out, ccl.Sizes(m.Clusters)...)
	}
	return out
}

// Driver runs clustering over the modules of a container.
type Driver struct {
	opts    Options
	cluster func(int, cells.Module, []cells.Cell, float64, ccl.SortPolicy) (*ccl.Container, error)
}

// NewDriver returns a Driver for opts.
func NewDriver(opts Options) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}
	return &Driver{opts: opts, cluster: ccl.ClusterModule}
}

func (d *Driver) logf(format string, v ...interface{}) {
	if d.opts.Logf != nil {
		d.opts.Logf(format, v...)
		return
	}
	monitoring.Logf(format, v...)
}

// Run clusters every module of c. The container must not be modified while
// Run is in progress.
//
// Modules are processed in parallel and independently. A module that fails
// or panics is reported on its ModuleResult; the rest still run. If ctx is
// cancelled, modules that have not started yet fail with ctx.Err() and
// modules already running finish.
func (d *Driver) Run(ctx context.Context, c *cells.Container) *RunResult {
	res := &RunResult{
		RunID:   uuid.New(),
		Started: d.opts.Clock.Now(),
	}
	if c == nil || c.Len() == 0 {
		res.Modules = []ModuleResult{}
		return res
	}

	headers := c.Headers()
	items := c.Items()
	res.Modules = make([]ModuleResult, len(headers))

	var g errgroup.Group
	g.SetLimit(d.opts.Workers)
	for i := range headers {
		g.Go(func() error {
			res.Modules[i] = d.runModule(ctx, i, headers[i], items[i])
			return nil
		})
	}
	_ = g.Wait()

	res.Duration = d.opts.Clock.Since(res.Started)
	for _, m := range res.Failed() {
		d.logf("[ccl] run %s: module %d (geometry %d) failed: %v", res.RunID, m.Index, m.Module.Geometry, m.Err)
	}
	d.logf("[ccl] run %s: %d/%d modules clustered, %d clusters in %v",
		res.RunID, res.Succeeded(), len(res.Modules), res.TotalClusters(), res.Duration)
	return res
}

func (d *Driver) runModule(ctx context.Context, i int, m cells.Module, cs []cells.Cell) (out ModuleResult) {
	out = ModuleResult{Index: i, Module: m}
	start := d.opts.Clock.Now()
	defer func() {
		if r := recover(); r != nil {
			out.Clusters = nil
			out.Err = fmt.Errorf("%w: module %d (geometry %d): %v", ErrModulePanic, i, m.Geometry, r)
			d.logf("[ccl] module %d (geometry %d) panic: %v\n%s", i, m.Geometry, r, debug.Stack())
		}
		out.Elapsed = d.opts.Clock.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		out.Err = fmt.Errorf("module %d (geometry %d) not started: %w", i, m.Geometry, err)
		return out
	}
	out.Clusters, out.Err = d.cluster(i, m, cs, d.opts.Threshold, d.opts.SortPolicy)
	return out
}
