package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/sparseccl/internal/ccl"
	"github.com/banshee-data/sparseccl/internal/fsutil"
	"github.com/banshee-data/sparseccl/internal/pipeline"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// WriteSizeHistogram renders a PNG histogram of cluster sizes to path.
// Clusters smaller than minSize are left out.
func WriteSizeHistogram(fsys fsutil.FileSystem, path string, sizes []int, bins, minSize int) error {
	vals := make(plotter.Values, 0, len(sizes))
	for _, n := range sizes {
		if n >= minSize {
			vals = append(vals, float64(n))
		}
	}
	if len(vals) == 0 {
		return ErrNoData
	}

	h, err := plotter.NewHist(vals, max(bins, 1))
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cluster sizes (n=%d)", len(vals))
	p.X.Label.Text = "cells per cluster"
	p.Y.Label.Text = "clusters"
	p.Add(h)

	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render histogram: %w", err)
	}
	return writeTo(fsys, path, wt.WriteTo)
}

// RenderModuleScatter writes an HTML page with one scatter chart per
// module, each cluster drawn as its own series in channel space. At most
// maxModules successful modules are drawn.
func RenderModuleScatter(w io.Writer, res *pipeline.RunResult, maxModules int) error {
	drawable := scatterModules(res, maxModules)
	if len(drawable) == 0 {
		return ErrNoData
	}

	page := components.NewPage()
	for _, m := range drawable {
		page.AddCharts(moduleScatter(m))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render scatter page: %w", err)
	}
	return nil
}

// WriteModuleScatter renders RenderModuleScatter output to path.
func WriteModuleScatter(fsys fsutil.FileSystem, path string, res *pipeline.RunResult, maxModules int) error {
	if len(scatterModules(res, maxModules)) == 0 {
		return ErrNoData
	}
	return writeTo(fsys, path, func(w io.Writer) (int64, error) {
		return 0, RenderModuleScatter(w, res, maxModules)
	})
}

// scatterModules picks the first maxModules modules that produced clusters.
func scatterModules(res *pipeline.RunResult, maxModules int) []pipeline.ModuleResult {
	var out []pipeline.ModuleResult
	for _, m := range res.Modules {
		if len(out) >= maxModules {
			break
		}
		if m.Err != nil || m.Clusters == nil || m.Clusters.Len() == 0 {
			continue
		}
		out = append(out, m)
	}
	return out
}

func moduleScatter(m pipeline.ModuleResult) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "720px", Height: "720px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Module %d", m.Index),
			Subtitle: fmt.Sprintf("geometry=%d clusters=%d", m.Module.Geometry, m.Clusters.Len()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "channel0", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "channel1", NameLocation: "middle", NameGap: 30}),
	)
	for l, c := range ccl.Clusters(m.Clusters) {
		data := make([]opts.ScatterData, 0, len(c.Cells))
		for _, cell := range c.Cells {
			data = append(data, opts.ScatterData{Value: []interface{}{cell.Channel0, cell.Channel1, cell.Activation}})
		}
		scatter.AddSeries(fmt.Sprintf("cluster %d", l), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	}
	return scatter
}

func writeTo(fsys fsutil.FileSystem, path string, write func(io.Writer) (int64, error)) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
