// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalechart draws the charts of a scaling experiment.
package scalechart

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/scalestat/scaleproc"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Artifacts maps the name of each rendered chart to the path of its
// file.
type Artifacts map[string]string

// A Renderer draws charts from the per-test summaries of a result set.
// threads is the thread domain of the whole result set, in ascending
// order.
type Renderer interface {
	Render(ctx context.Context, groups []*scaleproc.GroupSummary, threads []int) (Artifacts, error)
}

// Chart names.
const (
	Speedup        = "speedup"
	Efficiency     = "efficiency"
	TimeComparison = "time_comparison"
)

// Defaults for the zero fields of a PlotRenderer.
const (
	DefaultDPI    = 150
	DefaultWidth  = 25 * vg.Centimeter
	DefaultHeight = 15 * vg.Centimeter
)

// A PlotRenderer renders PNG charts with gonum plot.
type PlotRenderer struct {
	// Dir is the directory the charts are written to. It is
	// created if needed.
	Dir string

	DPI           int
	Width, Height vg.Length

	// Logger, if non-nil, receives a message for each written chart.
	Logger *slog.Logger
}

var _ Renderer = (*PlotRenderer)(nil)

type chart struct {
	name  string
	width vg.Length
	draw  func(dc draw.Canvas)
}

// Render draws the speedup, efficiency and time comparison charts
// concurrently and writes each to Dir as name.png. On error, some
// charts may have been written.
func (r *PlotRenderer) Render(ctx context.Context, groups []*scaleproc.GroupSummary, threads []int) (Artifacts, error) {
	if len(groups) == 0 || len(threads) == 0 {
		return nil, scaleproc.ErrEmptyDataset
	}
	dir := r.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}

	charts := []chart{
		{Speedup, r.width(), speedupPlot(groups, threads).Draw},
		{Efficiency, r.width(), efficiencyPlot(groups, threads).Draw},
		{TimeComparison, r.width() * vg.Length(max(2, len(groups))) / 2, timeComparison(groups)},
	}

	files := make([]string, len(charts))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range charts {
		files[i] = filepath.Join(dir, c.name+".png")
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if err := r.save(files[i], c); err != nil {
				return fmt.Errorf("%s chart: %w", c.name, err)
			}
			if r.Logger != nil {
				r.Logger.Info("wrote chart", "chart", c.name, "path", files[i], "elapsed", time.Since(start))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	arts := make(Artifacts, len(charts))
	for i, c := range charts {
		arts[c.name] = files[i]
	}
	return arts, nil
}

func (r *PlotRenderer) width() vg.Length {
	if r.Width > 0 {
		return r.Width
	}
	return DefaultWidth
}

func (r *PlotRenderer) height() vg.Length {
	if r.Height > 0 {
		return r.Height
	}
	return DefaultHeight
}

func (r *PlotRenderer) dpi() int {
	if r.DPI > 0 {
		return r.DPI
	}
	return DefaultDPI
}

func (r *PlotRenderer) save(file string, c chart) error {
	can := vgimg.NewWith(vgimg.UseWH(c.width, r.height()), vgimg.UseDPI(r.dpi()), vgimg.UseBackgroundColor(color.White))
	c.draw(draw.New(can))

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: can}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// label describes the problem size of g.
func label(g *scaleproc.GroupSummary) string {
	return fmt.Sprintf("K=%d, N=%s (%s elements)", g.K, humanize.Comma(int64(g.N)), humanize.Comma(g.Elements()))
}

// threadTicks places a tick at each thread count.
func threadTicks(threads []int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(threads))
	for i, t := range threads {
		ticks[i] = plot.Tick{Value: float64(t), Label: fmt.Sprint(t)}
	}
	return ticks
}

var dashes = []vg.Length{vg.Points(6), vg.Points(3)}

// reference returns a dashed gray line through xys.
func reference(xys plotter.XYs) *plotter.Line {
	l := &plotter.Line{XYs: xys}
	l.LineStyle = draw.LineStyle{Color: color.Gray{Y: 0x60}, Width: vg.Points(1), Dashes: dashes}
	return l
}

// addSeries adds one line with point glyphs per group, with y taken
// from each row by y.
func addSeries(p *plot.Plot, groups []*scaleproc.GroupSummary, y func(g *scaleproc.GroupSummary, i int) float64) {
	for i, g := range groups {
		xys := make(plotter.XYs, len(g.Rows))
		for j, row := range g.Rows {
			xys[j] = plotter.XY{X: float64(row.Threads), Y: y(g, j)}
		}
		l := &plotter.Line{XYs: xys}
		l.LineStyle = draw.LineStyle{Color: plotutil.Color(i), Width: vg.Points(2)}
		s := &plotter.Scatter{XYs: xys}
		s.GlyphStyle = draw.GlyphStyle{Color: plotutil.Color(i), Radius: vg.Points(3), Shape: plotutil.Shape(i)}
		p.Add(l, s)
		p.Legend.Add(label(g), l, s)
	}
}

func newPlot(title, ylabel string, threads []int) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Threads"
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = threadTicks(threads)
	p.Legend.Top = true
	p.Legend.Left = true
	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 0xdd}
	grid.Horizontal.Color = color.Gray{Y: 0xdd}
	p.Add(grid)
	return p
}

func speedupPlot(groups []*scaleproc.GroupSummary, threads []int) *plot.Plot {
	p := newPlot("Speedup vs. thread count", "Speedup (T_seq / T_par)", threads)
	addSeries(p, groups, func(g *scaleproc.GroupSummary, i int) float64 {
		return g.Rows[i].Speedup
	})
	lo, hi := float64(threads[0]), float64(threads[len(threads)-1])
	ideal := reference(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	p.Add(ideal)
	p.Legend.Add("Ideal speedup", ideal)
	return p
}

func efficiencyPlot(groups []*scaleproc.GroupSummary, threads []int) *plot.Plot {
	p := newPlot("Efficiency vs. thread count", "Efficiency (%)", threads)
	p.Legend.Left = false
	p.Legend.Top = false
	addSeries(p, groups, func(g *scaleproc.GroupSummary, i int) float64 {
		return g.Rows[i].Efficiency
	})
	lo, hi := float64(threads[0]), float64(threads[len(threads)-1])
	full := reference(plotter.XYs{{X: lo, Y: 100}, {X: hi, Y: 100}})
	p.Add(full)
	p.Legend.Add("100% efficiency", full)
	p.Y.Min, p.Y.Max = 0, 110
	return p
}

// timeComparison returns a function drawing one panel per group, each
// comparing the parallel run times with the sequential baseline.
func timeComparison(groups []*scaleproc.GroupSummary) func(dc draw.Canvas) {
	row := make([]*plot.Plot, len(groups))
	for i, g := range groups {
		threads := make([]int, len(g.Rows))
		for j, r := range g.Rows {
			threads[j] = r.Threads
		}
		p := newPlot(label(g), "Time (ms)", threads)
		p.Legend.Left = false

		xys := make(plotter.XYs, len(g.Rows))
		for j, r := range g.Rows {
			xys[j] = plotter.XY{X: float64(r.Threads), Y: r.ParTime}
		}
		l := &plotter.Line{XYs: xys}
		l.LineStyle = draw.LineStyle{Color: plotutil.Color(0), Width: vg.Points(2)}
		s := &plotter.Scatter{XYs: xys}
		s.GlyphStyle = draw.GlyphStyle{Color: plotutil.Color(0), Radius: vg.Points(3), Shape: plotutil.Shape(0)}
		p.Add(l, s)
		p.Legend.Add("Parallel time", l, s)

		lo, hi := float64(threads[0]), float64(threads[len(threads)-1])
		seq := reference(plotter.XYs{{X: lo, Y: g.SeqTime}, {X: hi, Y: g.SeqTime}})
		seq.LineStyle.Color = plotutil.Color(1)
		p.Add(seq)
		p.Legend.Add(fmt.Sprintf("Sequential: %.1f ms", g.SeqTime), seq)
		if p.Y.Min > 0 {
			p.Y.Min = 0
		}
		row[i] = p
	}

	return func(dc draw.Canvas) {
		tiles := draw.Tiles{
			Rows:      1,
			Cols:      len(row),
			PadX:      vg.Millimeter * 4,
			PadTop:    vg.Millimeter * 2,
			PadBottom: vg.Millimeter * 2,
			PadLeft:   vg.Millimeter * 2,
			PadRight:  vg.Millimeter * 2,
		}
		canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
		for i, p := range row {
			p.Draw(canvases[0][i])
		}
	}
}
