// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/distfri/friperf/benchgrid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

const (
	chartWidth  = 6.4 * vg.Inch
	chartHeight = 4.8 * vg.Inch
	pngDPI      = 300
	pointRad    = 3
)

// Formats lists the file formats accepted by Save.
var Formats = []string{"png", "svg", "pdf"}

// newLogLogPlot returns an empty plot with log-scaled axes, the
// machine counts as x ticks, and a dashed grid.
func newLogLogPlot(title, yLabel string, machines, yTicks []float64) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Number of Machines"
	p.Y.Label.Text = yLabel

	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = constantTicks(machines, func(x float64) string {
		return strconv.Itoa(int(x))
	})
	if len(yTicks) > 0 {
		p.Y.Tick.Marker = constantTicks(yTicks, func(y float64) string {
			return strconv.FormatFloat(y, 'g', -1, 64)
		})
	} else {
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Vertical.Width = vg.Points(0.5)
	grid.Horizontal.Dashes = grid.Vertical.Dashes
	grid.Horizontal.Width = grid.Vertical.Width
	p.Add(grid)

	p.Legend.Top = true
	return p
}

func constantTicks(vals []float64, label func(float64) string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: label(v)}
	}
	return ticks
}

// xys returns the positive points of s. A log scale has no place for
// zero or negative values.
func xys(s benchgrid.Series) plotter.XYs {
	pts := make(plotter.XYs, 0, s.Len())
	for i, x := range s.X() {
		if s.Values[i] > 0 {
			pts = append(pts, plotter.XY{X: x, Y: s.Values[i]})
		}
	}
	return pts
}

// logPad is the factor by which log axes extend past the data.
const logPad = 1.25

// fitLogAxes sets the ranges of p to span pts with some padding, so
// that a single point does not collapse an axis to nothing.
func fitLogAxes(p *plot.Plot, pts plotter.XYs) {
	xmin, xmax, ymin, ymax := plotter.XYRange(pts)
	p.X.Min, p.X.Max = xmin/logPad, xmax*logPad
	p.Y.Min, p.Y.Max = ymin/logPad, ymax*logPad
}

// addLine draws pts as a line with a glyph at every point and adds it
// to the legend.
func addLine(p *plot.Plot, label string, pts plotter.XYs, clr color.Color, shape draw.GlyphDrawer) error {
	if len(pts) == 0 {
		return nil
	}
	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = clr
	line.Width = vg.Points(1)
	scatter.Color = clr
	scatter.Shape = shape
	scatter.Radius = vg.Points(pointRad)
	p.Add(line, scatter)
	p.Legend.Add(label, line, scatter)
	return nil
}

// Render draws c as a log-log chart with one line per protocol.
func Render(c *Comparison) (*plot.Plot, error) {
	p := newLogLogPlot(c.Chart.Title, c.Chart.YLabel, c.Machines(), c.Chart.YTicks)
	var all plotter.XYs
	for _, l := range c.Lines {
		pts := xys(l.Series)
		all = append(all, pts...)
		if err := addLine(p, l.Protocol.Label, pts, l.Protocol.Style.Color, l.Protocol.Style.Shape); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", c.Chart.Name(), l.Protocol.Name, err)
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: no positive values to plot", c.Chart.Name())
	}
	fitLogAxes(p, all)
	return p, nil
}

// RenderGrid draws g as a log-log chart with one line per instance size.
func RenderGrid(g *GridComparison) (*plot.Plot, error) {
	var machines []float64
	if len(g.Lines) > 0 {
		machines = g.Lines[0].Series.X()
	}
	p := newLogLogPlot(g.Title(), metricInfo[g.Metric].yLabel, machines, nil)
	p.Legend.Add("Instance size")
	colors := gridColors(len(g.Lines))
	var all plotter.XYs
	for i, l := range g.Lines {
		pts := xys(l.Series)
		all = append(all, pts...)
		label := fmt.Sprintf("2^%d", l.InstanceSize)
		if err := addLine(p, label, pts, colors[i], plotutil.Shape(i)); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", g.Protocol.Name, g.Metric, err)
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: %s: no positive values to plot", g.Protocol.Name, g.Metric)
	}
	fitLogAxes(p, all)
	return p, nil
}

// gridColors returns n distinguishable colors.
func gridColors(n int) []color.Color {
	// Brewer palettes come in sizes 3 through 9.
	if n <= 9 {
		if pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", max(n, 3)); err == nil {
			return pal.Colors()[:n]
		}
	}
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = plotutil.Color(i)
	}
	return colors
}

// Save writes p to dir/name.format and returns the file name.
// format is one of Formats.
func Save(p *plot.Plot, dir, name, format string) (string, error) {
	var c vg.CanvasWriterTo
	switch format {
	case "png":
		c = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight),
			vgimg.UseDPI(pngDPI), vgimg.UseBackgroundColor(color.White))}
	case "svg":
		c = vgsvg.New(chartWidth, chartHeight)
	case "pdf":
		c = vgpdf.New(chartWidth, chartHeight)
	default:
		return "", fmt.Errorf("unknown chart format %q", format)
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", err
	}
	file := filepath.Join(dir, name) + "." + format
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	p.Draw(draw.New(c))
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	return file, f.Close()
}
