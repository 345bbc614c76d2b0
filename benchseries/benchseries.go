// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries assembles benchmark grids of several proving
// protocols into comparison series and renders them as charts.
//
// A comparison takes, for each protocol, the grid of one metric at the
// largest instance size and lines the protocols up by machine count.
// Distributed protocols need at least two machines, so their
// single-machine point is dropped. The baseline protocol keeps it,
// except on charts of per-worker costs.
package benchseries

import (
	"context"
	"errors"
	"fmt"

	"github.com/distfri/friperf/benchgrid"
	"github.com/distfri/friperf/benchunit"
)

// An Input is one protocol and the place its artifacts live.
type Input struct {
	Protocol *Protocol
	Source   benchgrid.Source
}

// A Line is one protocol's series on a comparison chart.
type Line struct {
	Protocol *Protocol
	Series   benchgrid.Series

	// Grid is the full (combined) grid Series was taken from.
	Grid *benchgrid.Grid
}

// A Comparison is the assembled data for one Chart.
type Comparison struct {
	Chart  *Chart
	Config benchgrid.Config
	Unit   benchunit.Unit
	Lines  []Line

	// Missing records protocols whose data could not be loaded.
	// Their lines are absent; the rest of the chart is intact.
	Missing []error
}

// Assemble loads the chart's metric for every input that measures it
// and builds the comparison series.
//
// A protocol whose artifacts are missing or malformed is recorded in
// Missing and skipped. Assemble fails only if no protocol yields a
// line.
func Assemble(ctx context.Context, c *Chart, inputs []Input, cfg benchgrid.Config) (*Comparison, error) {
	cmp := &Comparison{Chart: c, Config: cfg, Unit: c.Metric.Kind().Unit()}
	for _, in := range inputs {
		m, ok := in.Protocol.Measures[c.Metric]
		if !ok {
			continue
		}
		g, err := m.Load(ctx, in.Source, c.Metric.Kind(), cfg)
		if err != nil {
			cmp.Missing = append(cmp.Missing, fmt.Errorf("%s: %w", in.Protocol.Name, err))
			continue
		}
		s := g.LastRow()
		if !in.Protocol.Baseline || c.WorkerOnly || !c.Metric.hasSingleMachinePoint() {
			s = dropSingleMachine(s)
		}
		cmp.Lines = append(cmp.Lines, Line{Protocol: in.Protocol, Series: s, Grid: g})
	}
	if len(cmp.Lines) == 0 {
		if len(cmp.Missing) == 0 {
			return nil, fmt.Errorf("%s: no protocol measures %s", c.Name(), c.Metric)
		}
		return nil, fmt.Errorf("%s: no data: %w", c.Name(), errors.Join(cmp.Missing...))
	}
	return cmp, nil
}

// dropSingleMachine removes the point measured on 2^0 machines.
func dropSingleMachine(s benchgrid.Series) benchgrid.Series {
	if s.Lo == 0 {
		return s.DropFirst()
	}
	return s
}

// Baseline returns the baseline protocol's line, if any.
func (c *Comparison) Baseline() (Line, bool) {
	for _, l := range c.Lines {
		if l.Protocol.Baseline {
			return l, true
		}
	}
	return Line{}, false
}

// machineRange returns the exponents spanned by the lines of c.
func (c *Comparison) machineRange() benchgrid.Range {
	r := benchgrid.Range{Lo: c.Config.Machines.Hi, Hi: c.Config.Machines.Lo}
	for _, l := range c.Lines {
		if l.Series.Len() == 0 {
			continue
		}
		r.Lo = min(r.Lo, l.Series.Lo)
		r.Hi = max(r.Hi, l.Series.Lo+l.Series.Len())
	}
	if r.Hi < r.Lo {
		return benchgrid.Range{}
	}
	return r
}

// Machines returns the union of the machine counts of all lines, in
// ascending order.
func (c *Comparison) Machines() []float64 {
	r := c.machineRange()
	return benchgrid.Series{Lo: r.Lo, Values: make([]float64, r.Len())}.X()
}

// A GridComparison shows every instance size of one protocol's metric,
// one line per instance size.
type GridComparison struct {
	Protocol *Protocol
	Metric   Metric
	Grid     *benchgrid.Grid
	Lines    []GridLine
}

// A GridLine is the series for one instance size.
type GridLine struct {
	InstanceSize int // exponent
	Series       benchgrid.Series
}

// Title returns the chart title for g.
func (g *GridComparison) Title() string {
	return fmt.Sprintf("%s for %s", metricInfo[g.Metric].title, g.Protocol.Label)
}

// AssembleGrid loads metric m of protocol p from src and splits it
// into one series per instance size. All machine counts are kept
// except for metrics that mean nothing on a single machine.
func AssembleGrid(ctx context.Context, p *Protocol, m Metric, src benchgrid.Source, cfg benchgrid.Config) (*GridComparison, error) {
	meas, ok := p.Measures[m]
	if !ok {
		return nil, fmt.Errorf("%s does not measure %s", p.Name, m)
	}
	g, err := meas.Load(ctx, src, m.Kind(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	gc := &GridComparison{Protocol: p, Metric: m, Grid: g}
	for _, is := range cfg.InstanceSize.Exponents() {
		s, err := g.Row(is)
		if err != nil {
			return nil, err
		}
		if !m.hasSingleMachinePoint() {
			s = dropSingleMachine(s)
		}
		gc.Lines = append(gc.Lines, GridLine{InstanceSize: is, Series: s})
	}
	return gc, nil
}
