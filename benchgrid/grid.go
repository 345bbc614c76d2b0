// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchgrid reshapes flat benchmark artifacts into grids
// indexed by instance-size exponent and machine-count exponent, and
// combines and slices those grids into series for charting.
//
// An artifact is a line-oriented file written by the benchmark
// harness. Its records are laid out row-major: all machine counts for
// the smallest instance size, then all machine counts for the next
// instance size, and so on. Read and ReadFile turn one artifact into a
// Grid; Combine merges grids measured by cooperating processes; and
// Grid.Row extracts the Series for one instance size.
package benchgrid

import (
	"fmt"
	"math"

	"github.com/distfri/friperf/benchunit"
)

// A Grid holds one measurement per (instance size, machine count)
// pair, in display units.
//
// Values[i][j] is the measurement for instance-size exponent
// Config.InstanceSize.Lo+i on 2^(Config.Machines.Lo+j) machines.
// A Grid is not modified after construction.
type Grid struct {
	Config Config
	Unit   benchunit.Unit
	Values [][]float64
}

// newGrid packs vals row-major into a grid of shape cfg.
// len(vals) must equal cfg.Cells().
func newGrid(cfg Config, unit benchunit.Unit, vals []float64) *Grid {
	cols := cfg.Machines.Len()
	g := &Grid{Config: cfg, Unit: unit, Values: make([][]float64, cfg.InstanceSize.Len())}
	for i := range g.Values {
		g.Values[i] = vals[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return g
}

// NewGrid returns a Grid of shape cfg holding a copy of values. It
// fails if values does not have the shape cfg describes.
func NewGrid(cfg Config, unit benchunit.Unit, values [][]float64) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(values) != cfg.InstanceSize.Len() {
		return nil, fmt.Errorf("have %d rows, want %d", len(values), cfg.InstanceSize.Len())
	}
	flat := make([]float64, 0, cfg.Cells())
	for i, row := range values {
		if len(row) != cfg.Machines.Len() {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cfg.Machines.Len())
		}
		flat = append(flat, row...)
	}
	return newGrid(cfg, unit, flat), nil
}

// checkShape reports whether g.Values has the shape g.Config describes.
func (g *Grid) checkShape() error {
	if len(g.Values) != g.Config.InstanceSize.Len() {
		return fmt.Errorf("have %d rows, want %d", len(g.Values), g.Config.InstanceSize.Len())
	}
	for i, row := range g.Values {
		if len(row) != g.Config.Machines.Len() {
			return fmt.Errorf("row %d has %d columns, want %d", i, len(row), g.Config.Machines.Len())
		}
	}
	return nil
}

// At returns the measurement for instance-size exponent is on
// 2^m machines.
func (g *Grid) At(is, m int) (float64, error) {
	if !g.Config.InstanceSize.Contains(is) {
		return math.NaN(), fmt.Errorf("instance-size exponent %d not in %v: %w", is, g.Config.InstanceSize, ErrIndexOutOfRange)
	}
	if !g.Config.Machines.Contains(m) {
		return math.NaN(), fmt.Errorf("machine-count exponent %d not in %v: %w", m, g.Config.Machines, ErrIndexOutOfRange)
	}
	return g.Values[is-g.Config.InstanceSize.Lo][m-g.Config.Machines.Lo], nil
}

// Row returns the series of measurements for instance-size exponent is,
// one per machine count.
func (g *Grid) Row(is int) (Series, error) {
	if !g.Config.InstanceSize.Contains(is) {
		return Series{}, fmt.Errorf("instance-size exponent %d not in %v: %w", is, g.Config.InstanceSize, ErrIndexOutOfRange)
	}
	row := g.Values[is-g.Config.InstanceSize.Lo]
	return Series{Lo: g.Config.Machines.Lo, Values: append([]float64(nil), row...)}, nil
}

// LastRow returns the series for the largest configured instance
// size, which is the one compared across protocols.
func (g *Grid) LastRow() Series {
	s, err := g.Row(g.Config.InstanceSize.Hi - 1)
	if err != nil {
		panic(err)
	}
	return s
}

// A Series is a sequence of measurements for one instance size,
// ordered by machine count.
//
// Values[i] was measured on 2^(Lo+i) machines. Keeping the exponent
// with the values means truncating a series also shifts its x-axis.
type Series struct {
	Lo     int
	Values []float64
}

// Len returns the number of points in s.
func (s Series) Len() int { return len(s.Values) }

// X returns the machine counts of the points in s.
func (s Series) X() []float64 {
	xs := make([]float64, len(s.Values))
	for i := range xs {
		xs[i] = math.Ldexp(1, s.Lo+i)
	}
	return xs
}

// Machines returns the machine-count exponents of the points in s.
func (s Series) Machines() []int {
	es := make([]int, len(s.Values))
	for i := range es {
		es[i] = s.Lo + i
	}
	return es
}

// DropFirst returns s without its first point. It returns s unchanged
// if s is empty.
func (s Series) DropFirst() Series {
	if len(s.Values) == 0 {
		return s
	}
	return Series{Lo: s.Lo + 1, Values: s.Values[1:]}
}
