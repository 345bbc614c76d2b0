// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgrid

import (
	"fmt"
	"math"
)

// An Op is an element-wise binary operation used by Combine.
type Op int

const (
	// Sum adds measurements. It attributes total wall-clock time
	// to a master that waits on its workers' folding.
	Sum Op = iota

	// Max takes the larger measurement. It gives the worst-case
	// memory footprint of processes whose peaks are measured
	// independently.
	Max
)

func (op Op) String() string {
	switch op {
	case Sum:
		return "sum"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

func (op Op) apply(a, b float64) float64 {
	switch op {
	case Sum:
		return a + b
	case Max:
		return math.Max(a, b)
	}
	panic(fmt.Sprintf("bad Op %v", op))
}

// Combine applies op element-wise across grids and returns the result
// as a new Grid. The inputs are not modified.
//
// All grids must share the same Config and Unit; otherwise Combine
// returns an error matching ErrIncompatibleGrids.
func Combine(op Op, grids ...*Grid) (*Grid, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("combine %v of no grids: %w", op, ErrIncompatibleGrids)
	}
	first := grids[0]
	for _, g := range grids {
		if err := g.checkShape(); err != nil {
			return nil, fmt.Errorf("combine %v: %v: %w", op, err, ErrIncompatibleGrids)
		}
	}
	for _, g := range grids[1:] {
		if g.Config != first.Config {
			return nil, fmt.Errorf("combine %v: shape %v×%v vs %v×%v: %w", op,
				first.Config.InstanceSize, first.Config.Machines,
				g.Config.InstanceSize, g.Config.Machines, ErrIncompatibleGrids)
		}
		if g.Unit != first.Unit {
			return nil, fmt.Errorf("combine %v: unit %s vs %s: %w", op, first.Unit, g.Unit, ErrIncompatibleGrids)
		}
	}

	vals := make([]float64, 0, first.Config.Cells())
	for _, row := range first.Values {
		vals = append(vals, row...)
	}
	for _, g := range grids[1:] {
		k := 0
		for _, row := range g.Values {
			for _, v := range row {
				vals[k] = op.apply(vals[k], v)
				k++
			}
		}
	}
	return newGrid(first.Config, first.Unit, vals), nil
}
