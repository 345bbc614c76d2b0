// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/distfri/friperf/benchgrid"
	"gonum.org/v1/gonum/stat"
)

// Scaling summarizes how one line of a comparison behaves as machines
// are added.
type Scaling struct {
	// Slope is the least-squares slope of log2(value) against
	// log2(machines). A per-machine cost that halves with every
	// doubling has slope -1; a constant cost has slope 0.
	// It is NaN with fewer than two positive points.
	Slope float64

	// Ratio is the geometric mean of value/baseline over the
	// machine counts both lines share. It is NaN if the comparison
	// has no baseline or no shared points.
	Ratio float64
}

// Scaling returns the scaling of each line of c, in line order.
func (c *Comparison) Scaling() []Scaling {
	base, hasBase := c.Baseline()
	out := make([]Scaling, len(c.Lines))
	for i, l := range c.Lines {
		out[i] = Scaling{Slope: logSlope(l.Series), Ratio: math.NaN()}
		if hasBase {
			out[i].Ratio = geoRatio(l.Series, base.Series)
		}
	}
	return out
}

func logSlope(s benchgrid.Series) float64 {
	var xs, ys []float64
	for i, v := range s.Values {
		if v > 0 {
			xs = append(xs, float64(s.Lo+i))
			ys = append(ys, math.Log2(v))
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta
}

func geoRatio(s, base benchgrid.Series) float64 {
	var ratios []float64
	for i, v := range s.Values {
		j := s.Lo + i - base.Lo
		if j < 0 || j >= base.Len() {
			continue
		}
		if v <= 0 || base.Values[j] <= 0 {
			continue
		}
		ratios = append(ratios, v/base.Values[j])
	}
	if len(ratios) == 0 {
		return math.NaN()
	}
	return stats.GeoMean(ratios)
}
