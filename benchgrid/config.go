// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgrid

import (
	"fmt"
	"strconv"
	"strings"
)

// A Range is the half-open interval [Lo, Hi) of base-2 exponents
// covered by one axis of a benchmark grid.
type Range struct {
	Lo, Hi int
}

// Len returns the number of exponents in r.
func (r Range) Len() int {
	if r.Hi < r.Lo {
		return 0
	}
	return r.Hi - r.Lo
}

// Contains reports whether e is in r.
func (r Range) Contains(e int) bool {
	return r.Lo <= e && e < r.Hi
}

// Exponents returns the exponents of r in ascending order.
func (r Range) Exponents() []int {
	es := make([]int, 0, r.Len())
	for e := r.Lo; e < r.Hi; e++ {
		es = append(es, e)
	}
	return es
}

// String returns r in the lo:hi form accepted by ParseRange.
func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Lo, r.Hi)
}

// ParseRange parses a range of the form "lo:hi".
func ParseRange(s string) (Range, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return Range{}, fmt.Errorf("range %q: want lo:hi", s)
	}
	var r Range
	var err error
	if r.Lo, err = strconv.Atoi(strings.TrimSpace(lo)); err != nil {
		return Range{}, fmt.Errorf("range %q: bad lower bound: %w", s, err)
	}
	if r.Hi, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
		return Range{}, fmt.Errorf("range %q: bad upper bound: %w", s, err)
	}
	if r.Hi <= r.Lo {
		return Range{}, fmt.Errorf("range %q is empty", s)
	}
	return r, nil
}

// A Config fixes the shape of every grid read under it. Rows are
// indexed by instance-size exponent and columns by machine-count
// exponent.
//
// A Config is a plain value. Grids of different shapes can coexist by
// reading them under different Configs.
type Config struct {
	InstanceSize Range
	Machines     Range
}

// DefaultConfig matches the published benchmark runs: instance sizes
// 2^21 through 2^25 on 2^0 through 2^7 machines.
var DefaultConfig = Config{
	InstanceSize: Range{21, 26},
	Machines:     Range{0, 8},
}

// Validate reports whether both ranges of c are non-empty.
func (c Config) Validate() error {
	if c.InstanceSize.Len() == 0 {
		return fmt.Errorf("empty instance-size range %v", c.InstanceSize)
	}
	if c.Machines.Len() == 0 {
		return fmt.Errorf("empty machine-count range %v", c.Machines)
	}
	if c.Machines.Lo < 0 {
		return fmt.Errorf("negative machine-count exponent in %v", c.Machines)
	}
	return nil
}

// Cells returns the number of measurements in a grid of shape c.
func (c Config) Cells() int {
	return c.InstanceSize.Len() * c.Machines.Len()
}
