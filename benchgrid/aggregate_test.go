// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgrid

import (
	"errors"
	"testing"

	"github.com/distfri/friperf/benchunit"
	"github.com/google/go-cmp/cmp"
)

func mustGrid(t *testing.T, cfg Config, unit benchunit.Unit, vals [][]float64) *Grid {
	t.Helper()
	g, err := NewGrid(cfg, unit, vals)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCombine(t *testing.T) {
	cfg := Config{InstanceSize: Range{25, 26}, Machines: Range{1, 3}}
	a := mustGrid(t, cfg, benchunit.Gigabytes, [][]float64{{1, 5}})
	b := mustGrid(t, cfg, benchunit.Gigabytes, [][]float64{{3, 2}})

	for _, test := range []struct {
		op   Op
		want [][]float64
	}{
		{Max, [][]float64{{3, 5}}},
		{Sum, [][]float64{{4, 7}}},
	} {
		got, err := Combine(test.op, a, b)
		if err != nil {
			t.Fatalf("%v: %v", test.op, err)
		}
		if diff := cmp.Diff(test.want, got.Values); diff != "" {
			t.Errorf("%v mismatch (-want +got):\n%s", test.op, diff)
		}
		if got.Config != cfg {
			t.Errorf("%v: config = %+v, want %+v", test.op, got.Config, cfg)
		}
	}

	// The operands are left alone.
	if diff := cmp.Diff([][]float64{{1, 5}}, a.Values); diff != "" {
		t.Errorf("Combine modified its first operand:\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{3, 2}}, b.Values); diff != "" {
		t.Errorf("Combine modified its second operand:\n%s", diff)
	}
}

func TestCombineMany(t *testing.T) {
	cfg := Config{InstanceSize: Range{21, 23}, Machines: Range{0, 2}}
	a := mustGrid(t, cfg, benchunit.Seconds, [][]float64{{1, 2}, {3, 4}})
	b := mustGrid(t, cfg, benchunit.Seconds, [][]float64{{10, 20}, {30, 40}})
	c := mustGrid(t, cfg, benchunit.Seconds, [][]float64{{100, 0}, {0, 400}})

	got, err := Combine(Sum, a, b, c)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]float64{{111, 22}, {33, 444}}, got.Values); diff != "" {
		t.Errorf("Sum mismatch (-want +got):\n%s", diff)
	}

	got, err = Combine(Max, a)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Values, got.Values); diff != "" {
		t.Errorf("Max of one grid mismatch (-want +got):\n%s", diff)
	}
	got.Values[0][0] = -1
	if a.Values[0][0] != 1 {
		t.Errorf("Combine of one grid aliases its input")
	}
}

func TestCombineIncompatible(t *testing.T) {
	cfg := Config{InstanceSize: Range{21, 23}, Machines: Range{0, 2}}
	a := mustGrid(t, cfg, benchunit.Seconds, [][]float64{{1, 2}, {3, 4}})
	wide := mustGrid(t, Config{InstanceSize: Range{21, 23}, Machines: Range{0, 3}}, benchunit.Seconds,
		[][]float64{{1, 2, 3}, {4, 5, 6}})
	shifted := mustGrid(t, Config{InstanceSize: Range{22, 24}, Machines: Range{0, 2}}, benchunit.Seconds,
		[][]float64{{1, 2}, {3, 4}})
	bytes := mustGrid(t, cfg, benchunit.Megabytes, [][]float64{{1, 2}, {3, 4}})
	ragged := &Grid{Config: cfg, Unit: benchunit.Seconds, Values: [][]float64{{1, 2}, {3}}}

	for name, grids := range map[string][]*Grid{
		"none":    nil,
		"wide":    {a, wide},
		"shifted": {a, shifted},
		"unit":    {a, bytes},
		"ragged":  {a, ragged},
	} {
		if _, err := Combine(Sum, grids...); !errors.Is(err, ErrIncompatibleGrids) {
			t.Errorf("%s: got %v, want ErrIncompatibleGrids", name, err)
		}
	}
}
