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

func TestRow(t *testing.T) {
	cfg := Config{InstanceSize: Range{21, 24}, Machines: Range{0, 2}}
	g := mustGrid(t, cfg, benchunit.Seconds, [][]float64{{1, 2}, {3, 4}, {5, 6}})

	for e := 21; e < 24; e++ {
		s, err := g.Row(e)
		if err != nil {
			t.Fatalf("Row(%d): %v", e, err)
		}
		if diff := cmp.Diff(g.Values[e-21], s.Values); diff != "" {
			t.Errorf("Row(%d) mismatch (-want +got):\n%s", e, diff)
		}
	}
	for _, e := range []int{20, 24, 0} {
		if _, err := g.Row(e); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Row(%d): got %v, want ErrIndexOutOfRange", e, err)
		}
	}

	last := g.LastRow()
	if diff := cmp.Diff(Series{Lo: 0, Values: []float64{5, 6}}, last); diff != "" {
		t.Errorf("LastRow mismatch (-want +got):\n%s", diff)
	}
	// Series do not alias the grid.
	last.Values[0] = 100
	if g.Values[2][0] != 5 {
		t.Errorf("modifying a Series changed its Grid")
	}
}

func TestAt(t *testing.T) {
	cfg := Config{InstanceSize: Range{21, 23}, Machines: Range{1, 3}}
	g := mustGrid(t, cfg, benchunit.Seconds, [][]float64{{1, 2}, {3, 4}})
	if v, err := g.At(22, 1); err != nil || v != 3 {
		t.Errorf("At(22, 1) = %v, %v, want 3", v, err)
	}
	if _, err := g.At(22, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("At(22, 0): got %v, want ErrIndexOutOfRange", err)
	}
	if _, err := g.At(23, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("At(23, 1): got %v, want ErrIndexOutOfRange", err)
	}
}

func TestNewGridShape(t *testing.T) {
	cfg := Config{InstanceSize: Range{21, 23}, Machines: Range{0, 2}}
	if _, err := NewGrid(cfg, benchunit.Seconds, [][]float64{{1, 2}}); err == nil {
		t.Errorf("NewGrid with too few rows succeeded")
	}
	if _, err := NewGrid(cfg, benchunit.Seconds, [][]float64{{1, 2}, {3}}); err == nil {
		t.Errorf("NewGrid with a short row succeeded")
	}
}

func TestSeriesDropFirst(t *testing.T) {
	// A distributed-only protocol on 2^0..2^7 machines loses its
	// single-machine point and its x-axis starts at 2.
	vals := []float64{8, 7, 6, 5, 4, 3, 2, 1}
	s := Series{Lo: 0, Values: vals}
	d := s.DropFirst()
	if d.Len() != len(vals)-1 {
		t.Fatalf("DropFirst length = %d, want %d", d.Len(), len(vals)-1)
	}
	if diff := cmp.Diff(vals[1:], d.Values); diff != "" {
		t.Errorf("DropFirst values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2, 4, 8, 16, 32, 64, 128}, d.X()); diff != "" {
		t.Errorf("DropFirst X mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 4, 8, 16, 32, 64, 128}, s.X()); diff != "" {
		t.Errorf("X mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7}, d.Machines()); diff != "" {
		t.Errorf("Machines mismatch (-want +got):\n%s", diff)
	}
	if e := (Series{}).DropFirst(); e.Len() != 0 {
		t.Errorf("DropFirst of empty series has %d points", e.Len())
	}
}
