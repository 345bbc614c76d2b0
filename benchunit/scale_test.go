// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"math"
	"testing"
)

func TestScale(t *testing.T) {
	test := func(num float64, want, wantPred string) {
		t.Helper()

		got := Scale(num)
		if got != want {
			t.Errorf("for %v, got %s, want %s", num, got, want)
		}

		// Check what happens when this number is exactly on
		// the crux between two scale factors.
		pred := math.Nextafter(num, 0)
		got = Scale(pred)
		if got != wantPred {
			t.Errorf("for %v-ε, got %s, want %s", num, got, wantPred)
		}
	}

	test(0, "0.000", "0.000")
	test(1, "1.000", "1.000")
	test(-1, "-1.000", "-1.000")
	test(9999500000, "10.00G", "9.999G")
	test(999950, "1.000M", "999.9k")
	test(99995, "100.0k", "99.99k")
	test(999.95, "1.000k", "999.9")
	test(99.995, "100.0", "99.99")
	test(9.9995, "10.00", "9.999")
	test(.99995, "1.000", "999.9m")
	test(.00099995, "1.000m", "999.9µ")
}

func TestCommonScale(t *testing.T) {
	// The smallest value picks the scale.
	s := CommonScale([]float64{0.3, 1.5, 23})
	if got, want := s.Format(0.3), "300.0m"; got != want {
		t.Errorf("Format(0.3) = %s, want %s", got, want)
	}
	if got, want := s.Format(23), "23000.0m"; got != want {
		t.Errorf("Format(23) = %s, want %s", got, want)
	}
	if got, want := NoOpScaler.Format(0.125), "0.125"; got != want {
		t.Errorf("NoOpScaler.Format(0.125) = %s, want %s", got, want)
	}
}

func TestConvert(t *testing.T) {
	for _, test := range []struct {
		unit Unit
		raw  float64
		want float64
	}{
		{Seconds, 4e9, 4},
		{Seconds, 650e6, 0.65},
		{Megabytes, 23e6, 23},
		{Gigabytes, 230000, 0.23},
	} {
		if got := test.unit.Convert(test.raw); got != test.want {
			t.Errorf("%s.Convert(%v) = %v, want %v", test.unit, test.raw, got, test.want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	for _, u := range []Unit{Seconds, Megabytes, Gigabytes} {
		got, err := ParseUnit(u.Name)
		if err != nil || got != u {
			t.Errorf("ParseUnit(%q) = %v, %v, want %v", u.Name, got, err, u)
		}
	}
	if _, err := ParseUnit("furlongs"); err == nil {
		t.Errorf("ParseUnit(furlongs) succeeded")
	}
}

func TestTidy(t *testing.T) {
	for _, test := range []struct {
		val      float64
		unit     string
		wantVal  float64
		wantUnit string
	}{
		{1200, "MB", 1.2e9, "B"},
		{0.5, "GB", 5e8, "B"},
		{4, "s", 4, "s"},
		{650e6, "ns", 0.65, "s"},
	} {
		v, u := Tidy(test.val, test.unit)
		if math.Abs(v-test.wantVal) > 1e-9*test.wantVal || u != test.wantUnit {
			t.Errorf("Tidy(%v, %q) = %v, %q, want %v, %q", test.val, test.unit, v, u, test.wantVal, test.wantUnit)
		}
	}
}

func TestFormatter(t *testing.T) {
	for _, test := range []struct {
		unit Unit
		vals []float64
		want []string
	}{
		// Communication costs in MB.
		{Megabytes, []float64{1200, 2400, 3900}, []string{"1.200GB", "2.400GB", "3.900GB"}},
		// Peak memory in GB.
		{Gigabytes, []float64{0.23, 5, 12}, []string{"230.0MB", "5000.0MB", "12000.0MB"}},
		{Gigabytes, []float64{1.5, 12}, []string{"1.500GB", "12.000GB"}},
		{Seconds, []float64{2, 16}, []string{"2.000s", "16.000s"}},
		{Seconds, []float64{0.004, 0.3}, []string{"4.000ms", "300.000ms"}},
	} {
		f := NewFormatter(test.unit, test.vals)
		for i, v := range test.vals {
			if got := f.Format(v); got != test.want[i] {
				t.Errorf("%s formatter for %v: Format(%v) = %s, want %s", test.unit, test.vals, v, got, test.want[i])
			}
		}
	}
}
