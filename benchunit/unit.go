// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit converts raw benchmark measurements into the
// units used for charting and formats numbers in those units.
package benchunit

import "fmt"

// A Unit describes how raw measurements recorded by the benchmark
// harness map to a display unit.
//
// Conversion divides by Divisor. For example, Seconds converts a raw
// nanosecond count x to x/1e9 seconds.
type Unit struct {
	Name    string  // Display unit, such as "s" or "MB"
	Raw     string  // Unit recorded by the harness, such as "ns"
	Divisor float64 // Raw units per display unit
}

var (
	// Seconds is the unit of timing artifacts, recorded in nanoseconds.
	Seconds = Unit{"s", "ns", 1e9}

	// Megabytes is the unit of proof sizes and communication
	// costs, recorded in bytes.
	Megabytes = Unit{"MB", "B", 1e6}

	// Gigabytes is the unit of memory high-water marks, recorded
	// in kilobytes as reported by the operating system.
	Gigabytes = Unit{"GB", "kB", 1e6}
)

// Convert returns raw, measured in u.Raw, in display units.
func (u Unit) Convert(raw float64) float64 {
	return raw / u.Divisor
}

func (u Unit) String() string {
	return u.Name
}

// ParseUnit returns the Unit whose display name is name.
func ParseUnit(name string) (Unit, error) {
	for _, u := range []Unit{Seconds, Megabytes, Gigabytes} {
		if u.Name == name {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("unknown unit %q", name)
}
