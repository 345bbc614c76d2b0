// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

// tidyUnits maps pre-scaled display units to their base unit and the
// factor that converts a value into it.
var tidyUnits = map[string]struct {
	base   string
	factor float64
}{
	"MB": {"B", 1e6},
	"GB": {"B", 1e9},
	"kB": {"B", 1e3},
	"ms": {"s", 1e-3},
	"ns": {"s", 1e-9},
}

// Tidy normalizes a value with a (possibly pre-scaled) unit into base
// units. For example, 1.5 "GB" becomes 1.5e9 "B". If unit is already a
// base unit, Tidy returns its arguments.
func Tidy(value float64, unit string) (tidiedValue float64, tidiedUnit string) {
	if t, ok := tidyUnits[unit]; ok {
		return value * t.factor, t.base
	}
	return value, unit
}

// A Formatter formats values of one unit with a shared SI prefix, so a
// column of values lines up and reads in a single unit.
type Formatter struct {
	unit   Unit
	base   string
	scaler Scaler
}

// NewFormatter returns a Formatter for vals, given in u's display
// unit. The prefix is picked from the tidied values, so 1200 MB
// formats as "1.200GB" rather than as a multiple of MB.
func NewFormatter(u Unit, vals []float64) Formatter {
	tidied := make([]float64, len(vals))
	for i, v := range vals {
		tidied[i], _ = Tidy(v, u.Name)
	}
	_, base := Tidy(0, u.Name)
	return Formatter{u, base, CommonScale(tidied)}
}

// Format formats val, in the formatter's display unit, with its
// prefix and base unit.
func (f Formatter) Format(val float64) string {
	v, _ := Tidy(val, f.unit.Name)
	return f.scaler.Format(v) + f.base
}
