// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/distfri/friperf/benchunit"
)

// WriteCSV writes the lines of cs to out, one row per point:
// chart, protocol, machines, value, unit.
func WriteCSV(out io.Writer, cs []*Comparison) error {
	w := csv.NewWriter(out)
	w.Write([]string{"chart", "protocol", "machines", "value", "unit"})
	for _, c := range cs {
		for _, l := range c.Lines {
			for i, x := range l.Series.X() {
				w.Write([]string{
					c.Chart.Name(),
					l.Protocol.Name,
					strconv.Itoa(int(x)),
					benchunit.NoOpScaler.Format(l.Series.Values[i]),
					c.Unit.Name,
				})
			}
		}
	}
	w.Flush()
	return w.Error()
}

// WriteGridCSV writes the lines of gs to out, one row per point:
// metric, protocol, instance size exponent, machines, value, unit.
func WriteGridCSV(out io.Writer, gs []*GridComparison) error {
	w := csv.NewWriter(out)
	w.Write([]string{"metric", "protocol", "instance_size", "machines", "value", "unit"})
	for _, g := range gs {
		for _, l := range g.Lines {
			for i, x := range l.Series.X() {
				w.Write([]string{
					g.Metric.String(),
					g.Protocol.Name,
					strconv.Itoa(l.InstanceSize),
					strconv.Itoa(int(x)),
					benchunit.NoOpScaler.Format(l.Series.Values[i]),
					g.Grid.Unit.Name,
				})
			}
		}
	}
	w.Flush()
	return w.Error()
}
