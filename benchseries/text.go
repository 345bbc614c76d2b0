// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/distfri/friperf/benchunit"
	"github.com/distfri/friperf/internal/texttab"
)

// WriteText writes c as a table with one row per protocol and one
// column per machine count, followed by the scaling of each line.
func WriteText(w io.Writer, c *Comparison) error {
	if _, err := fmt.Fprintf(w, "%s (instance size 2^%d)\n", c.Chart.Title, c.Config.InstanceSize.Hi-1); err != nil {
		return err
	}

	header, rows := c.Table()
	slopeCol := len(c.machineRange().Exponents()) + 1

	var tab texttab.Table
	for _, r := range append([][]string{header}, rows...) {
		tab.Row()
		for col, v := range r {
			switch {
			case col == 0:
				tab.Cell(v)
			case col == slopeCol:
				tab.Cell(v, texttab.Right, texttab.LeftMargin("  "))
			default:
				tab.Cell(v, texttab.Right)
			}
		}
	}
	if err := tab.Format(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func formatStat(v float64, format string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "~"
	}
	return fmt.Sprintf(format, v)
}

// Table returns the cells of c's summary table. header holds
// "machines", one column per machine count, "slope", and, if c has a
// baseline, the ratio column. Each row starts with a protocol label.
// A protocol not measured at some machine count has an empty cell.
func (c *Comparison) Table() (header []string, rows [][]string) {
	var all []float64
	for _, l := range c.Lines {
		all = append(all, l.Series.Values...)
	}
	f := benchunit.NewFormatter(c.Unit, all)
	base, hasBase := c.Baseline()
	exps := c.machineRange().Exponents()

	header = append(header, "machines")
	for _, e := range exps {
		header = append(header, strconv.Itoa(1<<e))
	}
	header = append(header, "slope")
	if hasBase {
		header = append(header, "vs "+base.Protocol.Name)
	}

	scaling := c.Scaling()
	for i, l := range c.Lines {
		row := []string{l.Protocol.Label}
		for _, e := range exps {
			k := e - l.Series.Lo
			if k < 0 || k >= l.Series.Len() {
				row = append(row, "")
				continue
			}
			row = append(row, f.Format(l.Series.Values[k]))
		}
		row = append(row, formatStat(scaling[i].Slope, "%+.2f"))
		if hasBase {
			row = append(row, formatStat(scaling[i].Ratio, "%.2fx"))
		}
		rows = append(rows, row)
	}
	return header, rows
}
