// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build up
// a row at once.
type Table struct {
	rows [][]cell
}

type cell struct {
	value      string
	leftMargin string
	right      bool
}

// A CellOption adjusts the layout of one cell.
type CellOption func(c *cell)

// LeftMargin sets the text printed before the cell's column.
func LeftMargin(x string) CellOption {
	return func(c *cell) {
		c.leftMargin = x
	}
}

// Right right-aligns the cell within its column.
var Right CellOption = func(c *cell) { c.right = true }

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	if len(t.rows[len(t.rows)-1]) > 0 && value != "" {
		// Every column but the first defaults to one space of
		// separation.
		c.leftMargin = " "
	}
	for _, o := range opts {
		o(&c)
	}
	r := &t.rows[len(t.rows)-1]
	*r = append(*r, c)
	return t
}

// Format lays out table t and writes it to w.
func (t *Table) Format(w io.Writer) error {
	var margins, widths []int
	for _, row := range t.rows {
		for col, c := range row {
			if col == len(widths) {
				margins = append(margins, 0)
				widths = append(widths, 0)
			}
			margins[col] = max(margins[col], utf8.RuneCountInString(c.leftMargin))
			widths[col] = max(widths[col], utf8.RuneCountInString(c.value))
		}
	}

	for _, row := range t.rows {
		var line strings.Builder
		// pending holds padding that is only written if a
		// non-empty cell follows, so lines have no trailing
		// spaces.
		pending := 0
		for col, c := range row {
			pad := widths[col] - utf8.RuneCountInString(c.value)
			pending += margins[col] - utf8.RuneCountInString(c.leftMargin)
			if c.value == "" {
				pending += utf8.RuneCountInString(c.leftMargin) + widths[col]
				continue
			}
			line.WriteString(strings.Repeat(" ", pending))
			line.WriteString(c.leftMargin)
			pending = 0
			if c.right {
				line.WriteString(strings.Repeat(" ", pad))
				line.WriteString(c.value)
			} else {
				line.WriteString(c.value)
				pending = pad
			}
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
