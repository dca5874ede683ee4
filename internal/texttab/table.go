// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	rows [][]cell
	cols int

	// Indent is printed at the start of every non-empty line.
	Indent string
}

type cell struct {
	value      string
	leftMargin string
	alignment  align
}

// A CellOption modifies how a cell is laid out.
type CellOption func(c *cell)

// LeftMargin sets the text printed before the cell. Cells other than
// the first in a row default to a single space.
func LeftMargin(x string) CellOption {
	return func(c *cell) {
		c.leftMargin = x
	}
}

var (
	Left  CellOption = func(c *cell) { c.alignment = alignLeft }
	Right CellOption = func(c *cell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row. It starts a row if
// there is none.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	row := &t.rows[len(t.rows)-1]
	c := cell{value: value}
	if len(*row) > 0 {
		c.leftMargin = " "
	}
	for _, o := range opts {
		o(&c)
	}
	*row = append(*row, c)
	if len(*row) > t.cols {
		t.cols = len(*row)
	}
	return t
}

// Format lays out table t and writes it to w. Trailing blanks are
// trimmed from every line.
func (t *Table) Format(w io.Writer) error {
	// Each column is as wide as its widest margin plus its widest
	// value, so margins line up across rows.
	margins := make([]int, t.cols)
	widths := make([]int, t.cols)
	for _, row := range t.rows {
		for i, c := range row {
			margins[i] = max(margins[i], utf8.RuneCountInString(c.leftMargin))
			widths[i] = max(widths[i], utf8.RuneCountInString(c.value))
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for i, c := range row {
			line.WriteString(fmt.Sprintf("%*s", margins[i], c.leftMargin))
			line.WriteString(c.alignment.pad(c.value, widths[i]))
		}
		s := strings.TrimRight(line.String(), " ")
		if s != "" {
			s = t.Indent + s
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// String returns the formatted table.
func (t *Table) String() string {
	var b strings.Builder
	t.Format(&b)
	return b.String()
}
