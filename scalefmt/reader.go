// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalefmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Columns lists the columns every input must have, in the order a
// Writer emits them.
var Columns = []string{"Test", "K", "N", "Threads", "SeqTime_ms", "ParTime_ms", "Speedup", "Efficiency"}

// Indexes into Columns.
const (
	colTest = iota
	colK
	colN
	colThreads
	colSeqTime
	colParTime
	colSpeedup
	colEfficiency
)

// A Reader reads rows in the scaling result format.
//
// Its API is modeled on bufio.Scanner: call Scan until it returns
// false, using Row to retrieve each row, then check Err.
type Reader struct {
	c        *csv.Reader
	fileName string

	// index maps each entry of Columns to its position in the
	// input's records. It is nil until the header is read.
	index []int

	row Row
	err error
}

// A SyntaxError represents a malformed line of a results file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader constructs a reader that parses rows from r. fileName is
// used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	c := csv.NewReader(r)
	c.TrimLeadingSpace = true
	c.ReuseRecord = true
	return &Reader{c: c, fileName: fileName}
}

// Scan advances the reader to the next row and reports whether a row
// was read. If Scan reaches EOF or encounters an error, it returns
// false, in which case the caller should use Err to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.index == nil {
		if !r.readHeader() {
			return false
		}
	}

	rec, err := r.c.Read()
	if err != nil {
		r.setReadErr(err)
		return false
	}
	line, _ := r.c.FieldPos(0)
	row, err := r.parse(rec, line)
	if err != nil {
		r.err = err
		return false
	}
	r.row = row
	return true
}

// Row returns the row most recently read by Scan.
func (r *Reader) Row() Row {
	return r.row
}

// Err returns the first error encountered by the Reader, or nil if
// the input was read to EOF without error.
func (r *Reader) Err() error {
	if r.err == io.EOF {
		return nil
	}
	return r.err
}

// ReadAll reads all remaining rows into a ResultSet named after the
// Reader's file name.
func (r *Reader) ReadAll() (*ResultSet, error) {
	var rows []Row
	for r.Scan() {
		rows = append(rows, r.Row())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return &ResultSet{name: r.fileName, rows: rows}, nil
}

func (r *Reader) readHeader() bool {
	rec, err := r.c.Read()
	if err != nil {
		// An empty input has no header and no rows.
		r.setReadErr(err)
		return false
	}
	pos := make(map[string]int, len(rec))
	var dup []string
	for i, name := range rec {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, ok := pos[name]; ok && slices.Contains(Columns, name) && !slices.Contains(dup, name) {
			dup = append(dup, name)
		}
		pos[name] = i
	}
	if len(dup) > 0 {
		r.err = &SyntaxError{r.fileName, 1, fmt.Sprintf("duplicate column(s) %s", strings.Join(dup, ", "))}
		return false
	}
	index := make([]int, len(Columns))
	var missing []string
	for i, name := range Columns {
		p, ok := pos[name]
		if !ok {
			missing = append(missing, name)
		}
		index[i] = p
	}
	if len(missing) > 0 {
		r.err = &SyntaxError{r.fileName, 1, fmt.Sprintf("missing column(s) %s", strings.Join(missing, ", "))}
		return false
	}
	r.index = index
	// The header fixes the number of fields in every record.
	r.c.FieldsPerRecord = len(rec)
	return true
}

func (r *Reader) setReadErr(err error) {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		r.err = &SyntaxError{r.fileName, perr.Line, perr.Err.Error()}
		return
	}
	r.err = err
}

func (r *Reader) parse(rec []string, line int) (Row, error) {
	field := func(col int) string {
		return strings.TrimSpace(rec[r.index[col]])
	}
	bad := func(col int, err error) error {
		if nerr, ok := err.(*strconv.NumError); ok {
			err = nerr.Err
		}
		return &SyntaxError{r.fileName, line, fmt.Sprintf("bad %s value %q: %v", Columns[col], field(col), err)}
	}

	row := Row{Test: field(colTest), Line: line}
	if row.Test == "" {
		return Row{}, &SyntaxError{r.fileName, line, "empty Test value"}
	}
	for _, f := range []struct {
		col int
		dst *int
	}{{colK, &row.K}, {colN, &row.N}, {colThreads, &row.Threads}} {
		v, err := strconv.Atoi(field(f.col))
		if err != nil {
			return Row{}, bad(f.col, err)
		}
		*f.dst = v
	}
	for _, f := range []struct {
		col int
		dst *float64
	}{{colSeqTime, &row.SeqTime}, {colParTime, &row.ParTime}, {colSpeedup, &row.Speedup}, {colEfficiency, &row.Efficiency}} {
		v, err := strconv.ParseFloat(field(f.col), 64)
		if err != nil {
			return Row{}, bad(f.col, err)
		}
		*f.dst = v
	}
	return row, nil
}
