// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalefmt

import (
	"encoding/csv"
	"io"
	"strconv"
)

// A Writer writes Rows in the scaling result format, with the
// columns in the order given by Columns.
type Writer struct {
	w     *csv.Writer
	first bool
	rec   []string
}

// NewWriter returns a writer that writes rows to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w), first: true, rec: make([]string, len(Columns))}
}

// Write writes row r, preceded by the header line if this is the
// first call.
func (w *Writer) Write(r Row) error {
	if err := w.header(); err != nil {
		return err
	}
	w.rec[colTest] = r.Test
	w.rec[colK] = strconv.Itoa(r.K)
	w.rec[colN] = strconv.Itoa(r.N)
	w.rec[colThreads] = strconv.Itoa(r.Threads)
	w.rec[colSeqTime] = formatFloat(r.SeqTime)
	w.rec[colParTime] = formatFloat(r.ParTime)
	w.rec[colSpeedup] = formatFloat(r.Speedup)
	w.rec[colEfficiency] = formatFloat(r.Efficiency)
	return w.w.Write(w.rec)
}

// Flush writes the header if nothing has been written yet and flushes
// any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if err := w.header(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

func (w *Writer) header() error {
	if !w.first {
		return nil
	}
	w.first = false
	return w.w.Write(Columns)
}

// formatFloat formats v with the fewest digits that round-trip.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
