// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalereport

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/scalestat/scalemath"
)

// DerivedColumns are the columns written by WriteCSV.
var DerivedColumns = []string{
	"Test", "K", "N", "Elements", "Threads",
	"SeqTime_ms", "ParTime_ms", "Speedup", "Efficiency", "Throughput",
	"RecomputedSpeedup", "RecomputedEfficiency",
}

// WriteCSV writes the derived per-run table of r to w, one record per
// row in report order.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DerivedColumns); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, g := range r.Tests {
		for _, d := range g.Rows {
			rec := []string{
				d.Test,
				strconv.Itoa(d.K),
				strconv.Itoa(d.N),
				strconv.FormatInt(d.Elements(), 10),
				strconv.Itoa(d.Threads),
				f(d.SeqTime),
				f(d.ParTime),
				f(d.Speedup),
				f(d.Efficiency),
				f(d.Throughput),
				f(scalemath.Speedup(d.Row)),
				f(scalemath.Efficiency(d.Row)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
