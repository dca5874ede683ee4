// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaleproc

import (
	"slices"

	"github.com/samber/lo"
	"golang.org/x/scalestat/scalefmt"
	"golang.org/x/scalestat/scalemath"
)

// A ThreadAggregate summarizes all rows with the same thread count,
// regardless of test.
type ThreadAggregate struct {
	Threads int
	// Count is the number of rows at this thread count.
	Count int

	// MeanEfficiency and MeanSpeedup are unweighted arithmetic
	// means of the carried efficiency and speedup.
	MeanEfficiency float64
	MeanSpeedup    float64
}

// AggregateByThreads returns one ThreadAggregate for each distinct
// thread count in rs, in ascending order of thread count. The result
// does not depend on the order of rows in rs.
func AggregateByThreads(rs *scalefmt.ResultSet) []ThreadAggregate {
	type acc struct {
		eff, speedup []float64
	}
	byThreads := make(map[int]*acc)
	for _, r := range rs.Rows() {
		a := byThreads[r.Threads]
		if a == nil {
			a = new(acc)
			byThreads[r.Threads] = a
		}
		a.eff = append(a.eff, r.Efficiency)
		a.speedup = append(a.speedup, r.Speedup)
	}

	out := make([]ThreadAggregate, 0, len(byThreads))
	for _, threads := range ThreadDomain(rs) {
		a := byThreads[threads]
		out = append(out, ThreadAggregate{
			Threads:        threads,
			Count:          len(a.eff),
			MeanEfficiency: scalemath.Mean(a.eff),
			MeanSpeedup:    scalemath.Mean(a.speedup),
		})
	}
	return out
}

// ThreadDomain returns the distinct thread counts in rs in ascending
// order.
func ThreadDomain(rs *scalefmt.ResultSet) []int {
	threads := lo.Uniq(lo.Map(rs.Rows(), func(r scalefmt.Row, _ int) int {
		return r.Threads
	}))
	slices.Sort(threads)
	return threads
}

// Extrema holds the best runs of a result set.
type Extrema struct {
	// Speedup is the row with the greatest speedup.
	Speedup scalemath.DerivedRow
	// Efficiency is the row with the greatest efficiency.
	Efficiency scalemath.DerivedRow
}

// FindExtrema returns the rows of rs with the greatest speedup and the
// greatest efficiency. Ties go to the row that was loaded first. It
// fails with ErrEmptyDataset if rs has no rows, or with an
// *scalemath.InvalidMeasurementError if any row is invalid.
func FindExtrema(rs *scalefmt.ResultSet) (Extrema, error) {
	if rs.Len() == 0 {
		return Extrema{}, ErrEmptyDataset
	}
	rows := make([]scalemath.DerivedRow, rs.Len())
	for i := range rows {
		d, err := scalemath.Derive(rs.Row(i))
		if err != nil {
			return Extrema{}, err
		}
		rows[i] = d
	}
	// MaxBy only replaces its candidate on a strictly greater
	// value, so the earliest maximum wins.
	return Extrema{
		Speedup: lo.MaxBy(rows, func(a, b scalemath.DerivedRow) bool {
			return a.Speedup > b.Speedup
		}),
		Efficiency: lo.MaxBy(rows, func(a, b scalemath.DerivedRow) bool {
			return a.Efficiency > b.Efficiency
		}),
	}, nil
}
