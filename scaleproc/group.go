// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaleproc groups and reduces scaling results.
//
// GroupByTest collects the rows of each test into a GroupSummary,
// AggregateByThreads reduces rows with the same thread count across
// all tests, and FindExtrema picks the best runs of the whole result
// set. None of these functions retain or modify their input; every
// call recomputes its result.
package scaleproc

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/scalestat/scalefmt"
	"golang.org/x/scalestat/scalemath"
)

var (
	// ErrEmptyDataset is returned when an operation needs at least
	// one row.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrInconsistentGroup is matched by errors for tests whose
	// rows disagree on K, N or the sequential time.
	ErrInconsistentGroup = errors.New("inconsistent test group")

	// ErrDuplicateThreadCount is matched by errors for tests with
	// more than one row for the same thread count.
	ErrDuplicateThreadCount = errors.New("duplicate thread count")
)

// A GroupSummary is all of the rows of one test.
type GroupSummary struct {
	Test string
	K, N int

	// SeqTime is the sequential baseline time in milliseconds,
	// shared by all rows of the test.
	SeqTime float64

	// Rows are the test's rows in ascending order of Threads.
	Rows []scalemath.DerivedRow
}

// Elements returns the total number of elements processed by g's
// workload.
func (g *GroupSummary) Elements() int64 {
	return int64(g.K) * int64(g.N)
}

// Groups maps from test identifier to that test's summary.
type Groups map[string]*GroupSummary

// TestIDs returns the test identifiers of g in ascending
// lexicographic order.
func (g Groups) TestIDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sorted returns the summaries of g in ascending lexicographic order
// of test identifier.
func (g Groups) Sorted() []*GroupSummary {
	ids := g.TestIDs()
	out := make([]*GroupSummary, len(ids))
	for i, id := range ids {
		out[i] = g[id]
	}
	return out
}

// An InconsistentGroupError reports a row whose K, N or sequential
// time differs from the first row of its test.
type InconsistentGroupError struct {
	Test      string
	Field     string
	Want, Got string
	Line      int
}

func (e *InconsistentGroupError) Error() string {
	var at string
	if e.Line > 0 {
		at = fmt.Sprintf(" (line %d)", e.Line)
	}
	return fmt.Sprintf("test %s%s: inconsistent %s: %s, but earlier rows have %s", e.Test, at, e.Field, e.Got, e.Want)
}

func (e *InconsistentGroupError) Is(target error) bool {
	return target == ErrInconsistentGroup
}

// A DuplicateThreadCountError reports a test with more than one row
// for the same thread count.
type DuplicateThreadCountError struct {
	Test    string
	Threads int
	// Lines are the input lines of the duplicated rows, if known.
	Lines []int
}

func (e *DuplicateThreadCountError) Error() string {
	var at string
	if len(e.Lines) > 0 && e.Lines[0] > 0 {
		lines := make([]string, len(e.Lines))
		for i, l := range e.Lines {
			lines[i] = fmt.Sprint(l)
		}
		at = " (lines " + strings.Join(lines, ", ") + ")"
	}
	return fmt.Sprintf("test %s: duplicate rows for threads=%d%s", e.Test, e.Threads, at)
}

func (e *DuplicateThreadCountError) Is(target error) bool {
	return target == ErrDuplicateThreadCount
}

// GroupByTest groups the rows of rs by test and derives their
// metrics. It fails if any row is invalid, if rows of the same test
// disagree on K, N or sequential time, or if a test has two rows with
// the same thread count.
func GroupByTest(rs *scalefmt.ResultSet) (Groups, error) {
	groups := make(Groups)
	for _, r := range rs.Rows() {
		d, err := scalemath.Derive(r)
		if err != nil {
			return nil, err
		}
		g := groups[r.Test]
		if g == nil {
			g = &GroupSummary{Test: r.Test, K: r.K, N: r.N, SeqTime: r.SeqTime}
			groups[r.Test] = g
		} else if err := g.check(r); err != nil {
			return nil, err
		}
		g.Rows = append(g.Rows, d)
	}

	for _, g := range groups.Sorted() {
		// Stable, so duplicates are reported in load order.
		slices.SortStableFunc(g.Rows, func(a, b scalemath.DerivedRow) int {
			return a.Threads - b.Threads
		})
		for i := 1; i < len(g.Rows); i++ {
			if g.Rows[i].Threads == g.Rows[i-1].Threads {
				return nil, &DuplicateThreadCountError{
					Test:    g.Test,
					Threads: g.Rows[i].Threads,
					Lines:   []int{g.Rows[i-1].Line, g.Rows[i].Line},
				}
			}
		}
	}
	return groups, nil
}

// check verifies that r agrees with the shared fields of g.
func (g *GroupSummary) check(r scalefmt.Row) error {
	inconsistent := func(field string, want, got any) error {
		return &InconsistentGroupError{Test: g.Test, Field: field, Want: fmt.Sprint(want), Got: fmt.Sprint(got), Line: r.Line}
	}
	switch {
	case r.K != g.K:
		return inconsistent("K", g.K, r.K)
	case r.N != g.N:
		return inconsistent("N", g.N, r.N)
	case r.SeqTime != g.SeqTime:
		return inconsistent("SeqTime_ms", g.SeqTime, r.SeqTime)
	}
	return nil
}
