// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalereport builds the analytical report of a scaling
// experiment.
//
// Build computes everything the report shows; a Report performs no
// I/O of its own and can be written in several formats (see Formats).
// Given the same ResultSet, every format is byte-for-byte
// deterministic.
package scalereport

import (
	"errors"
	"fmt"

	"golang.org/x/scalestat/scalefmt"
	"golang.org/x/scalestat/scalemath"
	"golang.org/x/scalestat/scaleproc"
)

// DefaultRecommendations is the closing advice of a report.
var DefaultRecommendations = []string{
	"For maximum efficiency, use 2-8 threads.",
	"For maximum performance, use 16-32 threads.",
	"Efficiency drops as the thread count grows because of parallelization overhead.",
}

// Options configures Build.
type Options struct {
	// Thresholds are used to cross-check carried metrics. If nil,
	// scalemath.DefaultThresholds is used.
	Thresholds *scalemath.Thresholds

	// SkipInvalid drops rows that fail scalemath.Derive and reports
	// them as warnings. Otherwise, an invalid row aborts the report.
	SkipInvalid bool

	// Recommendations is the static text of the last section.
	Recommendations []string
}

// DefaultOptions returns the default report options.
func DefaultOptions() Options {
	return Options{
		Thresholds:      &scalemath.DefaultThresholds,
		Recommendations: DefaultRecommendations,
	}
}

// Overview holds the overall statistics of a report.
type Overview struct {
	Tests      int `json:"tests" yaml:"tests"`
	Rows       int `json:"rows" yaml:"rows"`
	MinThreads int `json:"min_threads" yaml:"min_threads"`
	MaxThreads int `json:"max_threads" yaml:"max_threads"`
}

// A Report is the analysis of one ResultSet.
type Report struct {
	// Source names the analyzed result set.
	Source string
	// Digest is the fingerprint of the analyzed result set.
	Digest uint64

	Overview Overview

	// Tests are the per-test summaries in ascending order of test
	// identifier.
	Tests []*scaleproc.GroupSummary

	Extrema scaleproc.Extrema

	// Scalability is the per-thread-count aggregate across all
	// tests, in ascending order of thread count.
	Scalability []scaleproc.ThreadAggregate

	Recommendations []string

	// Warnings are problems that did not prevent the analysis,
	// such as carried metrics that disagree with the raw times or
	// skipped rows. They are listed in load order.
	Warnings []error
}

// Build analyzes rs. It fails with scaleproc.ErrEmptyDataset if rs has
// no usable rows, and with the underlying error if rs violates the
// structural invariants of a result set; no partial report is
// returned.
func Build(rs *scalefmt.ResultSet, opts Options) (*Report, error) {
	if rs.Len() == 0 {
		return nil, scaleproc.ErrEmptyDataset
	}

	var warnings []error
	rows := make([]scalefmt.Row, 0, rs.Len())
	for _, r := range rs.Rows() {
		if _, err := scalemath.Derive(r); err != nil {
			if opts.SkipInvalid && errors.Is(err, scalemath.ErrInvalidMeasurement) {
				warnings = append(warnings, fmt.Errorf("skipped row: %w", err))
				continue
			}
			return nil, err
		}
		warnings = append(warnings, scalemath.CrossCheck(r, opts.Thresholds)...)
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: all %d rows were skipped", scaleproc.ErrEmptyDataset, rs.Len())
	}
	data := scalefmt.NewResultSet(rs.Name(), rows)

	groups, err := scaleproc.GroupByTest(data)
	if err != nil {
		return nil, err
	}
	extrema, err := scaleproc.FindExtrema(data)
	if err != nil {
		return nil, err
	}
	threads := scaleproc.ThreadDomain(data)

	return &Report{
		Source: rs.Name(),
		Digest: rs.Digest(),
		Overview: Overview{
			Tests:      len(groups),
			Rows:       data.Len(),
			MinThreads: threads[0],
			MaxThreads: threads[len(threads)-1],
		},
		Tests:           groups.Sorted(),
		Extrema:         extrema,
		Scalability:     scaleproc.AggregateByThreads(data),
		Recommendations: opts.Recommendations,
		Warnings:        warnings,
	}, nil
}

// Threads returns the distinct thread counts of the report, in
// ascending order.
func (r *Report) Threads() []int {
	threads := make([]int, len(r.Scalability))
	for i, agg := range r.Scalability {
		threads[i] = agg.Threads
	}
	return threads
}
