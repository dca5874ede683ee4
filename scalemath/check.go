// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalemath

import (
	"fmt"
	"math"

	"golang.org/x/scalestat/scalefmt"
)

// A Thresholds configures the tolerances used when cross-checking
// carried metrics.
//
// This should be initialized to DefaultThresholds because it may be
// extended with other fields in the future.
type Thresholds struct {
	// RelTolerance is the relative deviation between a carried and
	// a recomputed metric above which the row is flagged as
	// inconsistent.
	//
	// This is typically 0.01.
	RelTolerance float64
}

// DefaultThresholds contains a reasonable set of defaults for Thresholds.
var DefaultThresholds = Thresholds{
	RelTolerance: 0.01,
}

// An InconsistentError is a warning that a carried metric disagrees
// with the value recomputed from the row's raw times.
type InconsistentError struct {
	Test    string
	Threads int
	Line    int
	Field   string

	Carried, Recomputed float64
	Tolerance           float64
}

func (e *InconsistentError) Error() string {
	var at string
	if e.Line > 0 {
		at = fmt.Sprintf(" (line %d)", e.Line)
	}
	return fmt.Sprintf("test %s, threads=%d%s: %s %.4g differs from recomputed %.4g by %.2f%% (tolerance %g%%)",
		e.Test, e.Threads, at, e.Field, e.Carried, e.Recomputed, 100*RelDiff(e.Carried, e.Recomputed), 100*e.Tolerance)
}

func (e *InconsistentError) Is(target error) bool {
	return target == ErrInconsistent
}

// RelDiff returns the deviation of v from ref relative to ref. If ref
// is 0, it returns 0 if v is also 0 and +Inf otherwise.
func RelDiff(v, ref float64) float64 {
	if ref == 0 {
		if v == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(v-ref) / math.Abs(ref)
}

// CrossCheck recomputes the speedup and efficiency of r from its raw
// times and returns an *InconsistentError warning for each carried
// value that deviates from its recomputation by more than
// t.RelTolerance, or whose deviation is undefined. If t is nil, it uses DefaultThresholds.
//
// r should already have passed Derive.
func CrossCheck(r scalefmt.Row, t *Thresholds) []error {
	if t == nil {
		t = &DefaultThresholds
	}
	var warnings []error
	check := func(field string, carried, recomputed float64) {
		// A NaN deviation means the values cannot be compared.
		if d := RelDiff(carried, recomputed); d > t.RelTolerance || math.IsNaN(d) {
			warnings = append(warnings, &InconsistentError{
				Test: r.Test, Threads: r.Threads, Line: r.Line, Field: field,
				Carried: carried, Recomputed: recomputed, Tolerance: t.RelTolerance,
			})
		}
	}
	check("Speedup", r.Speedup, Speedup(r))
	check("Efficiency", r.Efficiency, Efficiency(r))
	return warnings
}
