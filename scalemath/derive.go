// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalemath derives performance metrics from scaling
// measurements.
//
// Speedup and efficiency are carried in the input and are treated as
// authoritative. CrossCheck recomputes them from the raw times and
// reports disagreements as warnings, captured as []error values.
// These aren't errors that prevent analysis, but should be presented
// to the user along with analysis results.
package scalemath

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/scalestat/scalefmt"
)

// ErrInvalidMeasurement is matched by errors for rows whose values are
// not physically meaningful.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// ErrInconsistent is matched by warnings for rows whose carried
// metrics disagree with the recomputed ones.
var ErrInconsistent = errors.New("inconsistent metric")

// A DerivedRow is a Row plus the metrics derived from it.
type DerivedRow struct {
	scalefmt.Row

	// Throughput is the number of elements processed per
	// millisecond of parallel run time.
	Throughput float64
}

// An InvalidMeasurementError reports a row with a non-positive or
// non-finite field, or whose derived metrics are out of range.
type InvalidMeasurementError struct {
	Test    string
	Threads int
	Line    int
	Field   string
	Value   float64

	// Want describes the accepted values of Field. If empty, it
	// is "a positive value".
	Want string
}

func (e *InvalidMeasurementError) Error() string {
	var at string
	if e.Line > 0 {
		at = fmt.Sprintf(" (line %d)", e.Line)
	}
	want := e.Want
	if want == "" {
		want = "a positive value"
	}
	return fmt.Sprintf("test %s, threads=%d%s: invalid measurement: %s = %v, want %s", e.Test, e.Threads, at, e.Field, e.Value, want)
}

func (e *InvalidMeasurementError) Is(target error) bool {
	return target == ErrInvalidMeasurement
}

// Derive computes the derived metrics of r. It fails with an
// *InvalidMeasurementError if any of r's counts or times is not
// positive and finite, if K*N overflows an int64, or if the
// throughput or recomputed speedup is not finite.
func Derive(r scalefmt.Row) (DerivedRow, error) {
	invalid := func(field string, v float64) error {
		return &InvalidMeasurementError{Test: r.Test, Threads: r.Threads, Line: r.Line, Field: field, Value: v}
	}
	outOfRange := func(field string, v float64, want string) error {
		return &InvalidMeasurementError{Test: r.Test, Threads: r.Threads, Line: r.Line, Field: field, Value: v, Want: want}
	}
	for _, f := range []struct {
		name string
		v    int
	}{{"K", r.K}, {"N", r.N}, {"Threads", r.Threads}} {
		if f.v <= 0 {
			return DerivedRow{}, invalid(f.name, float64(f.v))
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"ParTime_ms", r.ParTime}, {"SeqTime_ms", r.SeqTime}, {"Speedup", r.Speedup}, {"Efficiency", r.Efficiency}} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return DerivedRow{}, invalid(f.name, f.v)
		}
	}
	if int64(r.K) > math.MaxInt64/int64(r.N) {
		return DerivedRow{}, outOfRange("K*N", float64(r.K)*float64(r.N), "at most 2^63-1 elements")
	}
	tput := float64(r.Elements()) / r.ParTime
	if math.IsInf(tput, 0) {
		return DerivedRow{}, outOfRange("throughput", tput, "a finite value (ParTime_ms too small)")
	}
	if s := Speedup(r); math.IsInf(s, 0) {
		return DerivedRow{}, outOfRange("recomputed speedup", s, "a finite value (ParTime_ms too small)")
	}
	return DerivedRow{Row: r, Throughput: tput}, nil
}

// Speedup returns the speedup recomputed from r's raw times.
func Speedup(r scalefmt.Row) float64 {
	return r.SeqTime / r.ParTime
}

// Efficiency returns the efficiency, in percent, recomputed from r's
// raw times.
func Efficiency(r scalefmt.Row) float64 {
	return 100 * Speedup(r) / float64(r.Threads)
}

// Mean returns the arithmetic mean of xs, or NaN if xs is empty.
// The values are summed in ascending order, so the result does not
// depend on the order of xs.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return stats.Mean(sorted)
}
