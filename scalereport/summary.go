// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalereport

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/scalestat/scalemath"
	"gopkg.in/yaml.v3"
)

// A Summary is the machine-readable form of a Report, as written by
// WriteJSON and WriteYAML.
type Summary struct {
	Source          string          `json:"source" yaml:"source"`
	Digest          string          `json:"digest" yaml:"digest"`
	Overview        Overview        `json:"overview" yaml:"overview"`
	Tests           []TestSummary   `json:"tests" yaml:"tests"`
	Extrema         ExtremaSummary  `json:"extrema" yaml:"extrema"`
	Scalability     []ThreadSummary `json:"scalability" yaml:"scalability"`
	Recommendations []string        `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Warnings        []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// A TestSummary is one test of a Summary.
type TestSummary struct {
	Test      string       `json:"test" yaml:"test"`
	K         int          `json:"k" yaml:"k"`
	N         int          `json:"n" yaml:"n"`
	Elements  int64        `json:"elements" yaml:"elements"`
	SeqTimeMs float64      `json:"seq_time_ms" yaml:"seq_time_ms"`
	Runs      []RunSummary `json:"runs" yaml:"runs"`
}

// A RunSummary is one row of a Summary.
type RunSummary struct {
	Test       string  `json:"test" yaml:"test"`
	K          int     `json:"k" yaml:"k"`
	N          int     `json:"n" yaml:"n"`
	Threads    int     `json:"threads" yaml:"threads"`
	ParTimeMs  float64 `json:"par_time_ms" yaml:"par_time_ms"`
	Speedup    float64 `json:"speedup" yaml:"speedup"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
	Throughput float64 `json:"throughput" yaml:"throughput"`

	// RecomputedSpeedup and RecomputedEfficiency are derived from
	// the raw times, for comparison with the carried values.
	RecomputedSpeedup    float64 `json:"recomputed_speedup" yaml:"recomputed_speedup"`
	RecomputedEfficiency float64 `json:"recomputed_efficiency" yaml:"recomputed_efficiency"`
}

// An ExtremaSummary holds the best runs of a Summary.
type ExtremaSummary struct {
	Speedup    RunSummary `json:"max_speedup" yaml:"max_speedup"`
	Efficiency RunSummary `json:"max_efficiency" yaml:"max_efficiency"`
}

// A ThreadSummary is one thread count of a Summary's scalability
// section.
type ThreadSummary struct {
	Threads        int     `json:"threads" yaml:"threads"`
	Count          int     `json:"count" yaml:"count"`
	MeanEfficiency float64 `json:"mean_efficiency" yaml:"mean_efficiency"`
	MeanSpeedup    float64 `json:"mean_speedup" yaml:"mean_speedup"`
}

func runSummary(d scalemath.DerivedRow) RunSummary {
	return RunSummary{
		Test:                 d.Test,
		K:                    d.K,
		N:                    d.N,
		Threads:              d.Threads,
		ParTimeMs:            d.ParTime,
		Speedup:              d.Speedup,
		Efficiency:           d.Efficiency,
		Throughput:           d.Throughput,
		RecomputedSpeedup:    scalemath.Speedup(d.Row),
		RecomputedEfficiency: scalemath.Efficiency(d.Row),
	}
}

// Summary returns the machine-readable form of r.
func (r *Report) Summary() *Summary {
	s := &Summary{
		Source:   r.Source,
		Digest:   fmt.Sprintf("%016x", r.Digest),
		Overview: r.Overview,
		Tests:    make([]TestSummary, 0, len(r.Tests)),
		Extrema: ExtremaSummary{
			Speedup:    runSummary(r.Extrema.Speedup),
			Efficiency: runSummary(r.Extrema.Efficiency),
		},
		Scalability:     make([]ThreadSummary, 0, len(r.Scalability)),
		Recommendations: r.Recommendations,
	}
	for _, g := range r.Tests {
		ts := TestSummary{Test: g.Test, K: g.K, N: g.N, Elements: g.Elements(), SeqTimeMs: g.SeqTime}
		for _, d := range g.Rows {
			ts.Runs = append(ts.Runs, runSummary(d))
		}
		s.Tests = append(s.Tests, ts)
	}
	for _, agg := range r.Scalability {
		s.Scalability = append(s.Scalability, ThreadSummary(agg))
	}
	for _, w := range r.Warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	return s
}

// WriteJSON writes the Summary of r to w as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Summary())
}

// WriteYAML writes the Summary of r to w as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Summary()); err != nil {
		return err
	}
	return enc.Close()
}
