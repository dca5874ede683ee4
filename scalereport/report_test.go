// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalereport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/scalestat/scalefmt"
	"golang.org/x/scalestat/scalemath"
	"golang.org/x/scalestat/scaleproc"
	"gopkg.in/yaml.v3"
)

func mk(test string, k, n, threads int, seq, par, speedup, eff float64) scalefmt.Row {
	return scalefmt.Row{Test: test, K: k, N: n, Threads: threads, SeqTime: seq, ParTime: par, Speedup: speedup, Efficiency: eff}
}

var twoRuns = []scalefmt.Row{
	mk("T1", 2, 1000000, 1, 500, 500, 1.0, 100.0),
	mk("T1", 2, 1000000, 4, 500, 140, 3.57, 89.3),
}

var twoTests = []scalefmt.Row{
	mk("T2", 1, 5000000, 4, 300, 80, 3.75, 93.75),
	mk("T1", 2, 1000000, 1, 500, 500, 1.0, 100.0),
	mk("T1", 2, 1000000, 4, 500, 140, 3.57, 89.3),
	mk("T2", 1, 5000000, 1, 300, 300, 1.0, 100.0),
}

func build(t *testing.T, rows []scalefmt.Row, opts Options) *Report {
	t.Helper()
	r, err := Build(scalefmt.NewResultSet("results.csv", rows), opts)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// findLine reports whether some line of text splits into fields.
func findLine(text string, fields ...string) bool {
	for _, line := range strings.Split(text, "\n") {
		if slices.Equal(strings.Fields(line), fields) {
			return true
		}
	}
	return false
}

func TestBuild(t *testing.T) {
	r := build(t, twoRuns, DefaultOptions())

	want := Overview{Tests: 1, Rows: 2, MinThreads: 1, MaxThreads: 4}
	if diff := cmp.Diff(want, r.Overview); diff != "" {
		t.Errorf("overview (-want +got):\n%s", diff)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
	if r.Extrema.Speedup.Threads != 4 {
		t.Errorf("max speedup at threads=%d, want 4", r.Extrema.Speedup.Threads)
	}
	if r.Extrema.Efficiency.Threads != 1 {
		t.Errorf("max efficiency at threads=%d, want 1", r.Extrema.Efficiency.Threads)
	}
	if diff := cmp.Diff([]int{1, 4}, r.Threads()); diff != "" {
		t.Errorf("threads (-want +got):\n%s", diff)
	}

	text := r.Text()
	for _, fields := range [][]string{
		{"TEST", "T1:", "K=2,", "N=1,000,000", "(2,000,000", "elements)"},
		{"Sequential", "version:", "500.00", "ms"},
		{"Threads", "|", "Time(ms)", "|", "Speedup", "|", "Efficiency", "|", "Elements/ms"},
		{"1", "|", "500.00", "|", "1.00", "|", "100.0%", "|", "4000"},
		{"4", "|", "140.00", "|", "3.57", "|", "89.3%", "|", "14286"},
		{"1.", "MAXIMUM", "SPEEDUP:", "3.57x"},
		{"Achieved", "by", "test", "T1:", "K=2,", "N=1,000,000,", "4", "threads"},
		{"2.", "MAXIMUM", "EFFICIENCY:", "100.0%"},
		{"Achieved", "by", "test", "T1:", "K=2,", "N=1,000,000,", "1", "thread"},
		{"4", "threads:", "mean", "efficiency", "89.3%,", "mean", "speedup", "3.57x"},
		{"-", "For", "maximum", "efficiency,", "use", "2-8", "threads."},
	} {
		if !findLine(text, fields...) {
			t.Errorf("report is missing line %q:\n%s", strings.Join(fields, " "), text)
		}
	}
	if strings.Contains(text, "WARNINGS") {
		t.Errorf("report has a warnings section:\n%s", text)
	}
}

func TestBuildEmpty(t *testing.T) {
	r, err := Build(scalefmt.NewResultSet("empty", nil), DefaultOptions())
	if !errors.Is(err, scaleproc.ErrEmptyDataset) {
		t.Errorf("want empty dataset, got %v", err)
	}
	if r != nil {
		t.Errorf("got a report for empty input")
	}
}

func TestBuildScalability(t *testing.T) {
	r := build(t, twoTests, DefaultOptions())
	if len(r.Scalability) != 2 {
		t.Fatalf("got %d thread counts, want 2", len(r.Scalability))
	}
	agg := r.Scalability[1]
	if agg.Threads != 4 || agg.Count != 2 {
		t.Errorf("got %+v", agg)
	}
	// Unweighted, even though T2 processes more than twice the
	// elements of T1.
	if want := (93.75 + 89.3) / 2; agg.MeanEfficiency != want {
		t.Errorf("mean efficiency %v, want %v", agg.MeanEfficiency, want)
	}
	if got := []string{r.Tests[0].Test, r.Tests[1].Test}; !slices.Equal(got, []string{"T1", "T2"}) {
		t.Errorf("tests in order %v", got)
	}
	// Both single-thread runs have 100% efficiency; the first loaded wins.
	if r.Extrema.Speedup.Test != "T2" || r.Extrema.Efficiency.Test != "T1" || r.Extrema.Efficiency.Threads != 1 {
		t.Errorf("extrema %+v", r.Extrema)
	}
}

func TestBuildWarnings(t *testing.T) {
	rows := slices.Clone(twoRuns)
	rows[1].Speedup = 5.0
	rows[1].Line = 3
	r := build(t, rows, DefaultOptions())
	if len(r.Warnings) != 1 || !errors.Is(r.Warnings[0], scalemath.ErrInconsistent) {
		t.Fatalf("got warnings %v", r.Warnings)
	}
	text := r.Text()
	if !strings.Contains(text, "WARNINGS (1):") {
		t.Errorf("report is missing warnings:\n%s", text)
	}
	// Carried values stay authoritative.
	if r.Extrema.Speedup.Speedup != 5.0 {
		t.Errorf("max speedup %v, want carried 5.0", r.Extrema.Speedup.Speedup)
	}
}

func TestBuildInvalid(t *testing.T) {
	rows := append(slices.Clone(twoRuns), mk("T1", 2, 1000000, 8, 500, 0, 6.25, 78.1))

	_, err := Build(scalefmt.NewResultSet("bad", rows), DefaultOptions())
	if !errors.Is(err, scalemath.ErrInvalidMeasurement) {
		t.Errorf("want invalid measurement, got %v", err)
	}

	opts := DefaultOptions()
	opts.SkipInvalid = true
	r := build(t, rows, opts)
	if r.Overview.Rows != 2 {
		t.Errorf("kept %d rows, want 2", r.Overview.Rows)
	}
	if len(r.Warnings) != 1 || !strings.HasPrefix(r.Warnings[0].Error(), "skipped row: ") {
		t.Errorf("got warnings %v", r.Warnings)
	}

	_, err = Build(scalefmt.NewResultSet("bad", rows[2:]), opts)
	if !errors.Is(err, scaleproc.ErrEmptyDataset) {
		t.Errorf("all rows skipped: want empty dataset, got %v", err)
	}
}

func TestBuildNonFinite(t *testing.T) {
	// A subnormal parallel time makes the throughput overflow.
	rows := append(slices.Clone(twoRuns), mk("T1", 2, 1000000, 8, 500, 1e-320, 6.25, 78.1))
	_, err := Build(scalefmt.NewResultSet("tiny", rows), DefaultOptions())
	if !errors.Is(err, scalemath.ErrInvalidMeasurement) {
		t.Fatalf("want invalid measurement, got %v", err)
	}

	opts := DefaultOptions()
	opts.SkipInvalid = true
	r := build(t, rows, opts)
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Errorf("WriteJSON: %v", err)
	}
}

func TestBuildDuplicate(t *testing.T) {
	rows := append(slices.Clone(twoRuns), mk("T1", 2, 1000000, 4, 500, 150, 3.33, 83.3))
	_, err := Build(scalefmt.NewResultSet("dup", rows), DefaultOptions())
	if !errors.Is(err, scaleproc.ErrDuplicateThreadCount) {
		t.Errorf("want duplicate thread count, got %v", err)
	}
}

func TestDeterministic(t *testing.T) {
	a := build(t, twoTests, DefaultOptions())
	b := build(t, twoTests, DefaultOptions())
	for _, format := range Formats {
		var bufA, bufB bytes.Buffer
		if err := a.WriteFormat(&bufA, format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if err := b.WriteFormat(&bufB, format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if bufA.String() != bufB.String() {
			t.Errorf("%s output differs between runs", format)
		}
	}

	// Without ties, row order does not affect the text report.
	a = build(t, twoRuns, DefaultOptions())
	rev := slices.Clone(twoRuns)
	slices.Reverse(rev)
	if c := build(t, rev, DefaultOptions()); c.Text() != a.Text() {
		t.Errorf("text report depends on row order:\n%s\nvs\n%s", a.Text(), c.Text())
	}
}

func TestWriteFormatUnknown(t *testing.T) {
	r := build(t, twoRuns, DefaultOptions())
	if err := r.WriteFormat(new(bytes.Buffer), "xml"); err == nil {
		t.Errorf("want error for unknown format")
	}
	if ValidFormat("xml") || !ValidFormat("yaml") {
		t.Errorf("ValidFormat is wrong")
	}
}

func TestReportSummary(t *testing.T) {
	rows := slices.Clone(twoRuns)
	rows[1].Speedup = 5.0
	r := build(t, rows, DefaultOptions())

	check := func(format string, s *Summary) {
		t.Helper()
		if s.Source != "results.csv" || len(s.Digest) != 16 {
			t.Errorf("%s: source %q digest %q", format, s.Source, s.Digest)
		}
		if len(s.Tests) != 1 || len(s.Tests[0].Runs) != 2 || s.Tests[0].Elements != 2000000 {
			t.Fatalf("%s: tests %+v", format, s.Tests)
		}
		run := s.Tests[0].Runs[1]
		if run.Threads != 4 || run.Speedup != 5.0 || run.RecomputedSpeedup != 500.0/140 {
			t.Errorf("%s: run %+v", format, run)
		}
		if s.Extrema.Speedup.Threads != 4 || s.Extrema.Efficiency.Threads != 1 {
			t.Errorf("%s: extrema %+v", format, s.Extrema)
		}
		if len(s.Warnings) != 1 || !strings.Contains(s.Warnings[0], "Speedup") {
			t.Errorf("%s: warnings %q", format, s.Warnings)
		}
		if len(s.Recommendations) != len(DefaultRecommendations) {
			t.Errorf("%s: recommendations %q", format, s.Recommendations)
		}
	}

	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var js Summary
	if err := json.Unmarshal(buf.Bytes(), &js); err != nil {
		t.Fatal(err)
	}
	check("json", &js)

	buf.Reset()
	if err := r.WriteYAML(&buf); err != nil {
		t.Fatal(err)
	}
	var ys Summary
	if err := yaml.Unmarshal(buf.Bytes(), &ys); err != nil {
		t.Fatal(err)
	}
	check("yaml", &ys)

	if diff := cmp.Diff(js, ys); diff != "" {
		t.Errorf("json and yaml summaries differ (-json +yaml):\n%s", diff)
	}
}

func TestWriteCSV(t *testing.T) {
	r := build(t, twoTests, DefaultOptions())
	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DerivedColumns, recs[0]); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	if len(recs) != 5 {
		t.Fatalf("got %d records, want 5", len(recs))
	}
	want := []string{"T1", "2", "1000000", "2000000", "1", "500", "500", "1", "100", "4000", "1", "100"}
	if diff := cmp.Diff(want, recs[1]); diff != "" {
		t.Errorf("first row (-want +got):\n%s", diff)
	}
	if got := recs[4][0] + "/" + recs[4][4]; got != "T2/4" {
		t.Errorf("last row is %s, want T2/4", got)
	}
}

func TestWriteHTML(t *testing.T) {
	rows := slices.Clone(twoRuns)
	for i := range rows {
		rows[i].Test = "<b>T1</b>"
	}
	r := build(t, rows, DefaultOptions())
	var buf bytes.Buffer
	if err := r.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, want := range []string{
		"<td>4<td>140.00<td>3.57<td>89.3%<td>14286",
		"Test &lt;b&gt;T1&lt;/b&gt;: K=2, N=1,000,000 (2,000,000 elements)",
		"Maximum speedup: 3.57x",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML is missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<b>T1") {
		t.Errorf("test name was not escaped")
	}
}

func TestWritePrometheus(t *testing.T) {
	rows := slices.Clone(twoTests)
	rows[2].Speedup = 5.0
	r := build(t, rows, DefaultOptions())

	path := filepath.Join(t.TempDir(), "scalestat.prom")
	if err := r.WritePrometheus(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		`scalestat_speedup_ratio{test="T1",threads="4"} 5`,
		`scalestat_efficiency_percent{test="T2",threads="4"} 93.75`,
		`scalestat_sequential_time_milliseconds{test="T1"} 500`,
		`scalestat_mean_speedup_ratio{threads="1"} 1`,
		`scalestat_inconsistencies{test="T1"} 1`,
		`scalestat_inconsistencies{test="T2"} 0`,
		`# TYPE scalestat_throughput_elements_per_ms gauge`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics are missing %q:\n%s", want, text)
		}
	}
}
