// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalereport

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/scalestat/internal/texttab"
)

const (
	ruleWidth = 70
	title     = "ANALYTICAL REPORT"
)

var (
	doubleRule = strings.Repeat("=", ruleWidth)
	singleRule = strings.Repeat("-", ruleWidth-5)
)

// Text returns the plain text form of the report.
func (r *Report) Text() string {
	var buf bytes.Buffer
	r.formatText(&buf)
	return buf.String()
}

// WriteText writes the plain text form of the report to w.
func (r *Report) WriteText(w io.Writer) error {
	var buf bytes.Buffer
	r.formatText(&buf)
	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Report) formatText(buf *bytes.Buffer) {
	// Header.
	fmt.Fprintf(buf, "%s\n%*s\n%s\n", doubleRule, (ruleWidth+len(title))/2, title, doubleRule)
	fmt.Fprintf(buf, "\nOVERALL STATISTICS:\n")
	var tab texttab.Table
	tab.Row().Cell("Tests:").Cell(fmt.Sprint(r.Overview.Tests))
	tab.Row().Cell("Measurements:").Cell(fmt.Sprint(r.Overview.Rows))
	tab.Row().Cell("Thread range:").Cell(fmt.Sprintf("%d to %d", r.Overview.MinThreads, r.Overview.MaxThreads))
	tab.Format(buf)
	if len(r.Warnings) > 0 {
		fmt.Fprintf(buf, "\nWARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(buf, "  - %s\n", w)
		}
	}

	// Per-test results.
	fmt.Fprintf(buf, "\n%s\nRESULTS BY TEST:\n", doubleRule)
	for _, g := range r.Tests {
		fmt.Fprintf(buf, "\nTEST %s: K=%d, N=%s (%s elements)\n", g.Test, g.K, humanize.Comma(int64(g.N)), humanize.Comma(g.Elements()))
		fmt.Fprintf(buf, "%s\n", singleRule)
		fmt.Fprintf(buf, "Sequential version: %.2f ms\n", g.SeqTime)
		fmt.Fprintf(buf, "\nParallel versions:\n")

		var tab texttab.Table
		sep := texttab.LeftMargin(" | ")
		tab.Row().
			Cell("Threads", texttab.Right).
			Cell("Time(ms)", texttab.Right, sep).
			Cell("Speedup", texttab.Right, sep).
			Cell("Efficiency", texttab.Right, sep).
			Cell("Elements/ms", texttab.Right, sep)
		for _, d := range g.Rows {
			tab.Row().
				Cell(fmt.Sprint(d.Threads), texttab.Right).
				Cell(fmtTime(d.ParTime), texttab.Right, sep).
				Cell(fmtSpeedup(d.Speedup), texttab.Right, sep).
				Cell(fmtEfficiency(d.Efficiency)+"%", texttab.Right, sep).
				Cell(fmtThroughput(d.Throughput), texttab.Right, sep)
		}
		tab.Format(buf)
	}

	// Extrema.
	fmt.Fprintf(buf, "\n%s\nCONCLUSIONS AND ANALYSIS:\n", doubleRule)
	best := r.Extrema.Speedup
	fmt.Fprintf(buf, "\n1. MAXIMUM SPEEDUP: %sx\n", fmtSpeedup(best.Speedup))
	fmt.Fprintf(buf, "   Achieved by test %s: K=%d, N=%s, %s\n", best.Test, best.K, humanize.Comma(int64(best.N)), plural(best.Threads, "thread"))
	fmt.Fprintf(buf, "   Efficiency: %s%%\n", fmtEfficiency(best.Efficiency))

	best = r.Extrema.Efficiency
	fmt.Fprintf(buf, "\n2. MAXIMUM EFFICIENCY: %s%%\n", fmtEfficiency(best.Efficiency))
	fmt.Fprintf(buf, "   Achieved by test %s: K=%d, N=%s, %s\n", best.Test, best.K, humanize.Comma(int64(best.N)), plural(best.Threads, "thread"))
	fmt.Fprintf(buf, "   Speedup: %sx\n", fmtSpeedup(best.Speedup))

	// Scalability.
	fmt.Fprintf(buf, "\n3. SCALABILITY ANALYSIS:\n")
	tab = texttab.Table{Indent: "   "}
	for _, agg := range r.Scalability {
		tab.Row().
			Cell(fmt.Sprint(agg.Threads), texttab.Right).
			Cell(noun(agg.Threads, "thread")+":").
			Cell("mean efficiency").
			Cell(fmtEfficiency(agg.MeanEfficiency)+"%", texttab.Right).
			Cell("mean speedup", texttab.LeftMargin(", ")).
			Cell(fmtSpeedup(agg.MeanSpeedup)+"x", texttab.Right)
	}
	tab.Format(buf)

	// Recommendations.
	if len(r.Recommendations) > 0 {
		fmt.Fprintf(buf, "\n4. RECOMMENDATIONS:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(buf, "   - %s\n", rec)
		}
	}
}

func fmtTime(ms float64) string        { return fmt.Sprintf("%.2f", ms) }
func fmtSpeedup(s float64) string       { return fmt.Sprintf("%.2f", s) }
func fmtEfficiency(pct float64) string  { return fmt.Sprintf("%.1f", pct) }
func fmtThroughput(tput float64) string { return fmt.Sprintf("%.0f", tput) }

// plural returns "n word", with word pluralized if n != 1.
func plural(n int, word string) string {
	return fmt.Sprintf("%d %s", n, noun(n, word))
}

func noun(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
