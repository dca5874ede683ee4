// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Scalestat analyzes the results of a thread-scaling experiment.
//
// Usage:
//
//	scalestat [flags]
//	scalestat report [flags]
//	scalestat charts [flags]
//	scalestat check [flags]
//
// Scalestat reads a CSV file of parallel benchmark results with the
// columns
//
//	Test,K,N,Threads,SeqTime_ms,ParTime_ms,Speedup,Efficiency
//
// one row per run of test Test with Threads worker threads, where K*N
// is the number of elements processed, SeqTime_ms is the sequential
// baseline of the test and ParTime_ms the parallel run time.
//
// Without a subcommand, scalestat draws the speedup, efficiency and
// time comparison charts and prints the analytical report. The report
// subcommand only prints the report, in the format selected by
// --format (text, json, yaml, csv or html). The charts subcommand only
// draws the charts. The check subcommand validates the input and
// exits with status 1 if any row is invalid or carries a speedup or
// efficiency that disagrees with its raw times by more than
// --tolerance.
//
// Settings may also come from scalestat.yaml in the current
// directory, from --config, from a .env file and from SCALESTAT_*
// environment variables, such as SCALESTAT_CHARTS_DIR.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

var exit = os.Exit // replaced during testing

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scalestat: %v\n", err)
		exit(1)
	}
}
