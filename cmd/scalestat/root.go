// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/scalestat/internal/config"
	"golang.org/x/scalestat/scalechart"
	"golang.org/x/scalestat/scalefmt"
	"golang.org/x/scalestat/scalemath"
	"golang.org/x/scalestat/scalereport"
	"gonum.org/v1/plot/vg"
)

// An app holds the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "scalestat",
		Short: "Analyze the results of a thread-scaling experiment",
		Long: `Scalestat reads parallel benchmark results from a CSV file, draws the
speedup, efficiency and time comparison charts, and prints an analytical
report with per-test tables, extrema and scalability across thread counts.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.build()
			if err != nil {
				return err
			}
			if a.cfg.Charts.Enabled {
				if _, err := a.render(cmd.Context(), r); err != nil {
					return err
				}
			}
			return a.report(r)
		},
	}

	fl := root.PersistentFlags()
	fl.StringVar(&a.cfgFile, "config", "", "read settings from `file` (default ./scalestat.yaml)")
	fl.StringP("input", "i", "results.csv", "read results from `file`")
	fl.StringP("format", "f", "text", "report `format`: text, json, yaml, csv or html")
	fl.Float64("tolerance", 0.01, "relative `tolerance` for carried speedup and efficiency")
	fl.Bool("skip-invalid", false, "skip invalid rows instead of failing")
	fl.Bool("charts", true, "draw charts")
	fl.String("chart-dir", ".", "write charts to `dir`")
	fl.Int("dpi", 150, "chart resolution in dots per inch")
	fl.String("prometheus-textfile", "", "also write metrics to `file` in Prometheus text format")
	fl.String("log-level", "info", "log `level`: debug, info, warn or error")
	for key, flag := range map[string]string{
		"input":               "input",
		"format":              "format",
		"tolerance":           "tolerance",
		"skip_invalid":        "skip-invalid",
		"charts.enabled":      "charts",
		"charts.dir":          "chart-dir",
		"charts.dpi":          "dpi",
		"prometheus.textfile": "prometheus-textfile",
		"log.level":           "log-level",
	} {
		if err := a.v.BindPFlag(key, fl.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "report",
			Short: "Print the analytical report",
			Long:  `The report command prints the analytical report in the selected format without drawing charts.`,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.build()
				if err != nil {
					return err
				}
				return a.report(r)
			},
		},
		&cobra.Command{
			Use:   "charts",
			Short: "Draw the speedup, efficiency and time comparison charts",
			Long:  `The charts command draws the charts as PNG files and prints the path of each.`,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.build()
				if err != nil {
					return err
				}
				arts, err := a.render(cmd.Context(), r)
				if err != nil {
					return err
				}
				for _, name := range []string{scalechart.Speedup, scalechart.Efficiency, scalechart.TimeComparison} {
					fmt.Fprintf(a.stdout, "%s: %s\n", name, arts[name])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Validate the results",
			Long: `The check command validates the results and lists every finding: invalid
rows, groups with inconsistent parameters, duplicate thread counts, and
carried metrics that disagree with the raw times. It fails if there are any.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.check()
			},
		},
	)
	return root
}

// setup loads the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.log.Debug("loaded config", "input", cfg.Input, "format", cfg.Format, "config", a.v.ConfigFileUsed())
	return nil
}

func (a *app) load() (*scalefmt.ResultSet, error) {
	start := time.Now()
	rs, err := scalefmt.CSVLoader{Path: a.cfg.Input}.Load()
	if errors.Is(err, scalefmt.ErrDatasetNotFound) {
		return nil, fmt.Errorf("%w: %s (run the benchmark first to produce it)", scalefmt.ErrDatasetNotFound, a.cfg.Input)
	}
	if err != nil {
		return nil, err
	}
	a.log.Info("loaded results", "input", a.cfg.Input, "rows", rs.Len(), "elapsed", time.Since(start))
	return rs, nil
}

func (a *app) options() scalereport.Options {
	opts := scalereport.DefaultOptions()
	opts.Thresholds = &scalemath.Thresholds{RelTolerance: a.cfg.Tolerance}
	opts.SkipInvalid = a.cfg.SkipInvalid
	return opts
}

// build loads the results and builds the report, logging its warnings.
func (a *app) build() (*scalereport.Report, error) {
	rs, err := a.load()
	if err != nil {
		return nil, err
	}
	r, err := scalereport.Build(rs, a.options())
	if err != nil {
		return nil, err
	}
	for _, w := range r.Warnings {
		a.log.Warn(w.Error())
	}
	return r, nil
}

func (a *app) report(r *scalereport.Report) error {
	if err := r.WriteFormat(a.stdout, a.cfg.Format); err != nil {
		return err
	}
	if path := a.cfg.Prometheus.Textfile; path != "" {
		if err := r.WritePrometheus(path); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		a.log.Info("wrote metrics", "path", path)
	}
	return nil
}

func (a *app) renderer() scalechart.Renderer {
	c := a.cfg.Charts
	return &scalechart.PlotRenderer{
		Dir:    c.Dir,
		DPI:    c.DPI,
		Width:  vg.Length(c.WidthCM) * vg.Centimeter,
		Height: vg.Length(c.HeightCM) * vg.Centimeter,
		Logger: a.log,
	}
}

func (a *app) render(ctx context.Context, r *scalereport.Report) (scalechart.Artifacts, error) {
	return a.renderer().Render(ctx, r.Tests, r.Threads())
}
