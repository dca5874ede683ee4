// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalechart

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/scalestat/scalefmt"
	"golang.org/x/scalestat/scaleproc"
	"gonum.org/v1/plot/vg"
)

func groups(t *testing.T) ([]*scaleproc.GroupSummary, []int) {
	t.Helper()
	rows := []scalefmt.Row{
		{Test: "T1", K: 2, N: 1000000, Threads: 1, SeqTime: 500, ParTime: 500, Speedup: 1, Efficiency: 100},
		{Test: "T1", K: 2, N: 1000000, Threads: 4, SeqTime: 500, ParTime: 140, Speedup: 3.57, Efficiency: 89.3},
		{Test: "T2", K: 1, N: 5000000, Threads: 1, SeqTime: 300, ParTime: 300, Speedup: 1, Efficiency: 100},
		{Test: "T2", K: 1, N: 5000000, Threads: 8, SeqTime: 300, ParTime: 48, Speedup: 6.25, Efficiency: 78.1},
	}
	rs := scalefmt.NewResultSet("charts", rows)
	gs, err := scaleproc.GroupByTest(rs)
	if err != nil {
		t.Fatal(err)
	}
	return gs.Sorted(), scaleproc.ThreadDomain(rs)
}

func TestRender(t *testing.T) {
	gs, threads := groups(t)
	dir := filepath.Join(t.TempDir(), "charts")
	var logs bytes.Buffer
	r := &PlotRenderer{
		Dir:    dir,
		DPI:    50,
		Width:  10 * vg.Centimeter,
		Height: 6 * vg.Centimeter,
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	}
	arts, err := r.Render(context.Background(), gs, threads)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{Speedup, Efficiency, TimeComparison} {
		path, ok := arts[name]
		if !ok {
			t.Errorf("no %s artifact", name)
			continue
		}
		if want := filepath.Join(dir, name+".png"); path != want {
			t.Errorf("%s written to %s, want %s", name, path, want)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Error(err)
			continue
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if cfg.Width == 0 || cfg.Height == 0 {
			t.Errorf("%s: empty image", name)
		}
		if !strings.Contains(logs.String(), "chart="+name) {
			t.Errorf("no log message for %s:\n%s", name, logs.String())
		}
	}
	if len(arts) != 3 {
		t.Errorf("got %d artifacts, want 3", len(arts))
	}
}

func TestRenderEmpty(t *testing.T) {
	r := &PlotRenderer{Dir: t.TempDir()}
	if _, err := r.Render(context.Background(), nil, nil); !errors.Is(err, scaleproc.ErrEmptyDataset) {
		t.Errorf("want empty dataset, got %v", err)
	}
}

func TestRenderCanceled(t *testing.T) {
	gs, threads := groups(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &PlotRenderer{Dir: t.TempDir(), DPI: 30}
	if _, err := r.Render(ctx, gs, threads); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
