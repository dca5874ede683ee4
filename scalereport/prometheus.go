// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalereport

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/scalestat/scalemath"
)

const metricNamespace = "scalestat"

// Registry returns a registry holding the metrics of r as gauges.
// Per-run gauges are labeled by test and thread count.
func (r *Report) Registry() (*prometheus.Registry, error) {
	runLabels := []string{"test", "threads"}
	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      name,
			Help:      help,
		}, labels)
	}
	speedup := gauge("speedup_ratio", "Carried speedup of a run.", runLabels...)
	efficiency := gauge("efficiency_percent", "Carried parallel efficiency of a run.", runLabels...)
	throughput := gauge("throughput_elements_per_ms", "Elements processed per millisecond of parallel time.", runLabels...)
	parTime := gauge("parallel_time_milliseconds", "Parallel run time.", runLabels...)
	seqTime := gauge("sequential_time_milliseconds", "Sequential baseline time of a test.", "test")
	meanEff := gauge("mean_efficiency_percent", "Mean efficiency across tests at a thread count.", "threads")
	meanSpeedup := gauge("mean_speedup_ratio", "Mean speedup across tests at a thread count.", "threads")
	inconsistencies := gauge("inconsistencies", "Carried metrics that disagree with the raw times.", "test")

	reg := prometheus.NewPedanticRegistry()
	for _, c := range []prometheus.Collector{speedup, efficiency, throughput, parTime, seqTime, meanEff, meanSpeedup, inconsistencies} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	for _, g := range r.Tests {
		seqTime.WithLabelValues(g.Test).Set(g.SeqTime)
		inconsistencies.WithLabelValues(g.Test).Set(0)
		for _, d := range g.Rows {
			threads := strconv.Itoa(d.Threads)
			speedup.WithLabelValues(d.Test, threads).Set(d.Speedup)
			efficiency.WithLabelValues(d.Test, threads).Set(d.Efficiency)
			throughput.WithLabelValues(d.Test, threads).Set(d.Throughput)
			parTime.WithLabelValues(d.Test, threads).Set(d.ParTime)
		}
	}
	for _, agg := range r.Scalability {
		threads := strconv.Itoa(agg.Threads)
		meanEff.WithLabelValues(threads).Set(agg.MeanEfficiency)
		meanSpeedup.WithLabelValues(threads).Set(agg.MeanSpeedup)
	}
	for _, w := range r.Warnings {
		var ierr *scalemath.InconsistentError
		if errors.As(w, &ierr) {
			inconsistencies.WithLabelValues(ierr.Test).Inc()
		}
	}
	return reg, nil
}

// WritePrometheus writes the metrics of r to path in the Prometheus
// text exposition format, for pickup by the node exporter's textfile
// collector. The file is replaced atomically.
func (r *Report) WritePrometheus(path string) error {
	reg, err := r.Registry()
	if err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
