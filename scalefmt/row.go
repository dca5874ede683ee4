// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalefmt reads and writes the tabular format produced by
// parallel scaling experiments.
//
// A scaling experiment runs the same workload (a "test", identified
// by its K×N element count) sequentially once and then in parallel
// with a series of thread counts. Each line of the result table
// records one parallel run:
//
//	Test,K,N,TotalElements,Threads,SeqTime_ms,ParTime_ms,Speedup,Efficiency
//	Test1,2,1000000,2000000,4,500.00,140.00,3.571,89.29
//
// Columns may appear in any order and unknown columns (such as
// TotalElements) are ignored. The required columns are listed in
// Columns.
package scalefmt

import (
	"bytes"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// A Row is a single measurement: one parallel run of one test at one
// thread count.
type Row struct {
	// Test identifies the workload configuration. All rows with
	// the same Test share K, N and SeqTime.
	Test string

	// K and N give the shape of the workload. K*N is the total
	// number of elements processed.
	K, N int

	// Threads is the number of parallel workers used for this run.
	Threads int

	// SeqTime and ParTime are the sequential baseline and the
	// parallel run time, in milliseconds.
	SeqTime, ParTime float64

	// Speedup and Efficiency are carried from the input. Speedup is
	// expected to be SeqTime/ParTime and Efficiency
	// 100*Speedup/Threads, in percent.
	Speedup, Efficiency float64

	// Line is the 1-based line of the input this row was read
	// from, or 0 if the row was constructed in memory.
	Line int
}

// Elements returns the total number of elements processed by r's
// workload.
func (r Row) Elements() int64 {
	return int64(r.K) * int64(r.N)
}

// A ResultSet is an ordered, read-only collection of Rows, in the
// order they were loaded.
type ResultSet struct {
	name string
	rows []Row
}

// NewResultSet returns a ResultSet holding a copy of rows. name
// describes where the rows came from and is purely diagnostic.
func NewResultSet(name string, rows []Row) *ResultSet {
	return &ResultSet{name: name, rows: slices.Clone(rows)}
}

// Name returns the diagnostic name of the result set, typically the
// input file name.
func (s *ResultSet) Name() string {
	return s.name
}

// Len returns the number of rows in s.
func (s *ResultSet) Len() int {
	return len(s.rows)
}

// Row returns the i'th row of s in load order.
func (s *ResultSet) Row(i int) Row {
	return s.rows[i]
}

// Rows returns a copy of the rows of s in load order.
func (s *ResultSet) Rows() []Row {
	return slices.Clone(s.rows)
}

// Digest returns a fingerprint of the rows of s. Two result sets with
// the same rows in the same order have the same digest regardless of
// how their input was formatted.
func (s *ResultSet) Digest() uint64 {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, r := range s.rows {
		// Writes to a bytes.Buffer can't fail.
		w.Write(r)
	}
	w.Flush()
	return xxhash.Sum64(buf.Bytes())
}
