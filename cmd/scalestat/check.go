// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"golang.org/x/scalestat/scalefmt"
	"golang.org/x/scalestat/scalemath"
	"golang.org/x/scalestat/scaleproc"
)

// check lists every problem in the input and fails if there is one.
// Unlike build, it keeps going past invalid rows.
func (a *app) check() error {
	rs, err := a.load()
	if err != nil {
		return err
	}
	t := &scalemath.Thresholds{RelTolerance: a.cfg.Tolerance}

	var findings []error
	valid := make([]scalefmt.Row, 0, rs.Len())
	for _, r := range rs.Rows() {
		if _, err := scalemath.Derive(r); err != nil {
			findings = append(findings, err)
			continue
		}
		findings = append(findings, scalemath.CrossCheck(r, t)...)
		valid = append(valid, r)
	}
	if _, err := scaleproc.GroupByTest(scalefmt.NewResultSet(rs.Name(), valid)); err != nil {
		findings = append(findings, err)
	}
	if rs.Len() == 0 {
		findings = append(findings, scaleproc.ErrEmptyDataset)
	}

	for _, f := range findings {
		fmt.Fprintf(a.stdout, "%s: %v\n", rs.Name(), f)
	}
	fmt.Fprintf(a.stdout, "%s: %d rows, %d findings\n", rs.Name(), rs.Len(), len(findings))
	if len(findings) > 0 {
		return fmt.Errorf("check failed with %d findings", len(findings))
	}
	return nil
}
