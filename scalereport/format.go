// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalereport

import (
	"fmt"
	"io"
	"slices"
)

// Formats are the output format names accepted by WriteFormat.
var Formats = []string{"text", "json", "yaml", "csv", "html"}

// ValidFormat reports whether name is one of Formats.
func ValidFormat(name string) bool {
	return slices.Contains(Formats, name)
}

// WriteFormat writes r to w in the named format.
func (r *Report) WriteFormat(w io.Writer, name string) error {
	switch name {
	case "text":
		return r.WriteText(w)
	case "json":
		return r.WriteJSON(w)
	case "yaml":
		return r.WriteYAML(w)
	case "csv":
		return r.WriteCSV(w)
	case "html":
		return r.WriteHTML(w)
	}
	return fmt.Errorf("unknown format %q (want one of %v)", name, Formats)
}
