// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalefmt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrDatasetNotFound is returned (wrapped) by loaders whose input does
// not exist. Such errors also match fs.ErrNotExist.
var ErrDatasetNotFound = errors.New("dataset not found")

// A Loader produces a ResultSet from some source.
type Loader interface {
	Load() (*ResultSet, error)
}

// A CSVLoader loads a ResultSet from a CSV file on disk.
type CSVLoader struct {
	Path string
}

// Load reads and parses the file at l.Path.
func (l CSVLoader) Load() (*ResultSet, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrDatasetNotFound, err)
		}
		return nil, err
	}
	defer f.Close()
	return NewReader(f, l.Path).ReadAll()
}
