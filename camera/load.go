/*
DESCRIPTION
  load.go provides reading of camera matrices from whitespace delimited
  text files.

AUTHORS
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see http://www.gnu.org/licenses.
*/

package camera

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ReadMatrixFile reads a 3x4 camera matrix from the named file.
func ReadMatrixFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open camera matrix file: %w", err)
	}
	defer f.Close()

	p, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return p, nil
}

// ReadMatrix reads a 3x4 camera matrix with one row per line and values
// separated by whitespace. Blank lines and lines starting with # are
// skipped.
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	var data []float64
	var rows, cols int

	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if rows == 0 {
			cols = len(fields)
		}
		if len(fields) != cols {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrShape, line, len(fields), cols)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("could not scan matrix: %w", err)
	}

	if rows != 3 || cols != 4 {
		return nil, fmt.Errorf("%w: read %dx%d matrix, want 3x4", ErrShape, rows, cols)
	}
	return mat.NewDense(rows, cols, data), nil
}
