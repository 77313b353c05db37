/*
DESCRIPTION
  results.go provides a results type holding the pixel coordinates of
  points projected through both pipelines.

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

// Package calibration checks a camera calibration by projecting synthetic
// world points through the calibration itself and through the equivalent
// OpenGL pipeline, reporting the disagreement and rendering both over a
// reference image.
package calibration

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Results holds the pixel coordinates of checked points. U and V are from
// the calibration and GLU and GLV from the OpenGL pipeline.
type Results struct {
	U, V, GLU, GLV, Residual []float64
}

// NewResults returns a new Results with capacity for l points.
func NewResults(l int) *Results {
	return &Results{
		U:        make([]float64, 0, l),
		V:        make([]float64, 0, l),
		GLU:      make([]float64, 0, l),
		GLV:      make([]float64, 0, l),
		Residual: make([]float64, 0, l),
	}
}

// Add adds a point to the Results.
func (r *Results) Add(u, v, glu, glv float64) {
	r.U = append(r.U, u)
	r.V = append(r.V, v)
	r.GLU = append(r.GLU, glu)
	r.GLV = append(r.GLV, glv)
	r.Residual = append(r.Residual, math.Hypot(glu-u, glv-v))
}

// Len returns the number of points.
func (r *Results) Len() int { return len(r.Residual) }

// MeanResidual returns the mean pixel distance between the pipelines.
func (r *Results) MeanResidual() float64 {
	if r.Len() == 0 {
		return 0
	}
	return stat.Mean(r.Residual, nil)
}

// MaxResidual returns the largest pixel distance between the pipelines.
func (r *Results) MaxResidual() float64 {
	if r.Len() == 0 {
		return 0
	}
	return floats.Max(r.Residual)
}
