/*
DESCRIPTION
  cylinder.go provides generation of synthetic test geometry.

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

// Package geometry provides synthetic world geometry for checking camera
// calibrations, and export of points and camera frusta as glTF scenes.
package geometry

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Cylinder dimensions.
const (
	cylinderRadius = 0.5
	cylinderHeight = 1.0
)

// ErrSegments is returned when a cylinder is requested with fewer than one
// segment.
var ErrSegments = errors.New("segments must be positive")

// CylinderPoints returns points on two rings of a cylinder of radius 0.5
// about the Z axis, at z = 0 and z = 1, with segments points per ring.
// Points are in columns, bottom ring first. The result is 4x(2*segments)
// with a row of ones if homogeneous, else 3x(2*segments).
func CylinderPoints(homogeneous bool, segments int) (*mat.Dense, error) {
	if segments <= 0 {
		return nil, ErrSegments
	}
	rows := 3
	if homogeneous {
		rows = 4
	}
	n := 2 * segments
	pts := mat.NewDense(rows, n, nil)
	for ring, z := range []float64{0, cylinderHeight} {
		for i := 0; i < segments; i++ {
			theta := 2 * math.Pi * float64(i) / float64(segments)
			j := ring*segments + i
			pts.Set(0, j, cylinderRadius*math.Cos(theta))
			pts.Set(1, j, cylinderRadius*math.Sin(theta))
			pts.Set(2, j, z)
			if homogeneous {
				pts.Set(3, j, 1)
			}
		}
	}
	return pts, nil
}
