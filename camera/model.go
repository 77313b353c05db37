/*
DESCRIPTION
  model.go provides camera model helpers for rendering: back projection of
  pixels to rays and recovery of the view frustum from a projection matrix.

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
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// PixelRay returns the point at the given distance from the camera along
// the ray through pixel (u, v), in OpenGL eye coordinates. Skew and lens
// distortion are ignored.
func PixelRay(k mat.Matrix, u, v, distance float64) r3.Vector {
	x := (u - k.At(0, 2)) / k.At(0, 0)
	y := (v - k.At(1, 2)) / k.At(1, 1)

	// -1 because OpenGL cameras look along -Z.
	ray := r3.Vector{X: x, Y: y, Z: -1}
	return ray.Normalize().Mul(distance)
}

// Frustum returns the vertices of the view volume of the OpenGL projection
// matrix proj, in OpenGL eye coordinates: the origin followed by the
// bottom-left, bottom-right, top-right and top-left corners of the near
// plane and then of the far plane.
func Frustum(proj mat.Matrix) ([9]r3.Vector, error) {
	var v [9]r3.Vector
	if r, c := proj.Dims(); r != 4 || c != 4 {
		return v, fmt.Errorf("%w: projection matrix is %dx%d, want 4x4", ErrShape, r, c)
	}
	p00, p02 := proj.At(0, 0), proj.At(0, 2)
	p11, p12 := proj.At(1, 1), proj.At(1, 2)
	p22, p23 := proj.At(2, 2), proj.At(2, 3)
	if p00 == 0 || p11 == 0 || p22 == 1 || p22 == -1 {
		return v, fmt.Errorf("%w: projection matrix has no perspective frustum", ErrDegenerate)
	}

	near := p23 / (p22 - 1)
	far := p23 / (1 + p22)

	corners := func(d float64) [4]r3.Vector {
		left := d * (p02 - 1) / p00
		right := d * (1 + p02) / p00
		top := d * (1 + p12) / p11
		bottom := d * (p12 - 1) / p11
		return [4]r3.Vector{
			{X: left, Y: bottom, Z: -d},
			{X: right, Y: bottom, Z: -d},
			{X: right, Y: top, Z: -d},
			{X: left, Y: top, Z: -d},
		}
	}
	n, f := corners(near), corners(far)
	copy(v[1:5], n[:])
	copy(v[5:9], f[:])
	return v, nil
}

// FrustumIndices returns line segment vertex index pairs drawing the
// vertices returned by Frustum: rays from the origin to the far corners and
// the outlines of the near and far planes.
func FrustumIndices() []uint16 {
	return []uint16{
		0, 5, 0, 6, 0, 7, 0, 8,
		1, 2, 2, 3, 3, 4, 4, 1,
		5, 6, 6, 7, 7, 8, 8, 5,
	}
}
