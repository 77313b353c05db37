/*
DESCRIPTION
  decompose.go provides decomposition of a 3x4 camera matrix in the
  Hartley & Zisserman convention into its intrinsic and extrinsic
  parameters.

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

// Package camera provides decomposition of projective camera matrices,
// conversion of calibration intrinsics to graphics projection matrices and
// synthesis of look-at view parameters.
//
// Camera matrices follow Hartley & Zisserman (2003): eye space has +Y down
// and the camera looks along +Z. Graphics matrices follow OpenGL: +Y up and
// the camera looks along -Z.
package camera

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// degenerateTol is the relative size below which the determinant of the
// left 3x3 block of a camera matrix is treated as zero.
const degenerateTol = 1e-12

// Decomposition holds the parameters recovered from a camera matrix P,
// where P is proportional to Intrinsic * Extrinsic.
type Decomposition struct {
	Intrinsic   *mat.Dense    // 3x3 upper triangular K with K[2,2] = 1.
	Rotation    *mat.Dense    // 3x3 world to camera rotation R, det(R) = +1.
	Center      *mat.VecDense // Camera center C in world coordinates.
	Translation *mat.VecDense // t = -R*C.
	Extrinsic   *mat.Dense    // 3x4 [R|t].
}

// Decompose factors the 3x4 camera matrix p into intrinsic and extrinsic
// parameters. ErrShape is returned if p is not 3x4 and ErrDegenerate if the
// camera center is at infinity or any parameter is not finite.
func Decompose(p mat.Matrix) (*Decomposition, error) {
	if r, c := p.Dims(); r != 3 || c != 4 {
		return nil, fmt.Errorf("%w: camera matrix is %dx%d, want 3x4", ErrShape, r, c)
	}
	if !finite(p) {
		return nil, fmt.Errorf("%w: camera matrix has non-finite entries", ErrDegenerate)
	}
	pm := mat.DenseCopyOf(p)

	m := pm.Slice(0, dim, 0, dim)
	det := mat.Det(m)
	scale := mat.Norm(m, 2)
	if math.Abs(det) <= degenerateTol*scale*scale*scale {
		return nil, fmt.Errorf("%w: left 3x3 block is singular (det %g)", ErrDegenerate, det)
	}

	// P and -P describe the same camera; pick the sign that gives a proper
	// rotation once the diagonal of K is positive.
	if det < 0 {
		pm.Scale(-1, pm)
	}

	k, r := rq(pm.Slice(0, dim, 0, dim))
	k22 := k.At(2, 2)
	k.Apply(func(_, _ int, v float64) float64 { return v / k22 }, k)

	c, err := center(pm)
	if err != nil {
		return nil, err
	}

	t := new(mat.VecDense)
	t.MulVec(r, c)
	t.ScaleVec(-1, t)

	rt := new(mat.Dense)
	rt.Augment(r, t)

	d := &Decomposition{
		Intrinsic:   k,
		Rotation:    r,
		Center:      c,
		Translation: t,
		Extrinsic:   rt,
	}
	if !finite(k) || !finite(rt) || !finite(c) {
		return nil, fmt.Errorf("%w: decomposition has non-finite values", ErrDegenerate)
	}
	return d, nil
}

// center returns the camera center of p from determinants of its 3x3
// column minors. See Hartley & Zisserman (2003) p. 163.
func center(p mat.Matrix) (*mat.VecDense, error) {
	x := minorDet(p, 1, 2, 3)
	y := -minorDet(p, 0, 2, 3)
	z := minorDet(p, 0, 1, 3)
	t := -minorDet(p, 0, 1, 2)
	if t == 0 {
		return nil, fmt.Errorf("%w: camera center is at infinity", ErrDegenerate)
	}
	return mat.NewVecDense(3, []float64{x / t, y / t, z / t}), nil
}

// minorDet returns the determinant of the 3x3 matrix made of the given
// columns of p.
func minorDet(p mat.Matrix, cols ...int) float64 {
	m := mat.NewDense(3, len(cols), nil)
	for j, col := range cols {
		for i := 0; i < 3; i++ {
			m.Set(i, j, p.At(i, col))
		}
	}
	return mat.Det(m)
}

// EyeTransform returns the 4x4 homogeneous form of the extrinsic matrix,
// mapping world coordinates to HZ eye coordinates.
func (d *Decomposition) EyeTransform() *mat.Dense {
	e := mat.NewDense(4, 4, nil)
	e.Slice(0, 3, 0, 4).(*mat.Dense).Copy(d.Extrinsic)
	e.Set(3, 3, 1)
	return e
}

// Camera returns the camera matrix Intrinsic * Extrinsic. It is equal to
// the decomposed matrix up to scale.
func (d *Decomposition) Camera() *mat.Dense {
	p := new(mat.Dense)
	p.Mul(d.Intrinsic, d.Extrinsic)
	return p
}

// CameraToWorld maps a point in HZ eye coordinates back to world
// coordinates, i.e. R^T * (x - t).
func (d *Decomposition) CameraToWorld(x r3.Vector) r3.Vector {
	return mulVec3(d.Rotation.T(), x.Sub(vecOf(d.Translation)))
}

// WorldToCamera maps a world point into HZ eye coordinates, i.e. R*x + t.
func (d *Decomposition) WorldToCamera(x r3.Vector) r3.Vector {
	return mulVec3(d.Rotation, x).Add(vecOf(d.Translation))
}

// finite reports whether every element of m is finite.
func finite(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
