/*
DESCRIPTION
  view.go provides synthesis of look-at parameters and view matrices from a
  camera matrix.

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
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// LookAt holds the arguments of a gluLookAt style view matrix.
type LookAt struct {
	Eye    r3.Vector // Camera position.
	Center r3.Vector // A point one unit in front of the camera.
	Up     r3.Vector
}

// Args returns eye, center and up as nine consecutive values.
func (la LookAt) Args() [9]float64 {
	return [9]float64{
		la.Eye.X, la.Eye.Y, la.Eye.Z,
		la.Center.X, la.Center.Y, la.Center.Z,
		la.Up.X, la.Up.Y, la.Up.Z,
	}
}

// LookAtParams decomposes the camera matrix p and returns the look-at
// parameters of the camera it describes.
func LookAtParams(p mat.Matrix) (LookAt, error) {
	d, err := Decompose(p)
	if err != nil {
		return LookAt{}, fmt.Errorf("could not decompose camera matrix: %w", err)
	}
	return d.LookAt()
}

// LookAt returns the look-at parameters of the decomposed camera. HZ
// cameras have +Y down and look along +Z, so up is -Y and forward is +Z
// in camera space.
func (d *Decomposition) LookAt() (LookAt, error) {
	rinv, err := pinv(d.Rotation)
	if err != nil {
		return LookAt{}, err
	}
	up := mulVec3(rinv, r3.Vector{X: 0, Y: -1, Z: 0})
	forward := mulVec3(rinv, r3.Vector{X: 0, Y: 0, Z: 1})
	eye := vecOf(d.Center)
	return LookAt{Eye: eye, Center: eye.Add(forward), Up: up}, nil
}

// ViewMatrix returns the OpenGL view matrix for la. For look-at parameters
// from a decomposition d it equals EyeFlip() * d.EyeTransform().
func ViewMatrix(la LookAt) mgl64.Mat4 {
	return mgl64.LookAtV(mglVec(la.Eye), mglVec(la.Center), mglVec(la.Up))
}

// pinv returns the Moore-Penrose pseudo-inverse of a.
func pinv(a mat.Matrix) (*mat.Dense, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFull) {
		return nil, fmt.Errorf("%w: could not factorise rotation", ErrDegenerate)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	r, c := a.Dims()
	eps := math.Nextafter(1, 2) - 1
	tol := float64(max(r, c)) * s[0] * eps
	sinv := mat.NewDense(c, r, nil)
	for i, sv := range s {
		if sv > tol {
			sinv.Set(i, i, 1/sv)
		}
	}

	out := new(mat.Dense)
	out.Product(&v, sinv, u.T())
	return out, nil
}

func mulVec3(m mat.Matrix, x r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*x.X + m.At(0, 1)*x.Y + m.At(0, 2)*x.Z,
		Y: m.At(1, 0)*x.X + m.At(1, 1)*x.Y + m.At(1, 2)*x.Z,
		Z: m.At(2, 0)*x.X + m.At(2, 1)*x.Y + m.At(2, 2)*x.Z,
	}
}

func vecOf(v mat.Vector) r3.Vector {
	return r3.Vector{X: v.AtVec(0), Y: v.AtVec(1), Z: v.AtVec(2)}
}

func mglVec(v r3.Vector) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }
