/*
DESCRIPTION
  projection.go provides conversion of an HZ intrinsic matrix to an
  equivalent OpenGL style projection matrix, and projection of points
  through both pipelines.

  The closed form used by GraphicsProjection is derived by package derive.
  See http://strawlab.org/2011/11/05/augmented-reality-with-OpenGL/

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

	"github.com/ausocean/utils/sliceutils"
	"gonum.org/v1/gonum/mat"
)

// WindowCoords is the direction in which window Y coordinates increase.
type WindowCoords string

// Recognised window coordinate conventions.
const (
	YUp   WindowCoords = "y up"   // Window Y increases upwards, as in OpenGL.
	YDown WindowCoords = "y down" // Window Y increases downwards, as in raster images.
)

var windowCoords = []string{string(YUp), string(YDown)}

// ParseWindowCoords returns the WindowCoords named by s.
func ParseWindowCoords(s string) (WindowCoords, error) {
	wc := WindowCoords(s)
	if err := wc.Validate(); err != nil {
		return "", err
	}
	return wc, nil
}

// Validate returns ErrInvalidArgument if wc is not YUp or YDown.
func (wc WindowCoords) Validate() error {
	if !sliceutils.ContainsString(windowCoords, string(wc)) {
		return fmt.Errorf("%w: unknown window coordinates %q", ErrInvalidArgument, string(wc))
	}
	return nil
}

// Viewport describes the window region and depth range a projection
// matrix renders into.
type Viewport struct {
	X0, Y0        float64 // Origin of the viewport in window coordinates.
	Width, Height float64
	ZNear, ZFar   float64
	Coords        WindowCoords
}

func (vp Viewport) validate() error {
	err := vp.Coords.Validate()
	if err != nil {
		return err
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("%w: viewport size %vx%v", ErrInvalidArgument, vp.Width, vp.Height)
	}
	if vp.ZNear == vp.ZFar {
		return fmt.Errorf("%w: near and far planes coincide at %v", ErrInvalidArgument, vp.ZNear)
	}
	return nil
}

// Window applies the viewport transform to normalised device coordinates.
func (vp Viewport) Window(ndcX, ndcY float64) (x, y float64) {
	return (ndcX+1)*vp.Width/2 + vp.X0, (ndcY+1)*vp.Height/2 + vp.Y0
}

// Pixel converts window coordinates produced by a projection matrix for vp
// into raster pixel coordinates, with v counting down from the top row.
func (vp Viewport) Pixel(x, y float64) (u, v float64) {
	if vp.Coords == YDown {
		return x, vp.Height - y
	}
	return x, y
}

// EyeFlip returns the transform from HZ eye coordinates to OpenGL eye
// coordinates, negating Y and Z.
func EyeFlip() *mat.Dense {
	return mat.DenseCopyOf(mat.NewDiagDense(4, []float64{1, -1, -1, 1}))
}

// GraphicsProjection returns the 4x4 OpenGL style projection matrix that,
// applied to OpenGL eye coordinates and followed by the perspective divide
// and the viewport transform for vp, reproduces the projection of the
// intrinsic matrix k.
func GraphicsProjection(k mat.Matrix, vp Viewport) (*mat.Dense, error) {
	if r, c := k.Dims(); r != 3 || c != 3 {
		return nil, fmt.Errorf("%w: intrinsic matrix is %dx%d, want 3x3", ErrShape, r, c)
	}
	err := vp.validate()
	if err != nil {
		return nil, err
	}

	depth := vp.ZFar - vp.ZNear
	q := -(vp.ZFar + vp.ZNear) / depth
	qn := -2 * (vp.ZFar * vp.ZNear) / depth
	w, h := vp.Width, vp.Height

	// The last two rows are those of gluPerspective and set the near and
	// far planes.
	proj := mat.NewDense(4, 4, []float64{
		2 * k.At(0, 0) / w, -2 * k.At(0, 1) / w, (-2*k.At(0, 2) + w + 2*vp.X0) / w, 0,
		0, 0, 0, 0,
		0, 0, q, qn,
		0, 0, -1, 0,
	})

	switch vp.Coords {
	case YUp:
		proj.Set(1, 1, -2*k.At(1, 1)/h)
		proj.Set(1, 2, (-2*k.At(1, 2)+h+2*vp.Y0)/h)
	case YDown:
		proj.Set(1, 1, 2*k.At(1, 1)/h)
		proj.Set(1, 2, (2*k.At(1, 2)-h+2*vp.Y0)/h)
	}
	return proj, nil
}

// ProjectHZ projects the homogeneous world points in the columns of pts
// (4xN) through Intrinsic * Extrinsic and returns their pixel coordinates
// as a 2xN matrix.
func ProjectHZ(d *Decomposition, pts mat.Matrix) (*mat.Dense, error) {
	if r, _ := pts.Dims(); r != 4 {
		return nil, fmt.Errorf("%w: points have %d rows, want 4", ErrShape, r)
	}
	var h mat.Dense
	h.Product(d.Intrinsic, d.Extrinsic, pts)
	_, n := h.Dims()
	out := mat.NewDense(2, n, nil)
	for j := 0; j < n; j++ {
		out.Set(0, j, h.At(0, j)/h.At(2, j))
		out.Set(1, j, h.At(1, j)/h.At(2, j))
	}
	return out, nil
}

// ProjectGraphics projects the homogeneous world points in the columns of
// pts (4xN) through the OpenGL pipeline: eye transform, eye flip,
// projection matrix proj, perspective divide and the viewport transform
// for vp. The window coordinates are converted by vp.Pixel and returned
// as a 2xN matrix.
func ProjectGraphics(d *Decomposition, proj mat.Matrix, vp Viewport, pts mat.Matrix) (*mat.Dense, error) {
	if r, _ := pts.Dims(); r != 4 {
		return nil, fmt.Errorf("%w: points have %d rows, want 4", ErrShape, r)
	}
	if r, c := proj.Dims(); r != 4 || c != 4 {
		return nil, fmt.Errorf("%w: projection matrix is %dx%d, want 4x4", ErrShape, r, c)
	}
	var clip mat.Dense
	clip.Product(proj, EyeFlip(), d.EyeTransform(), pts)
	_, n := clip.Dims()
	out := mat.NewDense(2, n, nil)
	for j := 0; j < n; j++ {
		w := clip.At(3, j)
		x, y := vp.Window(clip.At(0, j)/w, clip.At(1, j)/w)
		u, v := vp.Pixel(x, y)
		out.Set(0, j, u)
		out.Set(1, j, v)
	}
	return out, nil
}
