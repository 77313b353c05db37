/*
DESCRIPTION
  derive.go provides the symbolic derivation of the OpenGL projection
  matrix equivalent to an HZ intrinsic matrix.

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

// Package derive derives, with exact rational arithmetic, the closed form
// of the OpenGL projection matrix that reproduces the pixel coordinates of
// an HZ intrinsic matrix K.
//
// A point in HZ eye coordinates is taken through two pipelines. The
// graphics pipeline flips it to OpenGL eye coordinates, multiplies by a
// projection matrix with unknown entries g00, g01, g02, g11 and g12,
// divides by w and applies the viewport transform. The HZ pipeline
// multiplies by K and divides by z. Requiring the window and pixel
// coordinates to agree at a few probe points gives equations linear in one
// unknown each, which are solved in turn.
package derive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ausocean/calibtest/camera"
	"gonum.org/v1/gonum/mat"
)

// ErrUnsolvable is returned when an unknown cannot be solved for linearly.
var ErrUnsolvable = errors.New("unsolvable")

// Symbols used by the derivation.
const (
	SymXe     = "x_e"
	SymYe     = "y_e"
	SymZe     = "z_e"
	SymWe     = "w_e"
	SymK00    = "K00"
	SymK01    = "K01"
	SymK02    = "K02"
	SymK11    = "K11"
	SymK12    = "K12"
	SymWidth  = "width"
	SymHeight = "height"
	SymX0     = "x0"
	SymY0     = "y0"
	SymZNear  = "znear"
	SymZFar   = "zfar"
)

// Unknown projection matrix entries.
const (
	g00 = "g00"
	g01 = "g01"
	g02 = "g02"
	g11 = "g11"
	g12 = "g12"
)

// step solves for sym with the eye point fixed at probe.
type step struct {
	probe [3]int64
	sym   string
}

// Probes are chosen so each equation leaves a single new unknown.
var (
	rowXSteps = []step{{[3]int64{0, 0, 1}, g02}, {[3]int64{0, 1, 1}, g01}, {[3]int64{1, 0, 1}, g00}}
	rowYSteps = []step{{[3]int64{0, 0, 1}, g12}, {[3]int64{0, 1, 1}, g11}}
)

// Formula is a derived projection matrix.
type Formula struct {
	Coords camera.WindowCoords
	M      [4][4]Expr
}

// Derive returns the projection matrix for window coordinates wc in terms
// of the intrinsic matrix, viewport and depth range symbols.
func Derive(wc camera.WindowCoords) (*Formula, error) {
	err := wc.Validate()
	if err != nil {
		return nil, err
	}

	zero := Const(0)
	zn, zf := Var(SymZNear), Var(SymZFar)
	q, err := zf.Add(zn).Neg().Div(zf.Sub(zn))
	if err != nil {
		return nil, err
	}
	qn, err := Const(-2).Mul(zf).Mul(zn).Div(zf.Sub(zn))
	if err != nil {
		return nil, err
	}

	g := [4][4]Expr{
		{Var(g00), Var(g01), Var(g02), zero},
		{zero, Var(g11), Var(g12), zero},
		{zero, zero, q, qn},
		{zero, zero, Const(-1), zero},
	}

	x, y, z := Var(SymXe), Var(SymYe), Var(SymZe)

	// OpenGL eye coordinates of the HZ eye point.
	eye := [4]Expr{x, y.Neg(), z.Neg(), Var(SymWe)}
	var clip [4]Expr
	for i := range clip {
		clip[i] = zero
		for j := range eye {
			clip[i] = clip[i].Add(g[i][j].Mul(eye[j]))
		}
	}

	half, err := Const(1).Div(Const(2))
	if err != nil {
		return nil, err
	}
	window := func(c Expr, size, origin string) (Expr, error) {
		ndc, err := c.Div(clip[3])
		if err != nil {
			return Expr{}, err
		}
		return ndc.Add(Const(1)).Mul(Var(size)).Mul(half).Add(Var(origin)), nil
	}
	winX, err := window(clip[0], SymWidth, SymX0)
	if err != nil {
		return nil, fmt.Errorf("could not form window x: %w", err)
	}
	winY, err := window(clip[1], SymHeight, SymY0)
	if err != nil {
		return nil, fmt.Errorf("could not form window y: %w", err)
	}

	// HZ pixel coordinates.
	u, err := Var(SymK00).Mul(x).Add(Var(SymK01).Mul(y)).Add(Var(SymK02).Mul(z)).Div(z)
	if err != nil {
		return nil, err
	}
	v, err := Var(SymK11).Mul(y).Add(Var(SymK12).Mul(z)).Div(z)
	if err != nil {
		return nil, err
	}
	if wc == camera.YDown {
		v = Var(SymHeight).Sub(v)
	}

	rows := []struct {
		eq    Expr
		steps []step
	}{
		{winX.Sub(u), rowXSteps},
		{winY.Sub(v), rowYSteps},
	}

	solved := make(map[string]Expr)
	for _, r := range rows {
		for _, s := range r.steps {
			vals := map[string]Expr{
				SymXe: Const(s.probe[0]),
				SymYe: Const(s.probe[1]),
				SymZe: Const(s.probe[2]),
			}
			for k, e := range solved {
				vals[k] = e
			}
			e, err := r.eq.Subst(vals)
			if err != nil {
				return nil, fmt.Errorf("could not substitute probe for %s: %w", s.sym, err)
			}
			sol, err := solveLinear(e, s.sym)
			if err != nil {
				return nil, fmt.Errorf("could not solve for %s: %w", s.sym, err)
			}
			solved[s.sym] = sol
		}
	}

	// The solution must hold at every eye point, not just the probes.
	for i, r := range rows {
		res, err := r.eq.Subst(solved)
		if err != nil {
			return nil, fmt.Errorf("could not check row %d: %w", i, err)
		}
		if !res.IsZero() {
			return nil, fmt.Errorf("%w: row %d leaves residual %v", ErrUnsolvable, i, res)
		}
	}

	f := &Formula{Coords: wc, M: g}
	for i := range f.M {
		for j := range f.M[i] {
			f.M[i][j], err = f.M[i][j].Subst(solved)
			if err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// solveLinear solves e = 0 for sym.
func solveLinear(e Expr, sym string) (Expr, error) {
	if e.den.Has(sym) {
		return Expr{}, fmt.Errorf("%w: %s occurs in denominator", ErrUnsolvable, sym)
	}
	a, b, ok := e.num.linear(sym)
	if !ok {
		return Expr{}, fmt.Errorf("%w: equation is not linear in %s", ErrUnsolvable, sym)
	}
	if a.IsZero() {
		return Expr{}, fmt.Errorf("%w: equation does not depend on %s", ErrUnsolvable, sym)
	}
	return newExpr(b.Neg(), a), nil
}

// Params returns the symbol values for the intrinsic matrix k and
// viewport vp.
func Params(k mat.Matrix, vp camera.Viewport) map[string]float64 {
	return map[string]float64{
		SymK00:    k.At(0, 0),
		SymK01:    k.At(0, 1),
		SymK02:    k.At(0, 2),
		SymK11:    k.At(1, 1),
		SymK12:    k.At(1, 2),
		SymWidth:  vp.Width,
		SymHeight: vp.Height,
		SymX0:     vp.X0,
		SymY0:     vp.Y0,
		SymZNear:  vp.ZNear,
		SymZFar:   vp.ZFar,
	}
}

// Eval returns the projection matrix for the symbol values in vals.
func (f *Formula) Eval(vals map[string]float64) (*mat.Dense, error) {
	m := mat.NewDense(4, 4, nil)
	for i := range f.M {
		for j := range f.M[i] {
			v, err := f.M[i][j].Eval(vals)
			if err != nil {
				return nil, fmt.Errorf("could not evaluate entry [%d,%d]: %w", i, j, err)
			}
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// String returns the matrix one bracketed row per line.
func (f *Formula) String() string {
	rows := make([]string, len(f.M))
	for i, r := range f.M {
		cells := make([]string, len(r))
		for j, e := range r {
			cells[j] = e.String()
		}
		rows[i] = "[ " + strings.Join(cells, ", ") + " ]"
	}
	return strings.Join(rows, "\n")
}
