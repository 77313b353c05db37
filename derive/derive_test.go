/*
DESCRIPTION
  derive_test.go provides testing for the symbolic derivation and its
  polynomial algebra.

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

package derive

import (
	"errors"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/ausocean/calibtest/camera"
	"gonum.org/v1/gonum/mat"
)

func TestDeriveString(t *testing.T) {
	tests := []struct {
		wc   camera.WindowCoords
		want string
	}{
		{
			wc: camera.YDown,
			want: `[ 2*K00/width, -2*K01/width, (-2*K02 + width + 2*x0)/width, 0 ]
[ 0, 2*K11/height, (2*K12 - height + 2*y0)/height, 0 ]
[ 0, 0, (-zfar - znear)/(zfar - znear), -2*zfar*znear/(zfar - znear) ]
[ 0, 0, -1, 0 ]`,
		},
		{
			wc: camera.YUp,
			want: `[ 2*K00/width, -2*K01/width, (-2*K02 + width + 2*x0)/width, 0 ]
[ 0, -2*K11/height, (-2*K12 + height + 2*y0)/height, 0 ]
[ 0, 0, (-zfar - znear)/(zfar - znear), -2*zfar*znear/(zfar - znear) ]
[ 0, 0, -1, 0 ]`,
		},
	}

	for _, test := range tests {
		f, err := Derive(test.wc)
		if err != nil {
			t.Fatalf("could not derive for %s: %v", test.wc, err)
		}
		if f.Coords != test.wc {
			t.Errorf("did not get expected coords. Got: %s, Want: %s", f.Coords, test.wc)
		}
		got := f.String()
		if got != test.want {
			t.Errorf("did not get expected formula for %s:\n%v", test.wc, diff.LineDiff(test.want, got))
		}
	}
}

// TestDeriveEval checks the derived formula evaluates to the projection
// matrix computed numerically.
func TestDeriveEval(t *testing.T) {
	k := mat.NewDense(3, 3, []float64{
		604.39963621, -7.33740535, 356.25995387,
		0, 578.11306274, 257.36283644,
		0, 0, 1,
	})
	for _, vp := range []camera.Viewport{
		{Width: 752, Height: 480, ZNear: 0.1, ZFar: 1000, Coords: camera.YDown},
		{X0: 12, Y0: 7, Width: 640, Height: 360, ZNear: 1, ZFar: 20, Coords: camera.YUp},
	} {
		f, err := Derive(vp.Coords)
		if err != nil {
			t.Fatalf("could not derive for %s: %v", vp.Coords, err)
		}
		got, err := f.Eval(Params(k, vp))
		if err != nil {
			t.Fatalf("could not evaluate: %v", err)
		}
		want, err := camera.GraphicsProjection(k, vp)
		if err != nil {
			t.Fatalf("could not get projection: %v", err)
		}
		if !mat.EqualApprox(got, want, 1e-12) {
			t.Errorf("derived and numeric projections differ for %+v.\nGot:\n%v\nWant:\n%v", vp, mat.Formatted(got), mat.Formatted(want))
		}
	}

	f, err := Derive(camera.YUp)
	if err != nil {
		t.Fatalf("could not derive: %v", err)
	}
	vals := Params(k, camera.Viewport{Width: 1, Height: 1, ZNear: 1, ZFar: 2})
	delete(vals, SymZFar)
	if _, err := f.Eval(vals); err == nil {
		t.Errorf("did not get error for missing symbol")
	}
	vals = Params(k, camera.Viewport{Width: 0, Height: 1, ZNear: 1, ZFar: 2})
	if _, err := f.Eval(vals); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("did not get expected error for zero width. Got: %v", err)
	}
}

func TestDeriveInvalid(t *testing.T) {
	_, err := Derive("y sideways")
	if !errors.Is(err, camera.ErrInvalidArgument) {
		t.Errorf("did not get expected error. Got: %v", err)
	}
}

func TestSolveLinear(t *testing.T) {
	x, a := Var("x"), Var("a")
	tests := []struct {
		name    string
		e       func() (Expr, error)
		want    string
		wantErr error
	}{
		{
			name: "linear",
			e:    func() (Expr, error) { return a.Mul(x).Add(Const(3)), nil }, // a*x + 3
			want: "-3/a",
		},
		{
			name:    "quadratic",
			e:       func() (Expr, error) { return x.Mul(x).Sub(a), nil },
			wantErr: ErrUnsolvable,
		},
		{
			name:    "in denominator",
			e:       func() (Expr, error) { return a.Div(x) },
			wantErr: ErrUnsolvable,
		},
		{
			name:    "independent",
			e:       func() (Expr, error) { return a.Add(Const(1)), nil },
			wantErr: ErrUnsolvable,
		},
	}

	for _, test := range tests {
		e, err := test.e()
		if err != nil {
			t.Fatalf("%s: could not build expression: %v", test.name, err)
		}
		got, err := solveLinear(e, "x")
		if test.wantErr != nil {
			if !errors.Is(err, test.wantErr) {
				t.Errorf("%s: did not get expected error. Got: %v, Want: %v", test.name, err, test.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got.String() != test.want {
			t.Errorf("%s: did not get expected solution. Got: %s, Want: %s", test.name, got, test.want)
		}
	}
}

func TestExprString(t *testing.T) {
	a, b, x, y := Var("a"), Var("b"), Var("x"), Var("y")
	quot := func(n, d Expr) Expr {
		e, err := n.Div(d)
		if err != nil {
			t.Fatalf("could not divide %v by %v: %v", n, d, err)
		}
		return e
	}

	tests := []struct {
		e    Expr
		want string
	}{
		{Const(0), "0"},
		{Const(-7), "-7"},
		{b.Add(a).Sub(Const(3)), "-3 + a + b"},
		{x.Mul(x).Mul(Const(2)), "2*x^2"},
		{x.Mul(y).Sub(y.Mul(x)), "0"},
		{quot(x.Mul(y), x.Mul(Const(2))), "1/2*y"},
		{quot(a.Add(b), a.Sub(b)), "(a + b)/(a - b)"},
		{quot(a.Mul(x), Const(-2).Mul(x).Mul(b)), "-1/2*a/b"},
		{quot(a, b.Add(Const(1))).Add(quot(Const(1), b.Add(Const(1)))), "(1 + a)/(1 + b)"},
	}

	for i, test := range tests {
		if got := test.e.String(); got != test.want {
			t.Errorf("did not get expected string for test %d. Got: %s, Want: %s", i, got, test.want)
		}
	}

	if _, err := a.Div(Const(0)); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("did not get expected error dividing by zero. Got: %v", err)
	}
}

func TestExprSubst(t *testing.T) {
	x, y := Var("x"), Var("y")
	e, err := x.Mul(x).Add(y).Div(y)
	if err != nil {
		t.Fatalf("could not divide: %v", err)
	}

	got, err := e.Subst(map[string]Expr{"x": Const(3), "y": Const(2)})
	if err != nil {
		t.Fatalf("could not substitute: %v", err)
	}
	if got.String() != "11/2" {
		t.Errorf("did not get expected value. Got: %s", got)
	}

	v, err := e.Eval(map[string]float64{"x": 3, "y": 2})
	if err != nil {
		t.Fatalf("could not evaluate: %v", err)
	}
	if v != 5.5 {
		t.Errorf("did not get expected evaluation. Got: %v", v)
	}

	if _, err := e.Subst(map[string]Expr{"y": Const(0)}); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("did not get expected error. Got: %v", err)
	}
}
