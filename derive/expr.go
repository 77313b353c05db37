/*
DESCRIPTION
  expr.go provides rational expressions over the polynomials of poly.go.

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
	"math/big"
)

// ErrDivideByZero is returned when dividing by an expression that is
// identically zero, or evaluating one whose denominator is zero.
var ErrDivideByZero = errors.New("division by zero")

// Expr is a quotient of polynomials, kept with common monomial factors
// cancelled and a denominator whose leading coefficient is one. Construct
// with Var or Const; the zero value is not a valid expression.
type Expr struct {
	num, den Poly
}

// Var returns the expression consisting of the symbol name.
func Var(name string) Expr {
	return Expr{num: symPoly(name), den: constPoly(big.NewRat(1, 1))}
}

// Const returns the integer constant n.
func Const(n int64) Expr {
	return Expr{num: constPoly(big.NewRat(n, 1)), den: constPoly(big.NewRat(1, 1))}
}

// newExpr returns num/den in canonical form. den must not be zero.
func newExpr(num, den Poly) Expr {
	if num.IsZero() {
		return Const(0)
	}
	g := num.content().gcd(den.content())
	if len(g) > 0 {
		num, den = num.divMono(g), den.divMono(g)
	}
	lc := den.leading().coef
	if lc.Cmp(big.NewRat(1, 1)) != 0 {
		inv := new(big.Rat).Inv(lc)
		num, den = num.scale(inv), den.scale(inv)
	}
	return Expr{num: num, den: den}
}

// Num returns the numerator of e.
func (e Expr) Num() Poly { return e.num }

// Den returns the denominator of e.
func (e Expr) Den() Poly { return e.den }

// IsZero returns true if e is identically zero.
func (e Expr) IsZero() bool { return e.num.IsZero() }

func (e Expr) Add(o Expr) Expr {
	if e.den.Equal(o.den) {
		return newExpr(e.num.Add(o.num), e.den)
	}
	return newExpr(e.num.Mul(o.den).Add(o.num.Mul(e.den)), e.den.Mul(o.den))
}

func (e Expr) Sub(o Expr) Expr { return e.Add(o.Neg()) }

func (e Expr) Neg() Expr { return Expr{num: e.num.Neg(), den: e.den} }

func (e Expr) Mul(o Expr) Expr {
	return newExpr(e.num.Mul(o.num), e.den.Mul(o.den))
}

func (e Expr) Div(o Expr) (Expr, error) {
	if o.IsZero() {
		return Expr{}, ErrDivideByZero
	}
	return newExpr(e.num.Mul(o.den), e.den.Mul(o.num)), nil
}

func (e Expr) pow(n int) Expr {
	out := Const(1)
	for i := 0; i < n; i++ {
		out = out.Mul(e)
	}
	return out
}

// Subst replaces the symbols of e with the expressions in vals.
func (e Expr) Subst(vals map[string]Expr) (Expr, error) {
	return e.num.Subst(vals).Div(e.den.Subst(vals))
}

// Eval returns the value of e for the symbol values in vals.
func (e Expr) Eval(vals map[string]float64) (float64, error) {
	n, err := e.num.Eval(vals)
	if err != nil {
		return 0, err
	}
	d, err := e.den.Eval(vals)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, ErrDivideByZero
	}
	return n / d, nil
}

func (e Expr) String() string {
	num := e.num.String()
	if len(e.num.terms) > 1 {
		num = "(" + num + ")"
	}
	if e.den.Equal(constPoly(big.NewRat(1, 1))) {
		return e.num.String()
	}
	den := e.den.String()
	if len(e.den.terms) > 1 || e.den.leading().coef.Cmp(big.NewRat(1, 1)) != 0 {
		den = "(" + den + ")"
	}
	return num + "/" + den
}
