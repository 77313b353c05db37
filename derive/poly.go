/*
DESCRIPTION
  poly.go provides exact multivariate polynomials with rational
  coefficients.

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
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

type factor struct {
	sym string
	exp int
}

// monomial is a product of symbols raised to positive powers, sorted by
// symbol. The empty monomial is 1.
type monomial []factor

func (m monomial) key() string {
	parts := make([]string, len(m))
	for i, f := range m {
		if f.exp == 1 {
			parts[i] = f.sym
			continue
		}
		parts[i] = f.sym + "^" + strconv.Itoa(f.exp)
	}
	return strings.Join(parts, "*")
}

func (m monomial) degree() int {
	var d int
	for _, f := range m {
		d += f.exp
	}
	return d
}

// exp returns the power of sym in m.
func (m monomial) exp(sym string) int {
	for _, f := range m {
		if f.sym == sym {
			return f.exp
		}
	}
	return 0
}

func (m monomial) mul(o monomial) monomial {
	out := make(monomial, 0, len(m)+len(o))
	i, j := 0, 0
	for i < len(m) && j < len(o) {
		switch {
		case m[i].sym < o[j].sym:
			out = append(out, m[i])
			i++
		case m[i].sym > o[j].sym:
			out = append(out, o[j])
			j++
		default:
			out = append(out, factor{sym: m[i].sym, exp: m[i].exp + o[j].exp})
			i++
			j++
		}
	}
	out = append(out, m[i:]...)
	return append(out, o[j:]...)
}

// div returns m/o. o must divide m.
func (m monomial) div(o monomial) monomial {
	var out monomial
	for _, f := range m {
		f.exp -= o.exp(f.sym)
		if f.exp > 0 {
			out = append(out, f)
		}
	}
	return out
}

func (m monomial) gcd(o monomial) monomial {
	var out monomial
	for _, f := range m {
		e := min(f.exp, o.exp(f.sym))
		if e > 0 {
			out = append(out, factor{sym: f.sym, exp: e})
		}
	}
	return out
}

// without returns m with sym removed.
func (m monomial) without(sym string) monomial {
	var out monomial
	for _, f := range m {
		if f.sym != sym {
			out = append(out, f)
		}
	}
	return out
}

type term struct {
	mono monomial
	coef *big.Rat
}

// Poly is a multivariate polynomial with rational coefficients. The zero
// value is the zero polynomial. Operations return new polynomials and
// never modify their operands.
type Poly struct {
	terms map[string]term // Keyed by monomial key; no zero coefficients.
}

func constPoly(c *big.Rat) Poly {
	var p Poly
	p.add(nil, c)
	return p
}

func symPoly(sym string) Poly {
	var p Poly
	p.add(monomial{{sym: sym, exp: 1}}, big.NewRat(1, 1))
	return p
}

// add accumulates c*m into p in place. Only used on polynomials under
// construction.
func (p *Poly) add(m monomial, c *big.Rat) {
	if p.terms == nil {
		p.terms = make(map[string]term)
	}
	k := m.key()
	t, ok := p.terms[k]
	if !ok {
		if c.Sign() != 0 {
			p.terms[k] = term{mono: m, coef: new(big.Rat).Set(c)}
		}
		return
	}
	sum := new(big.Rat).Add(t.coef, c)
	if sum.Sign() == 0 {
		delete(p.terms, k)
		return
	}
	p.terms[k] = term{mono: t.mono, coef: sum}
}

func (p Poly) clone() Poly {
	out := Poly{terms: make(map[string]term, len(p.terms))}
	for k, t := range p.terms {
		out.terms[k] = t
	}
	return out
}

// IsZero returns true if p is the zero polynomial.
func (p Poly) IsZero() bool { return len(p.terms) == 0 }

// Equal returns true if p and o have the same terms.
func (p Poly) Equal(o Poly) bool {
	if len(p.terms) != len(o.terms) {
		return false
	}
	for k, t := range p.terms {
		ot, ok := o.terms[k]
		if !ok || t.coef.Cmp(ot.coef) != 0 {
			return false
		}
	}
	return true
}

func (p Poly) Add(o Poly) Poly {
	out := p.clone()
	for _, t := range o.terms {
		out.add(t.mono, t.coef)
	}
	return out
}

func (p Poly) Sub(o Poly) Poly { return p.Add(o.Neg()) }

func (p Poly) Neg() Poly { return p.scale(big.NewRat(-1, 1)) }

func (p Poly) Mul(o Poly) Poly {
	var out Poly
	for _, a := range p.terms {
		for _, b := range o.terms {
			out.add(a.mono.mul(b.mono), new(big.Rat).Mul(a.coef, b.coef))
		}
	}
	return out
}

func (p Poly) scale(c *big.Rat) Poly {
	var out Poly
	for _, t := range p.terms {
		out.add(t.mono, new(big.Rat).Mul(t.coef, c))
	}
	return out
}

// content returns the greatest common monomial divisor of the terms of p.
func (p Poly) content() monomial {
	var g monomial
	first := true
	for _, t := range p.terms {
		if first {
			g, first = t.mono, false
			continue
		}
		g = g.gcd(t.mono)
	}
	return g
}

func (p Poly) divMono(m monomial) Poly {
	var out Poly
	for _, t := range p.terms {
		out.add(t.mono.div(m), t.coef)
	}
	return out
}

// sorted returns the terms of p in ascending key order.
func (p Poly) sorted() []term {
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]term, len(keys))
	for i, k := range keys {
		out[i] = p.terms[k]
	}
	return out
}

// leading returns the term of highest total degree, taking the lowest
// key among equals. p must not be zero.
func (p Poly) leading() term {
	ts := p.sorted()
	lead := ts[0]
	for _, t := range ts[1:] {
		if t.mono.degree() > lead.mono.degree() {
			lead = t
		}
	}
	return lead
}

// Has returns true if sym occurs in p.
func (p Poly) Has(sym string) bool {
	for _, t := range p.terms {
		if t.mono.exp(sym) > 0 {
			return true
		}
	}
	return false
}

// linear splits p into a*sym + b, with a and b free of sym. ok is false if
// sym occurs in p with a power above one.
func (p Poly) linear(sym string) (a, b Poly, ok bool) {
	for _, t := range p.terms {
		switch t.mono.exp(sym) {
		case 0:
			b.add(t.mono, t.coef)
		case 1:
			a.add(t.mono.without(sym), t.coef)
		default:
			return Poly{}, Poly{}, false
		}
	}
	return a, b, true
}

// Subst replaces the symbols of p with the expressions in vals. Symbols
// missing from vals are kept.
func (p Poly) Subst(vals map[string]Expr) Expr {
	sum := Const(0)
	for _, t := range p.sorted() {
		e := Expr{num: constPoly(t.coef), den: constPoly(big.NewRat(1, 1))}
		for _, f := range t.mono {
			v, ok := vals[f.sym]
			if !ok {
				v = Var(f.sym)
			}
			e = e.Mul(v.pow(f.exp))
		}
		sum = sum.Add(e)
	}
	return sum
}

// Eval returns the value of p for the symbol values in vals.
func (p Poly) Eval(vals map[string]float64) (float64, error) {
	var sum float64
	for _, t := range p.sorted() {
		c, _ := t.coef.Float64()
		for _, f := range t.mono {
			v, ok := vals[f.sym]
			if !ok {
				return 0, fmt.Errorf("no value for %s", f.sym)
			}
			c *= math.Pow(v, float64(f.exp))
		}
		sum += c
	}
	return sum, nil
}

func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.sorted() {
		neg := t.coef.Sign() < 0
		c := new(big.Rat).Abs(t.coef)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		k := t.mono.key()
		switch {
		case k == "":
			sb.WriteString(c.RatString())
		case c.Cmp(big.NewRat(1, 1)) == 0:
			sb.WriteString(k)
		default:
			sb.WriteString(c.RatString() + "*" + k)
		}
	}
	return sb.String()
}
