/*
DESCRIPTION
  rq.go provides an RQ factorisation of a 3x3 matrix built on gonum's QR
  factorisation.

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

import "gonum.org/v1/gonum/mat"

// dim is the dimension of the left block of a camera matrix.
const dim = 3

// rq factorises the 3x3 matrix m into an upper triangular k and an
// orthonormal r such that m = k*r. The diagonal of k is made positive.
//
// With E the row exchange matrix, the QR factorisation (E*m)^T = Q*U gives
// m = (E*U^T*E)*(E*Q^T), where E*U^T*E is upper triangular and E*Q^T is
// orthonormal.
func rq(m mat.Matrix) (k, r *mat.Dense) {
	flipped := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			flipped.Set(j, i, m.At(dim-1-i, j))
		}
	}

	qr := new(mat.QR)
	qr.Factorize(flipped)

	var q, u mat.Dense
	qr.QTo(&q)
	qr.RTo(&u)

	k = mat.NewDense(dim, dim, nil)
	r = mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			k.Set(i, j, u.At(dim-1-j, dim-1-i))
			r.Set(i, j, q.At(j, dim-1-i))
		}
	}

	fixSigns(k, r)
	return k, r
}

// fixSigns negates column i of k and row i of r wherever k[i,i] is negative.
// The product k*r is unchanged.
func fixSigns(k, r *mat.Dense) {
	for i := 0; i < dim; i++ {
		if k.At(i, i) >= 0 {
			continue
		}
		for j := 0; j < dim; j++ {
			k.Set(j, i, -k.At(j, i))
			r.Set(i, j, -r.At(i, j))
		}
	}
}
