/*
 * lanczos.go, part of gospin.
 *
 * Copyright 2026 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package solve consumes the assembled stochastic-Liouville matrix: it
//tridiagonalizes it with a complex-symmetric Lanczos iteration and
//evaluates the CW spectrum as a continued fraction of the Lanczos
//coefficients. The matrix from package liouville is complex symmetric
//(not Hermitian), so the iteration uses the symmetric bilinear form
//x.y = sum_i x_i*y_i, without conjugation.
package solve

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/rmera/gospin/liouville"
)

//bilinear is the symmetric (non-conjugating) form the complex-symmetric
//Lanczos recursion preserves.
func bilinear(x, y []complex128) complex128 {
	var s complex128
	for i, v := range x {
		s += v * y[i]
	}
	return s
}

//Lanczos tridiagonalizes the matrix in T with respect to the symmetric
//bilinear form, starting from v, for at most steps iterations. It returns
//the diagonal (alpha) and subdiagonal (beta) coefficients; len(beta) ==
//len(alpha)-1. The iteration stops early when an invariant subspace is
//found (vanishing beta). v is not modified.
func Lanczos(T *liouville.Triplets, v []complex128, steps int) (alpha, beta []complex128, err error) {
	n := T.Rows()
	if len(v) != n {
		return nil, nil, fmt.Errorf("goSpin: starting vector has %d elements, matrix dimension is %d", len(v), n)
	}
	if steps <= 0 || steps > n {
		steps = n
	}
	if n == 0 {
		return nil, nil, fmt.Errorf("goSpin: empty matrix")
	}
	norm2 := bilinear(v, v)
	if norm2 == 0 {
		return nil, nil, fmt.Errorf("goSpin: starting vector is quasi-null (zero bilinear norm)")
	}
	cur := make([]complex128, n)
	prev := make([]complex128, n)
	w := make([]complex128, n)
	inorm := 1 / cmplx.Sqrt(norm2)
	for i := range v {
		cur[i] = v[i] * inorm
	}
	var lastBeta complex128
	for k := 0; k < steps; k++ {
		T.MatVec(w, cur)
		if k > 0 {
			for i := range w {
				w[i] -= lastBeta * prev[i]
			}
		}
		a := bilinear(w, cur)
		alpha = append(alpha, a)
		for i := range w {
			w[i] -= a * cur[i]
		}
		b2 := bilinear(w, w)
		b := cmplx.Sqrt(b2)
		if cmplx.Abs(b) < 1e-14 || k == steps-1 {
			break
		}
		beta = append(beta, b)
		lastBeta = b
		ib := 1 / b
		prev, cur = cur, prev
		for i := range w {
			cur[i] = w[i] * ib
		}
	}
	return alpha, beta, nil
}

//ContFrac evaluates the resolvent matrix element <v|(zI + A)^-1|v> for a
//bilinear-normalized starting vector v, from the Lanczos coefficients of
//A, as the continued fraction
//
//	1/(z+a0 - b0^2/(z+a1 - b1^2/(...)))
//
//evaluated bottom up.
func ContFrac(alpha, beta []complex128, z complex128) complex128 {
	m := len(alpha)
	if m == 0 {
		return 0
	}
	val := z + alpha[m-1]
	for k := m - 2; k >= 0; k-- {
		val = z + alpha[k] - beta[k]*beta[k]/val
	}
	return 1 / val
}

//Spectrum evaluates the CW absorption at the given sweep offsets (angular
//frequency units of the assembled matrix): the real part of the resolvent
//at z = broadening + i*offset. broadening must be positive; it is the
//residual Lorentzian linewidth that keeps the resolvent off the spectrum
//poles. The result is scaled to unit maximum when scale is true.
func Spectrum(alpha, beta []complex128, offsets []float64, broadening float64, scale bool) []float64 {
	spc := make([]float64, len(offsets))
	for i, o := range offsets {
		spc[i] = real(ContFrac(alpha, beta, complex(broadening, o)))
	}
	if scale && len(spc) > 0 {
		if max := floats.Max(spc); max > 0 {
			floats.Scale(1/max, spc)
		}
	}
	return spc
}

//CWSpectrum chains Lanczos and Spectrum: the full downstream contract,
//from assembled matrix and starting vector to spectrum.
func CWSpectrum(T *liouville.Triplets, v []complex128, steps int, offsets []float64, broadening float64) ([]float64, error) {
	alpha, beta, err := Lanczos(T, v, steps)
	if err != nil {
		return nil, err
	}
	return Spectrum(alpha, beta, offsets, broadening, true), nil
}
