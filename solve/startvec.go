/*
 * startvec.go, part of gospin.
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

package solve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/rmera/gospin/basis"
)

//legendre evaluates P_L(x) by the Bonnet recurrence. d^L_00(beta) is
//P_L(cos beta), which is all the axial starting vector needs.
func legendre(L int, x float64) float64 {
	if L == 0 {
		return 1
	}
	pm, p := 1.0, x
	for l := 1; l < L; l++ {
		pm, p = p, (float64(2*l+1)*x*p-float64(l)*pm)/float64(l+1)
	}
	return p
}

//quadPoints is plenty for the smooth integrands of orienting potentials
//up to the ranks the assembler supports.
const quadPoints = 80

//StartingVector builds the normalized detection vector that projects the
//allowed EPR transition onto the basis: nonzero only on states with
//pS=1, qS=0, pI=pIb=0, K=0, M=0, jK=+1 and even L. lambda holds the axial
//orienting potential coefficients lambda_L (index L, only even entries
//used); nil or empty means no potential, for which only L=0 survives.
//Potentials with nonaxial (K != 0) terms are not supported here: their
//starting vector needs a two-dimensional orientational integral.
func StartingVector(states []basis.State, lambda []float64) ([]complex128, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("goSpin: empty basis")
	}
	//orientational overlap sqrt(2L+1) <D^L_00|exp(-U/2)>, Gauss-Legendre
	//over beta; trivial without a potential
	orient := func(L int) float64 {
		if len(lambda) == 0 {
			if L == 0 {
				return 1
			}
			return 0
		}
		f := func(beta float64) float64 {
			x := math.Cos(beta)
			u := 0.0
			for l := 0; l < len(lambda); l += 2 {
				u -= lambda[l] * legendre(l, x)
			}
			return legendre(L, x) * math.Exp(-u/2) * math.Sin(beta)
		}
		return math.Sqrt(float64(2*L+1)) * quad.Fixed(f, 0, math.Pi, quadPoints, quad.Legendre{}, 0)
	}
	v := make([]complex128, len(states))
	norm := 0.0
	for i, s := range states {
		if s.PS != 1 || s.QS != 0 || s.PI != 0 || s.PIb != 0 || s.K != 0 || s.M != 0 || s.JK != 1 || s.L%2 != 0 {
			continue
		}
		w := orient(s.L)
		v[i] = complex(w, 0)
		norm += w * w
	}
	if norm == 0 {
		return nil, fmt.Errorf("goSpin: starting vector is null; the basis holds no allowed transition")
	}
	in := complex(1/math.Sqrt(norm), 0)
	for i := range v {
		v[i] *= in
	}
	return v, nil
}
