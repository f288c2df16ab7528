/*
 * rotation.go, part of gospin.
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

package wigner

import "math"

//fact is enough factorials for rank-2 rotation matrices.
var fact = [5]float64{1, 1, 2, 6, 24}

//SmallD returns the reduced rotation matrix element d^j_{mp,m}(beta) for
//integer j (Wigner convention, d^j(0) the identity). Only small integer j
//are supported; it panics on j outside the factorial table, which for this
//library is a programmer error, not an input condition.
func SmallD(j, mp, m int, beta float64) float64 {
	if j < 0 || 2*j >= len(fact) {
		panic("goSpin: SmallD supports only j = 0, 1, 2")
	}
	if mp < -j || mp > j || m < -j || m > j {
		return 0
	}
	c := math.Cos(beta / 2)
	s := math.Sin(beta / 2)
	pre := math.Sqrt(fact[j+mp] * fact[j-mp] * fact[j+m] * fact[j-m])
	sum := 0.0
	for k := 0; ; k++ {
		if j+m-k < 0 || j-mp-k < 0 {
			break
		}
		if mp-m+k < 0 {
			continue
		}
		sign := 1.0
		if isodd(mp - m + k) {
			sign = -1
		}
		num := math.Pow(c, float64(2*j-mp+m-2*k)) * math.Pow(s, float64(mp-m+2*k))
		den := fact[j+m-k] * fact[k] * fact[mp-m+k] * fact[j-mp-k]
		sum += sign * num / den
	}
	return pre * sum
}

//D2 returns the 5x5 reduced rotation matrix d^2(beta), indexed
//[mp+2][m+2]. This is the table the matrix assembler consumes for the
//director tilt; with beta = 0 it is the identity.
func D2(beta float64) [5][5]float64 {
	var d [5][5]float64
	for mp := -2; mp <= 2; mp++ {
		for m := -2; m <= 2; m++ {
			d[mp+2][m+2] = SmallD(2, mp, m, beta)
		}
	}
	return d
}
