/*
 * system.go, part of gospin.
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

package spin

import (
	"fmt"
	"math"

	"github.com/rmera/gospin/wigner"
)

//System collects the spin-Hamiltonian side of the parameter bundle for one
//matrix assembly: nuclear spins, the isotropic and rank-2 irreducible
//spherical tensor components of the interactions, and the director tilt.
//Rank-2 components are indexed m+2, m=-2..2, and are in general complex.
//All fields are read-only for the duration of an assembly call.
type System struct {
	I  float64 //nuclear spin quantum number, first nucleus (0 if absent)
	Ib float64 //nuclear spin quantum number, second nucleus (0 if absent)

	EZI0  float64        //isotropic electron Zeeman, angular frequency units
	EZI2  [5]complex128  //rank-2 electron Zeeman
	NZI0  float64        //isotropic nuclear Zeeman, first nucleus
	HFI0  float64        //isotropic hyperfine, first nucleus
	HFI2  [5]complex128  //rank-2 hyperfine, first nucleus
	NZI0b float64        //isotropic nuclear Zeeman, second nucleus
	HFI0b float64        //isotropic hyperfine, second nucleus
	HFI2b [5]complex128  //rank-2 hyperfine, second nucleus

	DirTilt float64      //director tilt angle psi, radians
	D2      [5][5]float64 //reduced rotation matrix d^2(psi), indexed [p+2][m+2]
}

//TwoI returns 2*I rounded to the nearest integer, which is how the
//enumeration and the hyperfine index bounds consume half-integer spins.
func (S *System) TwoI() int {
	return int(math.Round(2 * S.I))
}

//TwoIb returns 2*Ib rounded to the nearest integer.
func (S *System) TwoIb() int {
	return int(math.Round(2 * S.Ib))
}

//SetTilt sets the director tilt angle and fills the reduced rotation
//matrix table accordingly. Call it instead of writing DirTilt directly,
//so the two fields can not go out of sync.
func (S *System) SetTilt(psi float64) {
	S.DirTilt = psi
	S.D2 = wigner.D2(psi)
}

//Validate returns an error if the system parameters can not possibly
//describe a physical S=1/2 spin system: negative or non-half-integer
//nuclear spins. It does not, and can not, check units.
func (S *System) Validate() error {
	for _, v := range [2]struct {
		name string
		val  float64
	}{{"I", S.I}, {"Ib", S.Ib}} {
		if v.val < 0 {
			return &CError{fmt.Sprintf("goSpin: nuclear spin %s is negative: %g", v.name, v.val), []string{"System.Validate"}}
		}
		twice := 2 * v.val
		if math.Abs(twice-math.Round(twice)) > 1e-9 {
			return &CError{fmt.Sprintf("goSpin: nuclear spin %s is not a multiple of 1/2: %g", v.name, v.val), []string{"System.Validate"}}
		}
	}
	return nil
}

//Diffusion collects the rotational-diffusion side of the parameter bundle:
//the principal values of the diffusion tensor, the Heisenberg exchange
//frequency, and the orienting potential expansion. Xlk holds the
//quadratic-combined potential expansion table X^L_K: row L has 2L+1
//entries indexed K+L, K=-L..L, for L=0..MaxL. An empty table (MaxL<0)
//means no orienting potential.
type Diffusion struct {
	Rxx, Ryy, Rzz float64     //diffusion tensor principal values
	Exchange      float64     //Heisenberg exchange frequency
	MaxL          int         //highest rank in Xlk, -1 for no potential
	Xlk           [][]float64 //potential expansion table
}

//Potential reports whether an orienting potential is present.
func (D *Diffusion) Potential() bool {
	return D.MaxL >= 0
}

//XLK returns the potential expansion coefficient X^L_K, or 0 if (L,K) is
//outside the table. The bound checks here replace the one-sided guards of
//older implementations: X^L_K with |K|>L does not exist and multiplies a
//vanishing 3j symbol anyway.
func (D *Diffusion) XLK(L, K int) float64 {
	if L < 0 || L > D.MaxL || K < -L || K > L {
		return 0
	}
	return D.Xlk[L][K+L]
}

//Validate returns an error on negative diffusion rates or on a potential
//table whose rows do not have the 2L+1 lengths the XLK indexing assumes.
func (D *Diffusion) Validate() error {
	if D.Rxx < 0 || D.Ryy < 0 || D.Rzz < 0 {
		return &CError{fmt.Sprintf("goSpin: negative diffusion rate: Rxx=%g Ryy=%g Rzz=%g", D.Rxx, D.Ryy, D.Rzz), []string{"Diffusion.Validate"}}
	}
	if D.MaxL >= 0 {
		if len(D.Xlk) != D.MaxL+1 {
			return &CError{fmt.Sprintf("goSpin: potential table has %d rows, MaxL=%d needs %d", len(D.Xlk), D.MaxL, D.MaxL+1), []string{"Diffusion.Validate"}}
		}
		for L, row := range D.Xlk {
			if len(row) != 2*L+1 {
				return &CError{fmt.Sprintf("goSpin: potential table row L=%d has %d entries, want %d", L, len(row), 2*L+1), []string{"Diffusion.Validate"}}
			}
		}
	} else if len(D.Xlk) != 0 {
		return &CError{"goSpin: potential table present but MaxL<0", []string{"Diffusion.Validate"}}
	}
	return nil
}
