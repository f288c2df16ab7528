/*
 * spin_test.go, part of gospin.
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
	"math"
	"strings"
	"testing"
)

const fullInput = `
system:
  i: 1
  ib: 0.5
  ezi0: 4.1e3
  ezi2:
    re: [10, -3, 55, 3, 10]
    im: [2, 1, 0, -1, -2]
  nzi0: 7.7
  hfi0: 2.6e2
  hfi2:
    re: [4, 0, 17, 0, 4]
  nzi0b: 3.3
  hfi0b: 14
  hfi2b:
    im: [0, 0.5, 0, 0.5, 0]
diffusion:
  rxx: 1.0e7
  ryy: 1.5e7
  rzz: 3.0e7
  exchange: 0.8e6
  xlk:
    - [0.05]
    - [0, 0, 0]
    - [0, 0, 1.3, 0, 0.2]
basis:
  lemax: 10
  lomax: 9
  kmax: 6
  mmax: 2
  jkmin: -1
  psmin: 0
  deltak: 2
  pimax: 2
  pibmax: 1
  symmetrize: true
`

//TestParamsReadFrom checks the full parameter file path: complex tensors,
//the potential table, and the basis bounds tied to the system spins.
func TestParamsReadFrom(Te *testing.T) {
	p, err := ParamsReadFrom(strings.NewReader(fullInput))
	if err != nil {
		Te.Fatal(err)
	}
	s, d, b := p.System, p.Diffusion, p.Basis
	if s.I != 1 || s.Ib != 0.5 {
		Te.Errorf("spins: I=%g Ib=%g", s.I, s.Ib)
	}
	if s.EZI2[0] != complex(10, 2) || s.EZI2[2] != complex(55, 0) || s.EZI2[4] != complex(10, -2) {
		Te.Errorf("ezi2 components wrong: %v", s.EZI2)
	}
	if s.HFI2[0] != complex(4, 0) { //imaginary parts omitted
		Te.Errorf("hfi2 components wrong: %v", s.HFI2)
	}
	if s.HFI2b[1] != complex(0, 0.5) { //real parts omitted
		Te.Errorf("hfi2b components wrong: %v", s.HFI2b)
	}
	if d.MaxL != 2 || d.XLK(2, 0) != 1.3 || d.XLK(2, 2) != 0.2 || d.XLK(0, 0) != 0.05 {
		Te.Errorf("potential table wrong: MaxL=%d Xlk=%v", d.MaxL, d.Xlk)
	}
	if !d.Potential() {
		Te.Error("potential not detected")
	}
	if b.TwoI != 2 || b.TwoIb != 1 {
		Te.Errorf("basis spins not tied to the system: 2I=%d 2Ib=%d", b.TwoI, b.TwoIb)
	}
	if !b.Symm {
		Te.Error("symmetrize with an untilted director should set Symm")
	}
	if b.Lemax != 10 || b.DeltaK != 2 || b.JKmin != -1 {
		Te.Errorf("basis bounds wrong: %+v", b)
	}
}

//TestParamsDefaults: a minimal file gets deltak=1, jkmin=-1 and no
//potential.
func TestParamsDefaults(Te *testing.T) {
	minimal := `
system:
  ezi0: 1.0
diffusion:
  rxx: 1
  ryy: 1
  rzz: 1
basis:
  lemax: 2
`
	p, err := ParamsReadFrom(strings.NewReader(minimal))
	if err != nil {
		Te.Fatal(err)
	}
	if p.Basis.DeltaK != 1 || p.Basis.JKmin != -1 {
		Te.Errorf("defaults not applied: deltak=%d jkmin=%d", p.Basis.DeltaK, p.Basis.JKmin)
	}
	if p.Diffusion.Potential() {
		Te.Error("an absent xlk table should mean no potential")
	}
	if p.Basis.Symm {
		Te.Error("symmetrization on by default")
	}
}

//TestSymmGating: the Meirovitch symmetrization is only valid for an
//untilted director, so a tilt must silently disable it.
func TestSymmGating(Te *testing.T) {
	tilted := `
system:
  ezi0: 1.0
  dirtilt: 0.5
diffusion:
  rxx: 1
  ryy: 1
  rzz: 1
basis:
  lemax: 2
  symmetrize: true
`
	p, err := ParamsReadFrom(strings.NewReader(tilted))
	if err != nil {
		Te.Fatal(err)
	}
	if p.Basis.Symm {
		Te.Error("symmetrization stayed on with a tilted director")
	}
	if p.System.DirTilt != 0.5 {
		Te.Errorf("dirtilt = %g, want 0.5", p.System.DirTilt)
	}
	//SetTilt must have filled the rotation table
	if p.System.D2[2][2] == 0 {
		Te.Error("reduced rotation matrix not filled from the tilt")
	}
}

//TestParamsErrors probes the rejection paths: unknown keys, wrong tensor
//lengths, unphysical spins, malformed potential tables.
func TestParamsErrors(Te *testing.T) {
	bad := []string{
		"system:\n  gzi0: 1.0\n", //unknown key
		"system:\n  ezi2:\n    re: [1, 2, 3]\n", //short tensor
		"system:\n  i: 0.3\n",    //not a multiple of 1/2
		"system:\n  i: -1\n",     //negative spin
		"diffusion:\n  rxx: -1\n  ryy: 1\n  rzz: 1\n", //negative rate
		"diffusion:\n  xlk:\n    - [1, 2]\n",          //row 0 needs 1 entry
		"basis:\n  lemax: -2\n",  //negative L bound
		"basis:\n  deltak: 3\n",  //deltak must be 1 or 2
	}
	for i, in := range bad {
		if _, err := ParamsReadFrom(strings.NewReader(in)); err == nil {
			Te.Errorf("case %d accepted:\n%s", i, in)
		}
	}
}

//TestSetTilt checks that the tilt angle and the rotation table move
//together and that an untilted system gets the identity.
func TestSetTilt(Te *testing.T) {
	var s System
	s.SetTilt(0)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(s.D2[i][j]-want) > 1e-12 {
				Te.Fatalf("untilted d2[%d][%d] = %g", i, j, s.D2[i][j])
			}
		}
	}
	s.SetTilt(0.7)
	if s.DirTilt != 0.7 {
		Te.Errorf("DirTilt = %g after SetTilt(0.7)", s.DirTilt)
	}
	if got, want := s.D2[2][2], (3*math.Cos(0.7)*math.Cos(0.7)-1)/2; math.Abs(got-want) > 1e-12 {
		Te.Errorf("d2_00(0.7) = %g, want %g", got, want)
	}
}

//TestTwoI: half-integer spins round to the right integer index bounds.
func TestTwoI(Te *testing.T) {
	cases := []struct {
		i    float64
		want int
	}{{0, 0}, {0.5, 1}, {1, 2}, {1.5, 3}, {2.5, 5}}
	for _, c := range cases {
		s := System{I: c.i, Ib: c.i}
		if s.TwoI() != c.want || s.TwoIb() != c.want {
			Te.Errorf("TwoI(%g) = %d, want %d", c.i, s.TwoI(), c.want)
		}
	}
}

//TestCErrorDecorate checks the decoration contract: empty strings are not
//recorded, and the stack accumulates in call order.
func TestCErrorDecorate(Te *testing.T) {
	err := &CError{"goSpin: something went sideways", nil}
	if d := err.Decorate(""); len(d) != 0 {
		Te.Errorf("empty decoration recorded: %v", d)
	}
	err.Decorate("inner")
	deco := err.Decorate("outer")
	if len(deco) != 2 || deco[0] != "inner" || deco[1] != "outer" {
		Te.Errorf("decoration stack wrong: %v", deco)
	}
	var generic error = err
	if _, ok := generic.(Error); !ok {
		Te.Error("CError does not satisfy the Error interface")
	}
}
