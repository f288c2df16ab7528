/*
 * basis.go, part of gospin.
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

//Package basis enumerates the symmetry-adapted basis of the
//stochastic-Liouville problem: direct products of normalized generalized
//spherical harmonics (quantum numbers L, jK, K, M) with electron and
//nuclear spin transition indices (pS, qS, pI, qI, pIb, qIb). The
//enumeration order is canonical and must never change: the position of a
//state in it is its row/column index in the assembled superoperator.
package basis

import "fmt"

//State is one basis function, a nine-quantum-number tuple (jK counts as
//one). All fields are plain integers; half-integer nuclear spins enter
//only through the doubled bounds in Bounds.
type State struct {
	L   int //orbital rank, 0..Lemax
	JK  int //K-symmetrization parity, -1 or +1
	K   int //body-frame projection, 0..min(Kmax,L)
	M   int //lab-frame projection, -min(Mmax,L)..min(Mmax,L)
	PS  int //electron spin transition index
	QS  int //electron spin "position" index
	PI  int //nuclear transition index, first nucleus
	QI  int //nuclear position index, first nucleus
	PIb int //nuclear transition index, second nucleus
	QIb int //nuclear position index, second nucleus
}

//Bounds defines the truncation of the basis. TwoI and TwoIb are the
//doubled nuclear spin quantum numbers. Symm is the Meirovitch
//symmetrization constraint as applied, i.e. it must already account for
//the director tilt (the constraint only holds for an untilted director).
type Bounds struct {
	Lemax  int  //maximum even orbital rank
	Lomax  int  //maximum odd orbital rank
	Kmax   int  //maximum K
	Mmax   int  //maximum |M|
	JKmin  int  //-1 for the full jK basis, +1 for the jK=+1 half
	PSmin  int  //lower bound for pS (upper bound is +1)
	DeltaK int  //K stride: 2 keeps only even K, 1 keeps all
	PImax  int  //maximum |pI|
	PIbmax int  //maximum |pIb|
	TwoI   int  //2*I, first nucleus
	TwoIb  int  //2*Ib, second nucleus
	Symm   bool //apply pI+pIb+pS-M == 1
}

//Validate rejects bounds that the enumeration loops can not interpret.
//Bounds that merely produce an empty basis are fine.
func (b *Bounds) Validate() error {
	switch {
	case b.Lemax < 0 || b.Lomax < 0:
		return fmt.Errorf("goSpin: negative orbital rank bound: Lemax=%d Lomax=%d", b.Lemax, b.Lomax)
	case b.Kmax < 0 || b.Mmax < 0:
		return fmt.Errorf("goSpin: negative projection bound: Kmax=%d Mmax=%d", b.Kmax, b.Mmax)
	case b.JKmin != -1 && b.JKmin != 1:
		return fmt.Errorf("goSpin: JKmin must be -1 or +1, got %d", b.JKmin)
	case b.DeltaK != 1 && b.DeltaK != 2:
		return fmt.Errorf("goSpin: DeltaK must be 1 or 2, got %d", b.DeltaK)
	case b.PSmin < -1 || b.PSmin > 1:
		return fmt.Errorf("goSpin: PSmin out of range: %d", b.PSmin)
	case b.PImax < 0 || b.PIbmax < 0:
		return fmt.Errorf("goSpin: negative nuclear index bound: PImax=%d PIbmax=%d", b.PImax, b.PIbmax)
	case b.TwoI < 0 || b.TwoIb < 0:
		return fmt.Errorf("goSpin: negative doubled nuclear spin: TwoI=%d TwoIb=%d", b.TwoI, b.TwoIb)
	}
	return nil
}

func isodd(k int) bool { return k&1 != 0 }

//parityOK reports whether the K=0 parity rule admits (L, jK).
func parityOK(L, jK int) bool {
	if isodd(L) {
		return jK == -1
	}
	return jK == +1
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

//Admit reports whether s satisfies every admissibility rule of b. It is
//the same predicate the walk applies, exposed so the assembler can assert
//consistency and tests can probe single tuples.
func (b *Bounds) Admit(s State) bool {
	if s.L < 0 || s.L > b.Lemax || (isodd(s.L) && s.L > b.Lomax) {
		return false
	}
	if s.JK != -1 && s.JK != 1 || s.JK < b.JKmin {
		return false
	}
	if s.K < 0 || s.K > mini(b.Kmax, s.L) || s.K%b.DeltaK != 0 {
		return false
	}
	if s.K == 0 && !parityOK(s.L, s.JK) {
		return false
	}
	if m := mini(b.Mmax, s.L); s.M < -m || s.M > m {
		return false
	}
	if s.PS < b.PSmin || s.PS > 1 {
		return false
	}
	if q := 1 - abs(s.PS); s.QS < -q || s.QS > q || isodd(s.QS-q) {
		return false
	}
	if s.PI < -b.PImax || s.PI > b.PImax {
		return false
	}
	if q := b.TwoI - abs(s.PI); s.QI < -q || s.QI > q || isodd(s.QI-q) {
		return false
	}
	if s.PIb < -b.PIbmax || s.PIb > b.PIbmax {
		return false
	}
	if q := b.TwoIb - abs(s.PIb); s.QIb < -q || s.QIb > q || isodd(s.QIb-q) {
		return false
	}
	if b.Symm && s.PI+s.PIb+s.PS-s.M != 1 {
		return false
	}
	return true
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

//walk streams every admissible state in canonical order (lexicographic in
//L, jK, K, M, pS, qS, pI, qI, pIb, qIb) until yield returns false. Every
//admissibility rule lives here, and only here; Size and States are thin
//consumers, so the count-only and full-enumeration modes can not drift
//apart.
func (b *Bounds) walk(yield func(State) bool) {
	for L := 0; L <= b.Lemax; L++ {
		if isodd(L) && L > b.Lomax {
			continue
		}
		for jK := b.JKmin; jK <= 1; jK += 2 {
			kmax := mini(b.Kmax, L)
			for K := 0; K <= kmax; K += b.DeltaK {
				if K == 0 && !parityOK(L, jK) {
					continue
				}
				mmax := mini(b.Mmax, L)
				for M := -mmax; M <= mmax; M++ {
					for pS := b.PSmin; pS <= 1; pS++ {
						qSmax := 1 - abs(pS)
						for qS := -qSmax; qS <= qSmax; qS += 2 {
							for pI := -b.PImax; pI <= b.PImax; pI++ {
								qImax := b.TwoI - abs(pI)
								for qI := -qImax; qI <= qImax; qI += 2 {
									for pIb := -b.PIbmax; pIb <= b.PIbmax; pIb++ {
										if b.Symm && pI+pIb+pS-M != 1 {
											continue
										}
										qIbmax := b.TwoIb - abs(pIb)
										for qIb := -qIbmax; qIb <= qIbmax; qIb += 2 {
											if !yield(State{L, jK, K, M, pS, qS, pI, qI, pIb, qIb}) {
												return
											}
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

//Size returns the number of admissible states, without materializing them.
//This is how the caller sizes the sparse output before the expensive
//assembly pass. A zero size is valid and signals a degenerate system.
func (b *Bounds) Size() int {
	n := 0
	b.walk(func(State) bool { n++; return true })
	return n
}

//States returns all admissible states, in canonical order. The index of a
//state in the returned slice is its row/column index in the assembled
//matrix.
func (b *Bounds) States() []State {
	states := make([]State, 0, b.Size())
	b.walk(func(s State) bool { states = append(states, s); return true })
	return states
}
