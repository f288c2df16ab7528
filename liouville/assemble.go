/*
 * assemble.go, part of gospin.
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

//Package liouville assembles the sparse stochastic-Liouville superoperator
//matrix for slow-motion CW-EPR: for every pair of basis states it collects
//the orienting-potential diffusion term, the coherent Liouville
//(Hamiltonian) term and the isotropic diffusion/exchange term, and emits
//the nonzero sums as coordinate triplets. Equation numbers in the comments
//refer to Meirovitch, Igner, Igner, Moro and Freed, J. Chem. Phys. 77
//(1982) 3915.
package liouville

import (
	"fmt"
	"math"

	spin "github.com/rmera/gospin"
	"github.com/rmera/gospin/basis"
	"github.com/rmera/gospin/wigner"
)

var (
	sqrt12 = math.Sqrt(1.0 / 2.0)
	sqrt13 = math.Sqrt(1.0 / 3.0)
	sqrt16 = math.Sqrt(1.0 / 6.0)
	sqrt23 = math.Sqrt(2.0 / 3.0)
)

func isodd(k int) bool { return k&1 != 0 }

//parity returns (-1)^k.
func parity(k int) float64 {
	if isodd(k) {
		return -1
	}
	return 1
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

//Assemble builds the sparse superoperator matrix for the given parameter
//bundle. The result holds Γ - iL: real parts are the rotational
//diffusion/exchange superoperator, imaginary parts the negated Liouville
//superoperator. Off-diagonal entries are emitted twice, mirrored, so the
//triplet list is explicitly symmetric. The computation is deterministic:
//identical inputs give byte-identical triplet lists.
//
//Assemble fails before touching any storage on malformed parameters, and
//with a *CapacityError if the basis dimension exceeds alloc.MaxRows or the
//nonzero count exceeds alloc.MaxElements.
func Assemble(sys *spin.System, diff *spin.Diffusion, bnd *basis.Bounds, alloc Alloc) (*Triplets, error) {
	if err := precheck(sys, diff, bnd); err != nil {
		return nil, err
	}
	states := bnd.States()
	n := len(states)
	if n > alloc.MaxRows {
		return nil, capacityError(fmt.Sprintf("goSpin: basis dimension %d exceeds Alloc.MaxRows=%d", n, alloc.MaxRows), n, "Assemble")
	}
	T, err := NewTriplets(alloc)
	if err != nil {
		return nil, err
	}
	T.rows = n

	//Bandwidths, derived from the maximum rank of the (quadratic-combined)
	//potential expansion instead of a fixed 8: rank-2 tensor operators
	//never couple beyond |L1-L2|=2 on their own.
	lband := 2
	if diff.Potential() && diff.MaxL > 2 {
		lband = diff.MaxL
	}
	kband := lband

	ev := wigner.NewEvaluator(bnd.Lemax + 2)
	//all 3j arguments of the assembly are integer quantum numbers
	jjj := func(j1, j2, j3, m1, m2, m3 int) float64 {
		return ev.ThreeJ2(2*j1, 2*j2, 2*j3, 2*m1, 2*m2, 2*m3)
	}

	I := sys.I
	Ib := sys.Ib
	potential := diff.Potential()
	exchange := diff.Exchange != 0
	rhombic := diff.Rxx != diff.Ryy
	tilted := sys.DirTilt != 0

	for i := 0; i < n; i++ {
		r := states[i]
		L1, jK1, K1, M1 := r.L, r.JK, r.K, r.M

		//Potential-independent part of the diffusion operator, Eq. (A15):
		//depends only on L and K and is diagonal in all except K.
		isoKdiag := (diff.Rxx+diff.Ryy)/2*float64(L1*(L1+1)) + float64(K1*K1)*(diff.Rzz-(diff.Rxx+diff.Ryy)/2)
		isoKm2, isoKp2 := 0.0, 0.0
		if rhombic {
			kk := K1 - 2
			isoKm2 = (diff.Rxx - diff.Ryy) / 4 * math.Sqrt(float64((L1-kk-1)*(L1-kk)*(L1+kk+1)*(L1+kk+2)))
			kk = K1 + 2
			isoKp2 = (diff.Rxx - diff.Ryy) / 4 * math.Sqrt(float64((L1+kk-1)*(L1+kk)*(L1-kk+1)*(L1-kk+2)))
		}

		//Block quantities, recomputed only when the orientational part
		//(L2,jK2,K2) or M2 of the column state changes. The canonical
		//ordering keeps equal blocks contiguous.
		obL, obJK, obK := -1, 0, -1
		var Ld, jKd, Kd, Ks int
		var ld2 bool
		var parityLK2 int
		var rEZI2, rHFI2, rHFI2b float64
		var nK, normFactor, potDiff float64
		lastM := math.MinInt32
		var Md int
		var diagLK, diagLKM bool
		var liou3j float64

		for j := i; j < n; j++ {
			c := states[j]
			if c.L > L1+lband { //canonical order: L2 only grows from here
				break
			}
			L2, jK2, K2, M2 := c.L, c.JK, c.K, c.M
			if L2 != obL || jK2 != obJK || K2 != obK {
				obL, obJK, obK = L2, jK2, K2
				lastM = math.MinInt32
				Ld = L1 - L2
				ld2 = abs(Ld) <= 2
				jKd = jK1 - jK2
				Kd = K1 - K2
				Ks = K1 + K2
				parityLK2 = 1
				if isodd(L2 + K2) {
					parityLK2 = -1
				}
				//N_L normalization factor, see after Eq. (A11)
				nL := math.Sqrt(float64((2*L1 + 1) * (2*L2 + 1)))

				//R(mu=EZI,HFI;l=2), Eqs. (A42) and (A44)
				rEZI2, rHFI2, rHFI2b = 0, 0, 0
				if ld2 {
					var g1, a1, a1b float64
					if abs(Kd) <= 2 {
						coeff := jjj(L1, 2, L2, K1, -Kd, -K2)
						if jK1 == jK2 {
							g1 = coeff * real(sys.EZI2[Kd+2])
							a1 = coeff * real(sys.HFI2[Kd+2])
							a1b = coeff * real(sys.HFI2b[Kd+2])
						} else {
							g1 = coeff * imag(sys.EZI2[Kd+2]) * float64(jK1)
							a1 = coeff * imag(sys.HFI2[Kd+2]) * float64(jK1)
							a1b = coeff * imag(sys.HFI2b[Kd+2]) * float64(jK1)
						}
					}
					var g2, a2, a2b float64
					if abs(Ks) <= 2 {
						coeff := jjj(L1, 2, L2, K1, -Ks, K2)
						if jK1 == jK2 {
							g2 = coeff * real(sys.EZI2[Ks+2])
							a2 = coeff * real(sys.HFI2[Ks+2])
							a2b = coeff * real(sys.HFI2b[Ks+2])
						} else {
							g2 = coeff * imag(sys.EZI2[Ks+2]) * float64(jK1)
							a2 = coeff * imag(sys.HFI2[Ks+2]) * float64(jK1)
							a2b = coeff * imag(sys.HFI2b[Ks+2]) * float64(jK1)
						}
					}
					s := float64(jK2) * float64(parityLK2)
					rEZI2 = g1 + s*g2
					rHFI2 = a1 + s*a2
					rHFI2b = a1b + s*a2b
				}

				//N_K(K1,K2) normalization factor, Eq. (A43)
				nK = 1.0
				if K1 == 0 {
					nK /= math.Sqrt2
				}
				if K2 == 0 {
					nK /= math.Sqrt2
				}
				//normalization prefactor of Eqs. (A40) and (A41)
				normFactor = nL * nK * parity(M1+K1)

				//Potential-dependent term of the diffusion operator, Eq. (A40)
				potDiff = 0
				if potential && abs(Ld) <= lband && !isodd(Ks) && jKd == 0 &&
					abs(Kd) <= kband && abs(Ks) <= kband {
					for L := 0; L <= diff.MaxL; L += 2 {
						term1 := 0.0
						if abs(Kd) <= L {
							if x := diff.XLK(L, Kd); x != 0 { //X^L_{K1-K2}
								term1 = x * jjj(L1, L, L2, K1, -Kd, -K2)
							}
						}
						term2 := 0.0
						if Ks <= L {
							if x := diff.XLK(L, Ks); x != 0 { //X^L_{K1+K2}
								term2 = float64(parityLK2*jK2) * x * jjj(L1, L, L2, K1, -Ks, K2)
							}
						}
						if term1 != 0 || term2 != 0 {
							potDiff += (term1 + term2) * jjj(L1, L, L2, M1, 0, -M1)
						}
					}
					potDiff *= normFactor
				}
			}
			if M2 != lastM {
				lastM = M2
				Md = M1 - M2
				diagLK = L1 == L2 && K1 == K2
				diagLKM = diagLK && jKd == 0 && Md == 0
				//3j symbol of Eq. (A41) for l = 2
				liou3j = 0
				if ld2 {
					liou3j = jjj(L1, 2, L2, M1, -Md, -M2)
				}
			}

			pSd := r.PS - c.PS
			qSd := r.QS - c.QS
			diagS := pSd == 0 && qSd == 0
			pId := r.PI - c.PI
			qId := r.QI - c.QI
			pIbd := r.PIb - c.PIb
			qIbd := r.QIb - c.QIb
			diagI := pId == 0 && qId == 0 && pIbd == 0 && qIbd == 0
			pd := pSd + pId + pIbd

			//Matrix element of the Liouville operator, Eq. (A41). For the
			//rank-0 terms L1==L2, K1==K2 and M1==M2 (the 3j symbols vanish
			//otherwise) and the N_L, N_K prefactors cancel against the
			//rank-0 3j values, so they are applied to the rank-2 terms only.
			liouville := 0.0
			if ld2 && abs(Md) <= 2 &&
				(tilted || pd == Md) && //untilted director: d2 is diagonal
				abs(pSd) <= 1 && abs(pId) <= 1 && abs(pIbd) <= 1 && //Clebsch-Gordans of (B7),(B8) vanish otherwise
				abs(pSd) == abs(qSd) && abs(pId) == abs(qId) && abs(pIbd) == abs(qIbd) {

				includeRank0 := diagLKM && pd == 0
				d2jjj := sys.D2[pd+2][Md+2] * liou3j

				//electron Zeeman
				if diagI {
					var c2, sG float64
					if pSd == 0 {
						c2 = sqrt23 //(112|000)
						sG = float64(r.PS)
					} else {
						c2 = sqrt12 //(112|-10-1), (112|101)
						sG = -float64(qSd) / math.Sqrt2
					}
					liouville += normFactor * d2jjj * rEZI2 * (c2 * sG)
					if includeRank0 {
						liouville += sys.EZI0 * (-sqrt13 * float64(r.PS)) //(110|000)
					}
				}

				//hyperfine, first nucleus
				if I > 0 && pSd*pId == qSd*qId && pIbd == 0 && qIbd == 0 {
					c0, c2, sA := hyperfineFactors(I, r.PS, r.QS, r.PI, r.QI, pSd, qSd, pId, qId)
					liouville += normFactor * d2jjj * rHFI2 * (c2 * sA)
					if includeRank0 {
						liouville += sys.HFI0 * (c0 * sA)
					}
				}

				//hyperfine, second nucleus
				if Ib > 0 && pSd*pIbd == qSd*qIbd && pId == 0 && qId == 0 {
					c0, c2, sA := hyperfineFactors(Ib, r.PS, r.QS, r.PIb, r.QIb, pSd, qSd, pIbd, qIbd)
					liouville += normFactor * d2jjj * rHFI2b * (c2 * sA)
					if includeRank0 {
						liouville += sys.HFI0b * (c0 * sA)
					}
				}

				//nuclear Zeeman, rank-0 component only
				if diagS && diagI && includeRank0 {
					liouville += sys.NZI0 * (-sqrt13) * float64(r.PI)
					liouville += sys.NZI0b * (-sqrt13) * float64(r.PIb)
				}
			}

			//Matrix element of the diffusion superoperator. All potential
			//terms are diagonal in the spin space.
			gamma := 0.0
			if diagS && diagI {
				//potential-independent terms, Eq. (A15)
				if Ld == 0 && Md == 0 && jKd == 0 {
					switch Kd {
					case 0:
						gamma += isoKdiag
					case +2:
						gamma += isoKm2 / nK
					case -2:
						gamma += isoKp2 / nK
					}
				}
				//potential-dependent terms, Eq. (A40)
				if potential && Md == 0 && jKd == 0 {
					gamma += potDiff
				}
			}
			//Heisenberg exchange
			if exchange && pSd == 0 && pId == 0 && pIbd == 0 && diagLKM {
				t := 0.0
				if qId == 0 && qIbd == 0 && qSd == 0 {
					t += 1.0
				}
				if qId == 0 && qIbd == 0 && r.PS == 0 {
					t -= 0.5
				}
				if r.PI == 0 && r.PIb == 0 && qSd == 0 {
					t -= 1.0 / (2*I + 1) / (2*Ib + 1)
				}
				gamma += t * diff.Exchange
			}

			//store: only exact zeros are skipped, so the sparsity pattern
			//is reproducible bit for bit
			if gamma != 0 || liouville != 0 {
				if err := T.Append(i, j, gamma, -liouville); err != nil {
					return nil, err
				}
				if i != j {
					if err := T.Append(j, i, gamma, -liouville); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return T, nil
}

//hyperfineFactors evaluates the Clebsch-Gordan coefficients and the spin
//factor S_A of Eq. (B7) for one nucleus, selected by the difference
//indices. It returns the rank-0 coefficient, the rank-2 coefficient and
//S_A.
func hyperfineFactors(I float64, pS1, qS1, pI1, qI1, pSd, qSd, pId, qId int) (c0, c2, sA float64) {
	if pId == 0 {
		if pSd == 0 {
			sA = float64(pS1*qI1+pI1*qS1) / 2
			c0 = -sqrt13 //(110|000)
			c2 = sqrt23  //(112|000)
		} else {
			sA = -float64(pI1*pSd+qI1*qSd) / math.Sqrt(8)
			c0 = 0      //no rank-0 term
			c2 = sqrt12 //(112|101), (112|-10-1)
		}
		return c0, c2, sA
	}
	t := qI1*qId + pI1*pId
	kI := math.Sqrt(I*(I+1) - float64(t*(t-2))/4)
	if pSd == 0 {
		sA = -float64(pS1*pId+qS1*qId) * kI / math.Sqrt(8)
		c0 = 0      //no rank-0 term
		c2 = sqrt12 //(112|011), (112|0-1-1)
	} else {
		sA = float64(pSd*qId) * kI / 2
		c0 = sqrt13 //(110|1-10), (110|-110)
		if pSd+pId == 0 {
			c2 = sqrt16 //(112|1-10), (112|-110)
		} else {
			c2 = 1.0 //(112|112), (112|-1-1-2)
		}
	}
	return c0, c2, sA
}

//precheck rejects inconsistent parameter bundles before any storage is
//touched.
func precheck(sys *spin.System, diff *spin.Diffusion, bnd *basis.Bounds) error {
	if sys == nil || diff == nil || bnd == nil {
		return &Error{"goSpin: nil parameter bundle", []string{"Assemble"}}
	}
	if err := sys.Validate(); err != nil {
		return err
	}
	if err := diff.Validate(); err != nil {
		return err
	}
	if err := bnd.Validate(); err != nil {
		return err
	}
	if bnd.TwoI != sys.TwoI() || bnd.TwoIb != sys.TwoIb() {
		return &Error{fmt.Sprintf("goSpin: basis bounds carry 2I=%d 2Ib=%d but the system has 2I=%d 2Ib=%d", bnd.TwoI, bnd.TwoIb, sys.TwoI(), sys.TwoIb()), []string{"Assemble"}}
	}
	if bnd.Symm && sys.DirTilt != 0 {
		return &Error{"goSpin: the Meirovitch symmetrization only holds for an untilted director", []string{"Assemble"}}
	}
	return nil
}
