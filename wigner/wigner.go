/*
 * wigner.go, part of gospin.
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

//Package wigner evaluates Wigner 3j coupling coefficients and reduced
//rotation matrix elements in closed form. Angular momenta are passed as
//doubled integers (2j, 2m) so half-integer arguments never touch floating
//point comparisons. The matrix assembly calls the 3j evaluator millions of
//times, so the factorial tables are precomputed once and the evaluation
//itself does not allocate.
package wigner

import "math"

//Evaluator computes 3j symbols with log-factorial tables precomputed up to
//a maximum angular momentum. It is cheap to create, one per assembly call;
//a single Evaluator must not be shared between goroutines that may trigger
//table growth concurrently.
type Evaluator struct {
	lnf []float64 //lnf[n] = ln(n!)
}

//NewEvaluator returns an Evaluator with factorial tables large enough for
//any 3j symbol with all three j at most maxJ.
func NewEvaluator(maxJ int) *Evaluator {
	if maxJ < 0 {
		maxJ = 0
	}
	ev := new(Evaluator)
	ev.grow(3*maxJ + 2)
	return ev
}

func (ev *Evaluator) grow(n int) {
	if len(ev.lnf) > n {
		return
	}
	if ev.lnf == nil {
		ev.lnf = append(ev.lnf, 0) //0! = 1
	}
	for i := len(ev.lnf); i <= n; i++ {
		ev.lnf = append(ev.lnf, ev.lnf[i-1]+math.Log(float64(i)))
	}
}

func isodd(k int) bool { return k&1 != 0 }

//parity returns (-1)^k.
func parity(k int) float64 {
	if isodd(k) {
		return -1
	}
	return 1
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

//ThreeJ2 returns the Wigner 3j symbol (j1 j2 j3; m1 m2 m3) with all six
//arguments doubled (dj1 = 2*j1 and so on). It returns exactly 0 whenever
//any selection rule fails: triangle inequality, m1+m2+m3 != 0, |mi| > ji,
//or inconsistent integer/half-integer parities. The closed form is the
//Racah single-sum formula, evaluated with log-factorials and an
//alternating sign.
func (ev *Evaluator) ThreeJ2(dj1, dj2, dj3, dm1, dm2, dm3 int) float64 {
	if dm1+dm2+dm3 != 0 {
		return 0
	}
	if dj3 < dj1-dj2 || dj3 < dj2-dj1 || dj3 > dj1+dj2 {
		return 0
	}
	if dm1 < -dj1 || dm1 > dj1 || dm2 < -dj2 || dm2 > dj2 || dm3 < -dj3 || dm3 > dj3 {
		return 0
	}
	//2j and 2m must have the same parity, and the perimeter must be integer
	if isodd(dj1+dm1) || isodd(dj2+dm2) || isodd(dj3+dm3) || isodd(dj1+dj2+dj3) {
		return 0
	}
	//all the following are guaranteed integer by the parity checks
	tmin := max3(0, (dj2-dj3-dm1)/2, (dj1-dj3+dm2)/2)
	tmax := min3((dj1+dj2-dj3)/2, (dj1-dm1)/2, (dj2+dm2)/2)
	if tmax < tmin { //out-of-domain factorials contribute nothing
		return 0
	}
	ev.grow((dj1+dj2+dj3)/2 + 1)
	lnf := ev.lnf
	//triangle coefficient and projection factorials, Racah's formula
	pref := lnf[(dj1+dj2-dj3)/2] + lnf[(dj1-dj2+dj3)/2] + lnf[(-dj1+dj2+dj3)/2] - lnf[(dj1+dj2+dj3)/2+1]
	pref += lnf[(dj1+dm1)/2] + lnf[(dj1-dm1)/2]
	pref += lnf[(dj2+dm2)/2] + lnf[(dj2-dm2)/2]
	pref += lnf[(dj3+dm3)/2] + lnf[(dj3-dm3)/2]
	pref *= 0.5
	sum := 0.0
	for t := tmin; t <= tmax; t++ {
		den := lnf[t] + lnf[(dj1+dj2-dj3)/2-t] + lnf[(dj1-dm1)/2-t] +
			lnf[(dj2+dm2)/2-t] + lnf[(dj3-dj2+dm1)/2+t] + lnf[(dj3-dj1-dm2)/2+t]
		sum += parity(t) * math.Exp(pref-den)
	}
	return parity((dj1-dj2-dm3)/2) * sum
}

//ThreeJ is ThreeJ2 for arguments given as (half-)integer valued floats.
//It is a convenience for callers outside the assembly hot path.
func (ev *Evaluator) ThreeJ(j1, j2, j3, m1, m2, m3 float64) float64 {
	d := func(x float64) int { return int(math.Round(2 * x)) }
	return ev.ThreeJ2(d(j1), d(j2), d(j3), d(m1), d(m2), d(m3))
}
