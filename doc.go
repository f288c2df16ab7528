/*
 * doc.go, part of gospin.
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

/*Package spin is the main package of the goSpin library. It provides the physical
parameter containers for simulating slow-motion CW-EPR spectra with the
stochastic-Liouville equation in the Meirovitch basis, plus reading of
parameter files.



	**goSpin capabilities**

    Holds the spin system parameters (electron and nuclear Zeeman, up to two
	hyperfine couplings, each with isotropic and rank-2 irreducible spherical
	tensor components) and the rotational diffusion parameters (diffusion
	tensor, orienting potential expansion, Heisenberg exchange).

    Enumerates the symmetry-adapted rotational/spin product basis
	(package basis).

    Evaluates Wigner 3j coupling coefficients and rank-2 reduced rotation
	matrices in closed form (package wigner).

    Assembles the sparse stochastic-Liouville superoperator matrix in
	coordinate (triplet) form (package liouville).

    Tridiagonalizes the assembled matrix with a complex-symmetric Lanczos
	procedure and evaluates the CW spectrum as a continued fraction
	(package solve).

    Writes and reads assembled matrices in a zstd-compressed triplet format
	(package ctm).

All angular frequencies are in the same (caller-chosen) units; the assembled
matrix simply inherits them. The basis conventions and the equations
implemented follow Meirovitch, Igner, Igner, Moro and Freed,
J. Chem. Phys. 77 (1982) 3915.*/
package spin
