/*
 * sparse.go, part of gospin.
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

package liouville

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Alloc carries the caller-supplied capacity bounds for one assembly call.
//The assembler never grows past them: exceeding either is a configuration
//error surfaced as a *CapacityError, not a silent truncation.
type Alloc struct {
	MaxElements int //capacity for nonzero matrix entries
	MaxRows     int //capacity for the basis dimension
}

//Error is the concrete error type of this package. It implements the
//spin.Error interface.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string { return err.message }

//Decorate adds the caller dec to the decoration slice, unless dec is
//empty, and returns the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//CapacityError signals that a preallocated capacity from Alloc would be
//exceeded. No partial result exists when it is returned; the only remedy
//is to assemble again with a larger allocation.
type CapacityError struct {
	base   Error
	Needed int //a lower bound for the capacity that was exceeded
}

func (err *CapacityError) Error() string { return err.base.message }

//Decorate adds the caller dec to the decoration slice, unless dec is
//empty, and returns the resulting slice.
func (err *CapacityError) Decorate(dec string) []string {
	return err.base.Decorate(dec)
}

func capacityError(msg string, needed int, caller string) *CapacityError {
	return &CapacityError{base: Error{msg, []string{caller}}, Needed: needed}
}

//Triplets is the sparse superoperator matrix in coordinate form: parallel
//row-index, column-index, real-part and imaginary-part arrays, allocated
//once at full capacity and filled through a cursor. The real part holds
//the diffusion/exchange superoperator Γ, the imaginary part the negated
//Liouville superoperator, so the stored complex entry is Γ - iL.
type Triplets struct {
	ridx, cidx []int
	re, im     []float64
	n          int //entries used
	rows       int //basis dimension
}

//NewTriplets returns an empty triplet list with the given capacities.
func NewTriplets(alloc Alloc) (*Triplets, error) {
	if alloc.MaxElements <= 0 || alloc.MaxRows <= 0 {
		return nil, &Error{fmt.Sprintf("goSpin: non-positive allocation: %+v", alloc), []string{"NewTriplets"}}
	}
	T := &Triplets{
		ridx: make([]int, alloc.MaxElements),
		cidx: make([]int, alloc.MaxElements),
		re:   make([]float64, alloc.MaxElements),
		im:   make([]float64, alloc.MaxElements),
	}
	return T, nil
}

//Append writes the next entry and advances the cursor. It returns a
//*CapacityError, and stores nothing, once the preallocated element
//capacity is full.
func (T *Triplets) Append(r, c int, re, im float64) error {
	if T.n >= len(T.ridx) {
		return capacityError(fmt.Sprintf("goSpin: more than %d nonzero elements; assemble again with a larger Alloc.MaxElements", len(T.ridx)), T.n+1, "Triplets.Append")
	}
	T.ridx[T.n] = r
	T.cidx[T.n] = c
	T.re[T.n] = re
	T.im[T.n] = im
	T.n++
	return nil
}

//SetRows declares the dimension of the matrix. The assembler does this
//itself; external fillers (deserialization) must call it before MatVec or
//CDense make sense.
func (T *Triplets) SetRows(n int) { T.rows = n }

//Len returns the number of nonzero entries stored.
func (T *Triplets) Len() int { return T.n }

//Rows returns the dimension (row and column count) of the matrix.
func (T *Triplets) Rows() int { return T.rows }

//RowIdx returns the row indices of the stored entries. The slice is a
//view into the triplet storage; the caller must not modify it.
func (T *Triplets) RowIdx() []int { return T.ridx[:T.n] }

//ColIdx returns the column indices of the stored entries, as a view.
func (T *Triplets) ColIdx() []int { return T.cidx[:T.n] }

//Re returns the real (diffusion/exchange) values, as a view.
func (T *Triplets) Re() []float64 { return T.re[:T.n] }

//Im returns the imaginary (negated Liouville) values, as a view.
func (T *Triplets) Im() []float64 { return T.im[:T.n] }

//At returns the i-th stored entry.
func (T *Triplets) At(i int) (r, c int, v complex128) {
	if i < 0 || i >= T.n {
		panic("goSpin: triplet index out of range")
	}
	return T.ridx[i], T.cidx[i], complex(T.re[i], T.im[i])
}

//MatVec computes dst = A*x with A the stored matrix. It allocates nothing
//and is the work horse of the downstream Lanczos iteration. dst and x must
//have length Rows() and must not alias.
func (T *Triplets) MatVec(dst, x []complex128) {
	if len(dst) != T.rows || len(x) != T.rows {
		panic(fmt.Sprintf("goSpin: MatVec length mismatch: %d, %d, want %d", len(dst), len(x), T.rows))
	}
	for i := range dst {
		dst[i] = 0
	}
	for k := 0; k < T.n; k++ {
		dst[T.ridx[k]] += complex(T.re[k], T.im[k]) * x[T.cidx[k]]
	}
}

//CDense expands the triplets into a dense gonum complex matrix. Only for
//small systems and tests; the whole point of the triplet form is not to do
//this for production-size bases.
func (T *Triplets) CDense() *mat.CDense {
	d := mat.NewCDense(T.rows, T.rows, nil)
	for k := 0; k < T.n; k++ {
		r, c := T.ridx[k], T.cidx[k]
		d.Set(r, c, d.At(r, c)+complex(T.re[k], T.im[k]))
	}
	return d
}
