/*
 * ctm_test.go, part of gospin.
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

package ctm

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spin "github.com/rmera/gospin"
	"github.com/rmera/gospin/basis"
	"github.com/rmera/gospin/liouville"
)

func assembled(Te *testing.T) *liouville.Triplets {
	sys := &spin.System{
		I:    1,
		EZI2: [5]complex128{0, 0, complex(3.2e8, 0), 0, 0},
		HFI0: 2.8e8,
		HFI2: [5]complex128{0, 0, complex(1.1e8, 0), 0, 0},
	}
	sys.SetTilt(0)
	diff := &spin.Diffusion{Rxx: 1e7, Ryy: 1e7, Rzz: 1e7, MaxL: -1}
	bnd := &basis.Bounds{Lemax: 6, Lomax: 5, Kmax: 0, Mmax: 2, JKmin: -1,
		PSmin: 0, DeltaK: 2, PImax: 2, PIbmax: 0, TwoI: 2, TwoIb: 0, Symm: true}
	T, err := liouville.Assemble(sys, diff, bnd, liouville.Alloc{MaxElements: 100000, MaxRows: 1000})
	require.NoError(Te, err)
	return T
}

//TestRoundtrip writes an assembled matrix and reads it back, checking a
//bit-exact match entry by entry and the header map.
func TestRoundtrip(Te *testing.T) {
	T := assembled(Te)
	name := filepath.Join(Te.TempDir(), "matrix.ctm")
	header := map[string]string{"system": "nitroxide", "units": "rad/s"}
	require.NoError(Te, Write(name, T, header))

	//it should actually compress: the text form repeats values heavily
	fi, err := os.Stat(name)
	require.NoError(Te, err)
	assert.Greater(Te, T.Len()*20, int(fi.Size()), "ctm file barely compressed")

	got, h, err := Read(name)
	require.NoError(Te, err)
	assert.Equal(Te, header, h)
	require.Equal(Te, T.Rows(), got.Rows())
	require.Equal(Te, T.Len(), got.Len())
	for k := 0; k < T.Len(); k++ {
		r1, c1, v1 := T.At(k)
		r2, c2, v2 := got.At(k)
		if r1 != r2 || c1 != c2 || v1 != v2 {
			Te.Fatalf("entry %d changed in the roundtrip: (%d,%d,%v) vs (%d,%d,%v)",
				k, r1, c1, v1, r2, c2, v2)
		}
	}
}

//TestRoundtripNoHeader: the header lines are optional.
func TestRoundtripNoHeader(Te *testing.T) {
	T := assembled(Te)
	name := filepath.Join(Te.TempDir(), "bare.ctm")
	require.NoError(Te, Write(name, T))
	got, h, err := Read(name)
	require.NoError(Te, err)
	assert.Empty(Te, h)
	assert.Equal(Te, T.Len(), got.Len())
}

//TestValuePrecision: the 'g'/-1 float formatting must survive values that
//do not have short decimal forms.
func TestValuePrecision(Te *testing.T) {
	T, err := liouville.NewTriplets(liouville.Alloc{MaxElements: 3, MaxRows: 2})
	require.NoError(Te, err)
	require.NoError(Te, T.Append(0, 0, math.Sqrt2*1e9, -1.0/3.0))
	require.NoError(Te, T.Append(0, 1, math.SmallestNonzeroFloat64, math.MaxFloat64))
	require.NoError(Te, T.Append(1, 0, math.Pi, -math.Pi))
	T.SetRows(2)
	name := filepath.Join(Te.TempDir(), "precision.ctm")
	require.NoError(Te, Write(name, T))
	got, _, err := Read(name)
	require.NoError(Te, err)
	require.Equal(Te, 3, got.Len())
	for k := 0; k < 3; k++ {
		_, _, v1 := T.At(k)
		_, _, v2 := got.At(k)
		assert.Equal(Te, v1, v2)
	}
}

//TestMalformed: truncated or corrupted files must fail with this package's
//error type, never with a panic or a silent partial read.
func TestMalformed(Te *testing.T) {
	T := assembled(Te)
	dir := Te.TempDir()
	name := filepath.Join(dir, "good.ctm")
	require.NoError(Te, Write(name, T))

	//not zstd at all
	plain := filepath.Join(dir, "plain.ctm")
	require.NoError(Te, os.WriteFile(plain, []byte("** 2 1\n0 0 1 0\n"), 0644))
	_, _, err := Read(plain)
	assert.Error(Te, err)

	//valid zstd, truncated payload
	raw, err := os.ReadFile(name)
	require.NoError(Te, err)
	trunc := filepath.Join(dir, "trunc.ctm")
	require.NoError(Te, os.WriteFile(trunc, raw[:len(raw)/2], 0644))
	_, _, err = Read(trunc)
	assert.Error(Te, err)

	_, _, err = Read(filepath.Join(dir, "no-such-file.ctm"))
	assert.Error(Te, err)
}

//TestWriteErrors: failures on the way to the file must come back to the
//caller, and a successful Write must leave a complete, closed file that
//reads back immediately.
func TestWriteErrors(Te *testing.T) {
	T := assembled(Te)
	dir := Te.TempDir()
	if err := Write(dir, T); err == nil { //the target is a directory
		Te.Error("writing onto a directory succeeded")
	}
	if err := Write(filepath.Join(dir, "no", "such", "parent.ctm"), T); err == nil {
		Te.Error("writing under a nonexistent parent succeeded")
	}
	name := filepath.Join(dir, "ok.ctm")
	require.NoError(Te, Write(name, T))
	got, _, err := Read(name)
	require.NoError(Te, err)
	assert.Equal(Te, T.Len(), got.Len())
}

//TestWriteNil: a nil matrix is a caller bug, reported with the file name.
func TestWriteNil(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "nil.ctm")
	err := Write(name, nil)
	require.Error(Te, err)
	var cerr *Error
	require.ErrorAs(Te, err, &cerr)
	assert.Equal(Te, name, cerr.FileName())
}
