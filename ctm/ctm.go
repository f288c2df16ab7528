/*
 * ctm.go, part of gospin.
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

//Package ctm implements the compressed triplet-matrix format: a
//z-standard compressed text serialization of an assembled
//stochastic-Liouville matrix. An assembled matrix is the one artifact of
//a simulation worth keeping around (re-solving a sweep with different
//broadening, say, without paying the assembly again), and for large bases
//it compresses very well: the index columns are monotone and the values
//heavily repeated.
//
//The format is line-oriented inside the compressed stream: optional
//key=value header lines, one "** nRows nElements" line, then one
//"row col re im" line per entry, in storage order.
package ctm

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/rmera/gospin/liouville"
)

//Error is the concrete error type of this package. It implements the
//spin.Error interface.
type Error struct {
	message  string
	filename string //the file with problems, or an empty string
	deco     []string
}

func (err *Error) Error() string {
	if err.filename == "" {
		return err.message
	}
	return fmt.Sprintf("%s (file %s)", err.message, err.filename)
}

//Decorate adds the caller dec to the decoration slice, unless dec is
//empty, and returns the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the name of the file the error refers to.
func (err *Error) FileName() string { return err.filename }

//Write serializes T to name. The optional header map is written as
//key=value lines before the data; only the first map is read.
func Write(name string, T *liouville.Triplets, header ...map[string]string) error {
	if T == nil {
		return &Error{"goSpin: nil triplets", name, []string{"Write"}}
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	h, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return &Error{"goSpin: can't open zstd stream: " + err.Error(), name, []string{"Write"}}
	}
	w := bufio.NewWriter(h)
	if len(header) > 0 {
		for k, v := range header[0] {
			fmt.Fprintf(w, "%s=%s\n", k, v)
		}
	}
	fmt.Fprintf(w, "** %d %d\n", T.Rows(), T.Len())
	ridx, cidx := T.RowIdx(), T.ColIdx()
	re, im := T.Re(), T.Im()
	for k := 0; k < T.Len(); k++ {
		fmt.Fprintf(w, "%d %d %s %s\n", ridx[k], cidx[k],
			strconv.FormatFloat(re[k], 'g', -1, 64),
			strconv.FormatFloat(im[k], 'g', -1, 64))
	}
	//write errors are sticky in the bufio writer and surface here; the
	//closes flush the zstd frame and the file and must not be lost
	if err := w.Flush(); err != nil {
		h.Close()
		f.Close()
		return &Error{"goSpin: " + err.Error(), name, []string{"Write"}}
	}
	if err := h.Close(); err != nil {
		f.Close()
		return &Error{"goSpin: " + err.Error(), name, []string{"Write"}}
	}
	if err := f.Close(); err != nil {
		return &Error{"goSpin: " + err.Error(), name, []string{"Write"}}
	}
	return nil
}

//Read deserializes a matrix written by Write. The returned header map
//holds any key=value lines found (possibly empty).
func Read(name string) (*liouville.Triplets, map[string]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	d, err := zstd.NewReader(f)
	if err != nil {
		return nil, nil, &Error{"goSpin: can't open zstd stream: " + err.Error(), name, []string{"Read"}}
	}
	defer d.Close()
	T, header, err := read(bufio.NewReader(d), name)
	if err != nil {
		return nil, nil, err
	}
	return T, header, nil
}

func read(r *bufio.Reader, name string) (*liouville.Triplets, map[string]string, error) {
	header := make(map[string]string)
	var rows, elements int
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, nil, &Error{"goSpin: no dimension line: " + err.Error(), name, []string{"Read"}}
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "** ") {
			if _, err := fmt.Sscanf(line, "** %d %d", &rows, &elements); err != nil {
				return nil, nil, &Error{"goSpin: malformed dimension line " + line, name, []string{"Read"}}
			}
			break
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			return nil, nil, &Error{"goSpin: unexpected line before dimensions: " + line, name, []string{"Read"}}
		}
		header[k] = v
	}
	alloc := liouville.Alloc{MaxElements: elements, MaxRows: rows}
	if elements == 0 {
		alloc.MaxElements = 1 //a valid, if pointless, empty matrix
	}
	if rows == 0 {
		alloc.MaxRows = 1
	}
	T, err := liouville.NewTriplets(alloc)
	if err != nil {
		return nil, nil, err
	}
	T.SetRows(rows)
	for k := 0; k < elements; k++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, nil, &Error{fmt.Sprintf("goSpin: truncated data, entry %d of %d: %s", k, elements, err.Error()), name, []string{"Read"}}
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, nil, &Error{"goSpin: malformed entry: " + line, name, []string{"Read"}}
		}
		ri, err1 := strconv.Atoi(fields[0])
		ci, err2 := strconv.Atoi(fields[1])
		re, err3 := strconv.ParseFloat(fields[2], 64)
		im, err4 := strconv.ParseFloat(fields[3], 64)
		for _, err := range []error{err1, err2, err3, err4} {
			if err != nil {
				return nil, nil, &Error{"goSpin: malformed entry: " + line, name, []string{"Read"}}
			}
		}
		if ri < 0 || ri >= rows || ci < 0 || ci >= rows {
			return nil, nil, &Error{fmt.Sprintf("goSpin: index out of range in entry %s (dimension %d)", line, rows), name, []string{"Read"}}
		}
		if err := T.Append(ri, ci, re, im); err != nil {
			return nil, nil, err
		}
	}
	return T, header, nil
}
