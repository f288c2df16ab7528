/*
 * input.go, part of gospin.
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

//input.go reads the whole parameter bundle for one simulation from a YAML
//file. The file mirrors the three logical parameter groups: system,
//diffusion and basis. This is configuration, not a molecular file format:
//the numbers are expected to come from the caller's own parameter
//preparation (tensor transformations, unit conversions and so on).

package spin

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rmera/gospin/basis"
)

//Params is the full input bundle for one matrix assembly, as read from a
//parameter file.
type Params struct {
	System    *System
	Diffusion *Diffusion
	Basis     *basis.Bounds
}

//tensor2 is the YAML shape of a rank-2 ISTO: five real and, optionally,
//five imaginary components, indexed m+2.
type tensor2 struct {
	Re []float64 `yaml:"re"`
	Im []float64 `yaml:"im"`
}

func (t *tensor2) components(name string) ([5]complex128, error) {
	var c [5]complex128
	if t.Re == nil && t.Im == nil {
		return c, nil
	}
	if t.Re != nil && len(t.Re) != 5 {
		return c, fmt.Errorf("goSpin: %s: rank-2 tensor needs 5 real components, got %d", name, len(t.Re))
	}
	if t.Im != nil && len(t.Im) != 5 {
		return c, fmt.Errorf("goSpin: %s: rank-2 tensor needs 5 imaginary components, got %d", name, len(t.Im))
	}
	for i := 0; i < 5; i++ {
		re, im := 0.0, 0.0
		if t.Re != nil {
			re = t.Re[i]
		}
		if t.Im != nil {
			im = t.Im[i]
		}
		c[i] = complex(re, im)
	}
	return c, nil
}

type systemIn struct {
	I       float64 `yaml:"i"`
	Ib      float64 `yaml:"ib"`
	EZI0    float64 `yaml:"ezi0"`
	EZI2    tensor2 `yaml:"ezi2"`
	NZI0    float64 `yaml:"nzi0"`
	HFI0    float64 `yaml:"hfi0"`
	HFI2    tensor2 `yaml:"hfi2"`
	NZI0b   float64 `yaml:"nzi0b"`
	HFI0b   float64 `yaml:"hfi0b"`
	HFI2b   tensor2 `yaml:"hfi2b"`
	DirTilt float64 `yaml:"dirtilt"`
}

type diffusionIn struct {
	Rxx      float64     `yaml:"rxx"`
	Ryy      float64     `yaml:"ryy"`
	Rzz      float64     `yaml:"rzz"`
	Exchange float64     `yaml:"exchange"`
	Xlk      [][]float64 `yaml:"xlk"` //omit for no orienting potential
}

type basisIn struct {
	Lemax      int  `yaml:"lemax"`
	Lomax      int  `yaml:"lomax"`
	Kmax       int  `yaml:"kmax"`
	Mmax       int  `yaml:"mmax"`
	JKmin      int  `yaml:"jkmin"`
	PSmin      int  `yaml:"psmin"`
	DeltaK     int  `yaml:"deltak"`
	PImax      int  `yaml:"pimax"`
	PIbmax     int  `yaml:"pibmax"`
	Symmetrize bool `yaml:"symmetrize"`
}

type paramsIn struct {
	System    systemIn    `yaml:"system"`
	Diffusion diffusionIn `yaml:"diffusion"`
	Basis     basisIn     `yaml:"basis"`
}

//ParamsRead reads a YAML parameter file and returns the assembled input
//bundle, with the reduced rotation matrix table filled from the director
//tilt and the basis bounds tied to the system's nuclear spins.
func ParamsRead(name string) (*Params, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := ParamsReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("goSpin: reading %s: %w", name, err)
	}
	return p, nil
}

//ParamsReadFrom is ParamsRead on an arbitrary reader.
func ParamsReadFrom(r io.Reader) (*Params, error) {
	var in paramsIn
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return nil, err
	}
	sys := &System{
		I:     in.System.I,
		Ib:    in.System.Ib,
		EZI0:  in.System.EZI0,
		NZI0:  in.System.NZI0,
		HFI0:  in.System.HFI0,
		NZI0b: in.System.NZI0b,
		HFI0b: in.System.HFI0b,
	}
	var err error
	if sys.EZI2, err = in.System.EZI2.components("ezi2"); err != nil {
		return nil, err
	}
	if sys.HFI2, err = in.System.HFI2.components("hfi2"); err != nil {
		return nil, err
	}
	if sys.HFI2b, err = in.System.HFI2b.components("hfi2b"); err != nil {
		return nil, err
	}
	sys.SetTilt(in.System.DirTilt)
	if err = sys.Validate(); err != nil {
		return nil, errDecorate(err, "ParamsReadFrom")
	}
	diff := &Diffusion{
		Rxx:      in.Diffusion.Rxx,
		Ryy:      in.Diffusion.Ryy,
		Rzz:      in.Diffusion.Rzz,
		Exchange: in.Diffusion.Exchange,
		MaxL:     len(in.Diffusion.Xlk) - 1,
		Xlk:      in.Diffusion.Xlk,
	}
	if err = diff.Validate(); err != nil {
		return nil, errDecorate(err, "ParamsReadFrom")
	}
	b := &basis.Bounds{
		Lemax:  in.Basis.Lemax,
		Lomax:  in.Basis.Lomax,
		Kmax:   in.Basis.Kmax,
		Mmax:   in.Basis.Mmax,
		JKmin:  in.Basis.JKmin,
		PSmin:  in.Basis.PSmin,
		DeltaK: in.Basis.DeltaK,
		PImax:  in.Basis.PImax,
		PIbmax: in.Basis.PIbmax,
		TwoI:   sys.TwoI(),
		TwoIb:  sys.TwoIb(),
		Symm:   in.Basis.Symmetrize && in.System.DirTilt == 0,
	}
	if b.DeltaK == 0 {
		b.DeltaK = 1
	}
	if b.JKmin == 0 {
		b.JKmin = -1
	}
	if err = b.Validate(); err != nil {
		return nil, err
	}
	return &Params{System: sys, Diffusion: diff, Basis: b}, nil
}
