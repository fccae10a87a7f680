/*
 * tensor.go, part of fluorelax.
 *
 * Copyright 2024 The fluorelax authors.
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

package relax

import (
	"fmt"
	"math"
)

// ppm is the conversion from parts per million to a plain fraction.
const ppm = 1e-6

// CSATensor contains the three principal components of a chemical shift
// tensor, in ppm.
type CSATensor struct {
	S11, S22, S33 float64
}

// W4F is the CSA tensor of 4-fluorotryptophan.
var W4F = CSATensor{S11: 11.2, S22: -48.3, S33: -112.8}

func (T CSATensor) String() string {
	return fmt.Sprintf("(%g, %g, %g) ppm", T.S11, T.S22, T.S33)
}

// Anisotropy holds the isotropic shift, the reduced anisotropy (both ppm) and the
// asymmetry parameter of a CSA tensor.
type Anisotropy struct {
	Iso   float64
	Aniso float64
	Eta   float64
}

// Anisotropy derives the reduced anisotropy and asymmetry of the tensor
// with the Haeberlen convention. It returns an error wrapping ErrInvalidTensor
// if s33 equals the isotropic shift, since eta is undefined in that case.
func (T CSATensor) Anisotropy() (Anisotropy, error) {
	for _, v := range []float64{T.S11, T.S22, T.S33} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Anisotropy{}, newError(kindParameter, "CSATensor.Anisotropy", "non-finite tensor component in %v", T)
		}
	}
	iso := (T.S11 + T.S22 + T.S33) / 3
	d := T.S33 - iso
	scale := math.Max(math.Abs(T.S11), math.Max(math.Abs(T.S22), math.Abs(T.S33)))
	if d == 0 || math.Abs(d) <= 1e-12*scale {
		return Anisotropy{}, newError(kindTensor, "CSATensor.Anisotropy", "s33 equals the isotropic shift %g in %v", iso, T)
	}
	return Anisotropy{
		Iso:   iso,
		Aniso: 1.5 * d,
		Eta:   (T.S22 - T.S11) / d,
	}, nil
}

// SpectralDensities are the values of the Lorentzian spectral density
// function at the frequencies probed by 19F relaxation.
type SpectralDensities struct {
	F       float64 // J(omegaF)
	H       float64 // J(omegaH)
	HminusF float64 // J(omegaF-omegaH)
	HplusF  float64 // J(omegaF+omegaH)
}

// Lorentzian returns 1/(1+omega^2 tc^2).
func Lorentzian(omega, tc float64) float64 {
	wt := omega * tc
	return 1 / (1 + wt*wt)
}

func spectralDensities(omegaF, omegaH, tc float64) SpectralDensities {
	return SpectralDensities{
		F:       Lorentzian(omegaF, tc),
		H:       Lorentzian(omegaH, tc),
		HminusF: Lorentzian(omegaF-omegaH, tc),
		HplusF:  Lorentzian(omegaF+omegaH, tc),
	}
}
