/*
 * model.go, part of fluorelax.
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

// angstrom is the conversion from Angstrom to meters.
const angstrom = 1e-10

// ModelOptions contains the optional settings of a Model. The zero value is
// not useful, use DefaultModelOptions.
type ModelOptions struct {
	constants Constants
	larmor    Larmor
}

// DefaultModelOptions returns the default constants and gamma-derived Larmor frequencies.
func DefaultModelOptions() *ModelOptions {
	return &ModelOptions{constants: DefaultConstants(), larmor: GammaLarmor()}
}

// Constants returns the physical constants to be used, and sets them, if given.
func (o *ModelOptions) Constants(c ...Constants) Constants {
	ret := o.constants
	if len(c) > 0 {
		o.constants = c[0]
	}
	return ret
}

// Larmor returns the Larmor frequency setting, and sets it, if given.
func (o *ModelOptions) Larmor(l ...Larmor) Larmor {
	ret := o.larmor
	if len(l) > 0 {
		o.larmor = l[0]
	}
	return ret
}

// Model evaluates the DD and CSA contributions to the R1 and R2 relaxation
// rates of one 19F nucleus. A Model is immutable once built. The CSA terms never
// need a distance; the DD terms need one, set with WithDistance.
type Model struct {
	tc     float64 // s
	magnet float64 // T
	tensor CSATensor
	c      Constants
	larmor Larmor
	omegaF float64 // rad/s
	omegaH float64 // rad/s
	aniso  Anisotropy
	j      SpectralDensities
	r      float64 // F-H distance in m, 0 if not set
}

// NewModel returns a Model for correlation time tc (s), static field magnet (T) and
// the CSA tensor. Anisotropy and spectral densities are derived right away.
func NewModel(tc, magnet float64, tensor CSATensor, options ...*ModelOptions) (*Model, error) {
	o := DefaultModelOptions()
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	}
	if !(tc > 0) || math.IsInf(tc, 0) {
		return nil, newError(kindParameter, "NewModel", "correlation time must be positive, got %g s", tc)
	}
	if !(magnet > 0) || math.IsInf(magnet, 0) {
		return nil, newError(kindParameter, "NewModel", "static field must be positive, got %g T", magnet)
	}
	if err := o.constants.check(); err != nil {
		return nil, errDecorate(err, "NewModel")
	}
	aniso, err := tensor.Anisotropy()
	if err != nil {
		return nil, errDecorate(err, "NewModel")
	}
	omegaF, omegaH, err := o.larmor.omegas(magnet, o.constants)
	if err != nil {
		return nil, errDecorate(err, "NewModel")
	}
	return &Model{
		tc:     tc,
		magnet: magnet,
		tensor: tensor,
		c:      o.constants,
		larmor: o.larmor,
		omegaF: omegaF,
		omegaH: omegaH,
		aniso:  aniso,
		j:      spectralDensities(omegaF, omegaH, tc),
	}, nil
}

// WithDistance returns a copy of the model with the F-H distance set to d Angstrom.
func (M *Model) WithDistance(d float64) (*Model, error) {
	if !(d > 0) || math.IsInf(d, 0) {
		return nil, newError(kindParameter, "Model.WithDistance", "F-H distance must be positive, got %g A", d)
	}
	ret := *M
	ret.r = d * angstrom
	return &ret, nil
}

// Tc returns the correlation time, in s.
func (M *Model) Tc() float64 { return M.tc }

// Magnet returns the static field, in T.
func (M *Model) Magnet() float64 { return M.magnet }

// Tensor returns the CSA tensor the model was built with.
func (M *Model) Tensor() CSATensor { return M.tensor }

// Anisotropy returns the derived anisotropy parameters.
func (M *Model) Anisotropy() Anisotropy { return M.aniso }

// Constants returns the physical constants used by the model.
func (M *Model) Constants() Constants { return M.c }

// Larmor returns the Larmor setting used by the model.
func (M *Model) Larmor() Larmor { return M.larmor }

// Omegas returns the 19F and 1H angular Larmor frequencies, in rad/s.
func (M *Model) Omegas() (float64, float64) { return M.omegaF, M.omegaH }

// Densities returns the spectral densities.
func (M *Model) Densities() SpectralDensities { return M.j }

// Distance returns the F-H distance in Angstrom, or 0 if it was not set.
func (M *Model) Distance() float64 { return M.r / angstrom }

// ddPrefactor returns (mu0/4pi)^2 gF^2 gH^2 hbar^2 / r^6 * tc.
func (M *Model) ddPrefactor(caller string) (float64, error) {
	if M.r == 0 {
		return 0, newError(kindDistance, caller, "the model has no F-H distance set")
	}
	r3 := M.r * M.r * M.r
	k := M.c.dipolar() / (r3 * r3) * M.tc
	if r3*r3 == 0 || math.IsInf(k, 0) {
		return 0, newError(kindParameter, caller, "F-H distance of %g A is too small", M.r/angstrom)
	}
	return k, nil
}

// DDR1 returns the dipole-dipole contribution to R1, in s^-1.
func (M *Model) DDR1() (float64, error) {
	k, err := M.ddPrefactor("Model.DDR1")
	if err != nil {
		return 0, err
	}
	return k / 10 * (3*M.j.F + M.j.HminusF + 6*M.j.HplusF), nil
}

// DDR2 returns the dipole-dipole contribution to R2, in s^-1.
func (M *Model) DDR2() (float64, error) {
	k, err := M.ddPrefactor("Model.DDR2")
	if err != nil {
		return 0, err
	}
	return k / 20 * (4 + 3*M.j.F + 6*M.j.H + M.j.HminusF + 6*M.j.HplusF), nil
}

// csaPrefactor returns (2/15) aniso^2 (1+eta^2/3) omegaF^2 tc, with aniso
// as a fraction.
func (M *Model) csaPrefactor() float64 {
	a := M.aniso.Aniso * ppm
	return 2.0 / 15.0 * a * a * (1 + M.aniso.Eta*M.aniso.Eta/3) * M.omegaF * M.omegaF * M.tc
}

// CSAR1 returns the CSA contribution to R1, in s^-1.
func (M *Model) CSAR1() float64 {
	return M.csaPrefactor() * M.j.F
}

// CSAR2 returns the CSA contribution to R2, in s^-1.
func (M *Model) CSAR2() float64 {
	return M.csaPrefactor() * (2.0/3.0 + M.j.F/2)
}

// Overall returns R1 and R2 as the sum of their DD and CSA contributions.
func (M *Model) Overall() (float64, float64, error) {
	dd1, err := M.DDR1()
	if err != nil {
		return 0, 0, errDecorate(err, "Model.Overall")
	}
	dd2, err := M.DDR2()
	if err != nil {
		return 0, 0, errDecorate(err, "Model.Overall")
	}
	return dd1 + M.CSAR1(), dd2 + M.CSAR2(), nil
}

// DDAt returns the DD contributions to R1 and R2 for an F-H distance of d Angstrom.
func (M *Model) DDAt(d float64) (float64, float64, error) {
	m, err := M.WithDistance(d)
	if err != nil {
		return 0, 0, errDecorate(err, "Model.DDAt")
	}
	dd1, _ := m.DDR1() // can't fail, the distance is set.
	dd2, _ := m.DDR2()
	return dd1, dd2, nil
}

// OverallAt returns R1 and R2 for an F-H distance of d Angstrom.
func (M *Model) OverallAt(d float64) (float64, float64, error) {
	m, err := M.WithDistance(d)
	if err != nil {
		return 0, 0, errDecorate(err, "Model.OverallAt")
	}
	return m.Overall()
}

func (M *Model) String() string {
	ret := fmt.Sprintf("tc: %g s B0: %g T tensor: %v aniso: %.4g ppm eta: %.4g larmor: %v", M.tc, M.magnet, M.tensor, M.aniso.Aniso, M.aniso.Eta, M.larmor)
	if M.r != 0 {
		ret += fmt.Sprintf(" r: %g A", M.Distance())
	}
	return ret
}
