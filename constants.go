/*
 * constants.go, part of fluorelax.
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

// Constants holds the physical constants used by a Model. It is a value type:
// a Model keeps its own copy, so changing the constants for one calculation
// (tests do that) does not affect any other.
type Constants struct {
	HBar       float64 // reduced Planck constant, J s
	GammaF     float64 // 19F gyromagnetic ratio, rad s^-1 T^-1
	GammaH     float64 // 1H gyromagnetic ratio, rad s^-1 T^-1
	Mu0Over4Pi float64 // vacuum permeability over 4 pi, T m A^-1
}

// DefaultConstants returns the constants used for all the published fluorelax results.
func DefaultConstants() Constants {
	return Constants{
		HBar:       1.054e-34,
		GammaF:     25.18e7,
		GammaH:     26.75e7,
		Mu0Over4Pi: 1e-7,
	}
}

func (c Constants) check() error {
	for _, v := range []float64{c.HBar, c.GammaF, c.GammaH, c.Mu0Over4Pi} {
		if !(v > 0) || math.IsInf(v, 0) {
			return newError(kindParameter, "Constants.check", "constants must be finite and positive: %+v", c)
		}
	}
	return nil
}

// dipolar returns (mu0/4pi)^2 gF^2 gH^2 hbar^2, the numerator of the DD prefactor.
func (c Constants) dipolar() float64 {
	k := c.Mu0Over4Pi * c.GammaF * c.GammaH * c.HBar
	return k * k
}

// LarmorMode tells how the Larmor frequencies of a Model are obtained.
type LarmorMode int

const (
	// LarmorGamma derives omega = gamma * B0.
	LarmorGamma LarmorMode = iota
	// LarmorLiterature uses fixed spectrometer frequencies, in MHz.
	LarmorLiterature
)

func (m LarmorMode) String() string {
	switch m {
	case LarmorGamma:
		return "gamma"
	case LarmorLiterature:
		return "literature"
	}
	return fmt.Sprintf("LarmorMode(%d)", int(m))
}

// ParseLarmorMode is the inverse of LarmorMode.String.
func ParseLarmorMode(s string) (LarmorMode, error) {
	switch s {
	case "gamma", "":
		return LarmorGamma, nil
	case "literature", "lit":
		return LarmorLiterature, nil
	}
	return 0, newError(kindParameter, "ParseLarmorMode", "unknown Larmor mode %q", s)
}

// Larmor selects the Larmor frequencies of a Model. NuF and NuH (MHz)
// are only read in LarmorLiterature mode.
type Larmor struct {
	Mode     LarmorMode
	NuF, NuH float64
}

// GammaLarmor returns the default, gamma-derived, Larmor setting.
func GammaLarmor() Larmor {
	return Larmor{Mode: LarmorGamma}
}

// LiteratureMagnet is the static field, in T, of the spectrometer LiteratureLarmor describes.
const LiteratureMagnet = 14.1

// LiteratureLarmor returns the instrument frequencies of a 600 MHz (14.1 T) spectrometer.
func LiteratureLarmor() Larmor {
	return Larmor{Mode: LarmorLiterature, NuF: 564.6, NuH: 600.1}
}

// omegas returns the angular Larmor frequencies (rad/s) of 19F and 1H.
func (l Larmor) omegas(magnet float64, c Constants) (float64, float64, error) {
	switch l.Mode {
	case LarmorGamma:
		return c.GammaF * magnet, c.GammaH * magnet, nil
	case LarmorLiterature:
		if !(l.NuF > 0) || !(l.NuH > 0) || math.IsInf(l.NuF, 0) || math.IsInf(l.NuH, 0) {
			return 0, 0, newError(kindParameter, "Larmor.omegas", "literature frequencies must be positive, got F: %g MHz H: %g MHz", l.NuF, l.NuH)
		}
		return 2 * math.Pi * l.NuF * 1e6, 2 * math.Pi * l.NuH * 1e6, nil
	}
	return 0, 0, newError(kindParameter, "Larmor.omegas", "unknown Larmor mode %d", int(l.Mode))
}

func (l Larmor) String() string {
	if l.Mode == LarmorLiterature {
		return fmt.Sprintf("literature(F=%g MHz, H=%g MHz)", l.NuF, l.NuH)
	}
	return l.Mode.String()
}
