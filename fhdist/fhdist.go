/*
 * fhdist.go, part of fluorelax.
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

// Package fhdist obtains, for each frame of a goChem trajectory, the distances between a fluorine
// atom and the protons found within a cutoff radius of it.
package fhdist

import (
	"fmt"
	"log"
	"math"
	"strings"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"

	relax "github.com/fluorelax/fluorelax"
)

// Selection contains the index of the fluorine atom and the indexes of
// the candidate protons in a topology.
type Selection struct {
	Fluorine int
	Protons  []int
}

// Select returns the fluorine and protons in mol whose names start with
// fluorine and proton, respectively (i.e. "name F*" and "name H*"). Atoms without
// a name are matched by their symbol. If several fluorines match, the first one is used.
func Select(mol chem.Atomer, fluorine, proton string) (*Selection, error) {
	var fs []int
	ret := &Selection{Fluorine: -1}
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		name := strings.TrimSpace(at.Name)
		if name == "" {
			name = at.Symbol //xyz files only give the element.
		}
		switch {
		case strings.HasPrefix(name, fluorine):
			fs = append(fs, i)
		case strings.HasPrefix(name, proton):
			ret.Protons = append(ret.Protons, i)
		}
	}
	if len(fs) == 0 {
		return nil, fmt.Errorf("fhdist.Select: no atom named %s* in the topology", fluorine)
	}
	if len(fs) > 1 {
		log.Printf("fhdist.Select: %d atoms match %s*, only atom %d will be used", len(fs), fluorine, fs[0])
	}
	ret.Fluorine = fs[0]
	return ret, nil
}

// FrameDistances returns the distances, in the units of coords (goChem uses
// Angstrom), between the selected fluorine and each selected proton closer than
// cutoff. The distances follow the order of sel.Protons.
func FrameDistances(coords *v3.Matrix, sel *Selection, cutoff float64) []float64 {
	ret := make([]float64, 0, 8)
	temp := v3.Zeros(1)
	f := coords.VecView(sel.Fluorine)
	for _, h := range sel.Protons {
		d := dist(f, coords.VecView(h), temp)
		if d < cutoff && !math.IsNaN(d) {
			ret = append(ret, d)
		}
	}
	return ret
}

// Series reads traj until its end and returns the F-H distances within cutoff
// for every skip-th frame, starting with the first. Frame indexes count all the
// frames in the trajectory, including the skipped ones.
func Series(traj chem.Traj, sel *Selection, cutoff float64, skip int) ([]relax.FrameDistances, error) {
	if skip < 1 {
		skip = 1
	}
	if !traj.Readable() {
		return nil, fmt.Errorf("fhdist.Series: trajectory is not readable")
	}
	if err := sel.check(traj.Len()); err != nil {
		return nil, err
	}
	ret := make([]relax.FrameDistances, 0, 100)
	coords := v3.Zeros(traj.Len())
	for i := 0; ; i++ {
		err := traj.Next(coords)
		if err != nil {
			if _, ok := err.(chem.LastFrameError); ok {
				break
			}
			return nil, fmt.Errorf("fhdist.Series: frame %d: %w", i, err)
		}
		if i%skip != 0 {
			continue
		}
		ret = append(ret, relax.FrameDistances{Index: i, Distances: FrameDistances(coords, sel, cutoff)})
	}
	return ret, nil
}

func (S *Selection) check(natoms int) error {
	if S.Fluorine < 0 || S.Fluorine >= natoms {
		return fmt.Errorf("fhdist: fluorine index %d out of range for %d atoms", S.Fluorine, natoms)
	}
	for _, h := range S.Protons {
		if h < 0 || h >= natoms {
			return fmt.Errorf("fhdist: proton index %d out of range for %d atoms", h, natoms)
		}
	}
	return nil
}

// dist returns the distance between the row vectors r and t. temp is
// overwritten.
func dist(r, t, temp *v3.Matrix) float64 {
	temp.Sub(r, t)
	return temp.Norm(2)
}
