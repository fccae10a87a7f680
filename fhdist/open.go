/*
 * open.go, part of fluorelax.
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

package fhdist

import (
	"fmt"
	"path/filepath"
	"strings"

	chem "github.com/rmera/gochem"
	"github.com/rmera/gochem/traj/dcd"
	"github.com/rmera/gochem/traj/stf"
)

// Trajectory is a goChem trajectory that may hold an open file.
type Trajectory interface {
	chem.Traj
	Close()
}

// moltraj makes a multi-frame molecule usable as a Trajectory.
type moltraj struct {
	*chem.Molecule
}

func (m moltraj) Close() {}

// Open reads the topology file (PDB or XYZ) and opens the trajectory file.
// The trajectory format is taken from its extension: dcd or stf. If trajectory
// is empty, the frames in the topology file itself are used as the trajectory.
func Open(topology, trajectory string) (*chem.Molecule, Trajectory, error) {
	var mol *chem.Molecule
	var err error
	switch ext(topology) {
	case "pdb", "ent":
		mol, err = chem.PDBFileRead(topology, false)
	case "xyz":
		mol, err = chem.XYZFileRead(topology)
	default:
		return nil, nil, fmt.Errorf("fhdist.Open: unsupported topology format %q", topology)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("fhdist.Open: reading %s: %w", topology, err)
	}
	if trajectory == "" {
		return mol, moltraj{mol}, nil
	}
	var t Trajectory
	switch ext(trajectory) {
	case "dcd":
		t, err = dcd.New(trajectory)
	case "stf":
		t, _, err = stf.New(trajectory)
	default:
		return nil, nil, fmt.Errorf("fhdist.Open: unsupported trajectory format %q", trajectory)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("fhdist.Open: opening %s: %w", trajectory, err)
	}
	if t.Len() != mol.Len() {
		t.Close()
		return nil, nil, fmt.Errorf("fhdist.Open: %s has %d atoms, %s has %d", trajectory, t.Len(), topology, mol.Len())
	}
	return mol, t, nil
}

func ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
