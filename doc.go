/*
 * doc.go, part of fluorelax.
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

/*
Package relax computes the 19F NMR relaxation rates R1 and R2 of a fluorine
nucleus in a biomolecule, from the dipole-dipole (DD) coupling to nearby protons
and the chemical shift anisotropy (CSA) of the fluorine.


	**What is here**

    Model: DD and CSA contributions to R1 and R2, from the correlation time,
	the static field and the CSA tensor of the fluorine (reduced anisotropy
	and asymmetry are derived with the Haeberlen convention). The DD terms
	need an F-H distance, the CSA terms do not.

    Frame aggregation: the DD terms of every proton within the cutoff in a
	trajectory frame are added to a single CSA term. Frames are processed
	concurrently, and the results keep the frame order.

    Larmor frequencies are derived from the gyromagnetic ratios by default,
	or taken from fixed spectrometer values (LiteratureLarmor).


The F-H distances per frame are obtained from goChem trajectories with the
fhdist package. Results can be written as tab-separated tables with the table
package, and archived in SQLite with the store package.*/
package relax
