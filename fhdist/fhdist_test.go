/*
 * fhdist_test.go, part of fluorelax.
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
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"

	relax "github.com/fluorelax/fluorelax"
)

type atoms []*chem.Atom

func (a atoms) Atom(i int) *chem.Atom { return a[i] }
func (a atoms) Len() int { return len(a) }

type lastFrame struct{}

func (lastFrame) Error() string { return "EOF" }
func (lastFrame) Decorate(string) []string { return nil }
func (lastFrame) Critical() bool { return false }
func (lastFrame) FileName() string { return "" }
func (lastFrame) Format() string { return "test" }
func (lastFrame) NormalLastFrameTermination() {}

// frames is an in-memory trajectory.
type frames struct {
	natoms  int
	data    [][]float64
	current int
	fail    int // frame at which an error is returned, -1 for none.
}

func (f *frames) Readable() bool { return true }
func (f *frames) Len() int { return f.natoms }
func (f *frames) Next(out *v3.Matrix, box ...[]float64) error {
	if f.current == f.fail {
		return errors.New("corrupted frame")
	}
	if f.current >= len(f.data) {
		return lastFrame{}
	}
	for i := 0; i < f.natoms; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, f.data[f.current][3*i+j])
		}
	}
	f.current++
	return nil
}

// A carbon, a fluorine at the origin, and 3 protons, one on each axis.
var testAtoms = atoms{
	{Name: "CE2", Symbol: "C"},
	{Name: "F", Symbol: "F"},
	{Name: "HE1", Symbol: "H"},
	{Name: "HZ2", Symbol: "H"},
	{Name: "H", Symbol: "H"},
}

func testFrame(h1, h2, h3 float64) []float64 {
	return []float64{
		1.3, 0, 0,
		0, 0, 0,
		h1, 0, 0,
		0, h2, 0,
		0, 0, h3,
	}
}

func TestSelect(Te *testing.T) {
	sel, err := Select(testAtoms, "F", "H")
	if err != nil {
		Te.Fatal(err)
	}
	want := &Selection{Fluorine: 1, Protons: []int{2, 3, 4}}
	if diff := cmp.Diff(want, sel); diff != "" {
		Te.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	bySymbol := atoms{{Symbol: "H"}, {Symbol: "F"}}
	sel, err = Select(bySymbol, "F", "H")
	if err != nil || sel.Fluorine != 1 || len(sel.Protons) != 1 {
		Te.Errorf("selection by symbol: %v %v", sel, err)
	}
	if _, err := Select(atoms{{Name: "CA"}}, "F", "H"); err == nil {
		Te.Errorf("expected an error for a topology without fluorine")
	}
}

func TestFrameDistances(Te *testing.T) {
	coords, err := v3.NewMatrix(testFrame(2.0, -2.9, 4.5))
	if err != nil {
		Te.Fatal(err)
	}
	sel := &Selection{Fluorine: 1, Protons: []int{2, 3, 4}}
	got := FrameDistances(coords, sel, relax.DefaultCutoff)
	if diff := cmp.Diff([]float64{2.0, 2.9}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("distances mismatch (-want +got):\n%s", diff)
	}
	if got := FrameDistances(coords, sel, 1.5); len(got) != 0 {
		Te.Errorf("no proton within 1.5 A, got %v", got)
	}
	//fluorine off the origin, proton displaced along the three axes.
	coords, err = v3.NewMatrix([]float64{
		1, 1, 1,
		1.3, 1.4, 2.2,
	})
	if err != nil {
		Te.Fatal(err)
	}
	got = FrameDistances(coords, &Selection{Fluorine: 0, Protons: []int{1}}, relax.DefaultCutoff)
	if diff := cmp.Diff([]float64{1.3}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("3D distance mismatch (-want +got):\n%s", diff)
	}
	if coords.At(0, 2) != 1 || coords.At(1, 2) != 2.2 {
		Te.Errorf("coordinates modified: %v", coords)
	}
}

func TestSeries(Te *testing.T) {
	traj := &frames{natoms: 5, fail: -1, data: [][]float64{
		testFrame(2, 2.5, 9),
		testFrame(9, 9, 9),
		testFrame(2.2, 9, 2.8),
		testFrame(1.1, 1.2, 1.3),
		testFrame(2.4, 9, 9),
	}}
	sel := &Selection{Fluorine: 1, Protons: []int{2, 3, 4}}
	got, err := Series(traj, sel, 3, 2)
	if err != nil {
		Te.Fatal(err)
	}
	want := []relax.FrameDistances{
		{Index: 0, Distances: []float64{2, 2.5}},
		{Index: 2, Distances: []float64{2.2, 2.8}},
		{Index: 4, Distances: []float64{2.4}},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		Te.Errorf("series mismatch (-want +got):\n%s", diff)
	}
	traj = &frames{natoms: 5, fail: 1, data: [][]float64{testFrame(2, 2, 2), testFrame(2, 2, 2)}}
	if _, err := Series(traj, sel, 3, 1); err == nil {
		Te.Errorf("expected the corrupted frame error")
	}
	if _, err := Series(&frames{natoms: 2, fail: -1}, sel, 3, 1); err == nil {
		Te.Errorf("expected an out of range selection error")
	}
}

// The whole chain, from an XYZ file to the relaxation rates.
func TestXYZToRates(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "w4f.xyz")
	xyz := "3\nframe 0\nF 0.0 0.0 0.0\nH 2.3 0.0 0.0\nC 1.3 0.0 0.0\n" +
		"3\nframe 1\nF 0.0 0.0 0.0\nH 5.0 0.0 0.0\nC 1.3 0.0 0.0\n"
	if err := os.WriteFile(name, []byte(xyz), 0o644); err != nil {
		Te.Fatal(err)
	}
	mol, traj, err := Open(name, "")
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	sel, err := Select(mol, "F", "H")
	if err != nil {
		Te.Fatal(err)
	}
	series, err := Series(traj, sel, relax.DefaultCutoff, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if len(series) != 2 {
		Te.Fatalf("expected 2 frames, got %d", len(series))
	}
	o := relax.DefaultModelOptions()
	o.Larmor(relax.LiteratureLarmor())
	m, err := relax.NewModel(8.2e-9, 14.1, relax.W4F, o)
	if err != nil {
		Te.Fatal(err)
	}
	res, err := relax.Process(context.Background(), m, series)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(res[0].R1-0.8441) > 1e-3 || math.Abs(res[0].R2-111.8587)/111.8587 > 1e-3 {
		Te.Errorf("frame 0: %v", res[0])
	}
	if !res[1].CSAOnly() || res[1].R1 != m.CSAR1() {
		Te.Errorf("frame 1 should be CSA only: %v", res[1])
	}
	if _, _, err := Open(filepath.Join(Te.TempDir(), "x.gro"), ""); err == nil {
		Te.Errorf("expected an unsupported format error")
	}
	if _, _, err := Open(name, "traj.nc"); err == nil {
		Te.Errorf("expected an unsupported trajectory format error")
	}
}
