/*
 * table_test.go, part of fluorelax.
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

package table

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	relax "github.com/fluorelax/fluorelax"
)

func sampleResults() []relax.FrameResult {
	return []relax.FrameResult{
		{Frame: 0, R1: 0.8441033129, R2: 111.85873},
		{Frame: 10, R1: 1.0 / 3.0, R2: math.Pi * 1e2},
		{Frame: 20, R1: 0.18739236755634675, R2: 105.9319726399391},
		{Frame: 30, R1: 4.9e-324, R2: 1.7976931348623157e308},
	}
}

func TestRoundTrip(Te *testing.T) {
	var buf bytes.Buffer
	meta := Meta{"larmor": "literature(F=564.6 MHz, H=600.1 MHz)", "tc": "8.2e-09"}
	if err := Write(&buf, sampleResults(), meta); err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "# larmor=literature(F=564.6 MHz, H=600.1 MHz)" || lines[2] != "frame\tR1\tR2" {
		Te.Errorf("unexpected table start:\n%s", buf.String())
	}
	got, gotmeta, err := Read(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(sampleResults(), got); diff != "" {
		Te.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(meta, gotmeta); diff != "" {
		Te.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestReadWithoutHeader(Te *testing.T) {
	got, meta, err := Read(strings.NewReader("0 1.5 20\n\n1\t2.5\t30\n"))
	if err != nil {
		Te.Fatal(err)
	}
	want := []relax.FrameResult{{Frame: 0, R1: 1.5, R2: 20}, {Frame: 1, R1: 2.5, R2: 30}}
	if diff := cmp.Diff(want, got); diff != "" || len(meta) != 0 {
		Te.Errorf("mismatch (-want +got):\n%s %v", diff, meta)
	}
	for _, bad := range []string{"0 1.5\n", "x 1 2\n", "0 a 2\n", "0 1 b\n"} {
		if _, _, err := Read(strings.NewReader(bad)); err == nil {
			Te.Errorf("expected an error for %q", bad)
		}
	}
	if err := Write(&bytes.Buffer{}, nil, Meta{"a=b": "c"}); err == nil {
		Te.Errorf("expected an error for an invalid metadata key")
	}
}

func TestCompressedFiles(Te *testing.T) {
	dir := Te.TempDir()
	for _, name := range []string{"rates.tsv", "rates.tsv.gz", "rates.tsv.zst"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, sampleResults(), Meta{"strategy": "sum"}); err != nil {
			Te.Fatal(err)
		}
		got, meta, err := ReadFile(path)
		if err != nil {
			Te.Fatal(err)
		}
		if diff := cmp.Diff(sampleResults(), got); diff != "" {
			Te.Errorf("%s: mismatch (-want +got):\n%s", name, diff)
		}
		if meta["strategy"] != "sum" {
			Te.Errorf("%s: metadata lost: %v", name, meta)
		}
	}
	if _, _, err := ReadFile(filepath.Join(dir, "missing.tsv")); err == nil {
		Te.Errorf("expected an error for a missing file")
	}
}

func TestRunMeta(Te *testing.T) {
	o := relax.DefaultModelOptions()
	o.Larmor(relax.LiteratureLarmor())
	m, err := relax.NewModel(8.2e-9, 14.1, relax.W4F, o)
	if err != nil {
		Te.Fatal(err)
	}
	meta := RunMeta(m, relax.DefaultOptions())
	want := map[string]string{
		"tc":       "8.2e-09",
		"magnet":   "14.1",
		"tensor":   "11.2,-48.3,-112.8",
		"larmor":   "literature(F=564.6 MHz, H=600.1 MHz)",
		"strategy": "sum",
		"cutoff":   "3",
	}
	for k, v := range want {
		if meta[k] != v {
			Te.Errorf("%s: got %q, want %q", k, meta[k], v)
		}
	}
}
