/*
 * table.go, part of fluorelax.
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

// Package table writes and reads per-frame relaxation rates as tab-separated
// text: optional "# key=value" metadata lines, a header, and one
// "frame R1 R2" row per frame, with rates in s^-1.
package table

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	relax "github.com/fluorelax/fluorelax"
)

// Header is the column header written before the rows.
var Header = []string{"frame", "R1", "R2"}

// Meta holds the metadata written as comments at the top of a table.
type Meta map[string]string

// RunMeta returns the metadata that identifies how results were obtained with M.
func RunMeta(M *relax.Model, o *relax.Options) Meta {
	wF, wH := M.Omegas()
	t := M.Tensor()
	return Meta{
		"tc":       formatFloat(M.Tc()),
		"magnet":   formatFloat(M.Magnet()),
		"tensor":   fmt.Sprintf("%g,%g,%g", t.S11, t.S22, t.S33),
		"larmor":   M.Larmor().String(),
		"omega_f":  formatFloat(wF),
		"omega_h":  formatFloat(wH),
		"strategy": o.Strategy().String(),
		"cutoff":   formatFloat(o.Cutoff()),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Write writes meta (sorted by key) and results to w.
func Write(w io.Writer, results []relax.FrameResult, meta Meta) error {
	b := bufio.NewWriter(w)
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.ContainsAny(k, "=\n") || strings.Contains(meta[k], "\n") {
			return fmt.Errorf("table.Write: invalid metadata entry %q", k)
		}
		fmt.Fprintf(b, "# %s=%s\n", k, meta[k])
	}
	b.WriteString(strings.Join(Header, "\t") + "\n")
	for _, r := range results {
		b.WriteString(strconv.Itoa(r.Frame))
		b.WriteByte('\t')
		b.WriteString(formatFloat(r.R1))
		b.WriteByte('\t')
		b.WriteString(formatFloat(r.R2))
		b.WriteByte('\n')
	}
	return b.Flush()
}

// Read reads a table written by Write. The header and the metadata are
// optional. Protons is not part of the table, so it is 0 in the results.
func Read(r io.Reader) ([]relax.FrameResult, Meta, error) {
	var ret []relax.FrameResult
	meta := make(Meta)
	s := bufio.NewScanner(r)
	for ln := 1; s.Scan(); ln++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if k, v, ok := strings.Cut(strings.TrimSpace(line[1:]), "="); ok {
				meta[k] = v
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != len(Header) {
			return nil, nil, fmt.Errorf("table.Read: line %d: %d columns, expected %d", ln, len(fields), len(Header))
		}
		if fields[0] == Header[0] {
			continue
		}
		frame, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("table.Read: line %d: %w", ln, err)
		}
		r1, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("table.Read: line %d: %w", ln, err)
		}
		r2, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("table.Read: line %d: %w", ln, err)
		}
		ret = append(ret, relax.FrameResult{Frame: frame, R1: r1, R2: r2})
	}
	if err := s.Err(); err != nil {
		return nil, nil, fmt.Errorf("table.Read: %w", err)
	}
	return ret, meta, nil
}
