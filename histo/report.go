/*
 * report.go, part of fluorelax.
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

package histo

import (
	"encoding/json"
	"fmt"
	"os"

	relax "github.com/fluorelax/fluorelax"
)

// Report contains the distributions of R1, R2 and the F-H distances over a trajectory.
// Distances is nil if no proton was ever within the cutoff.
type Report struct {
	R1        *Data `json:"r1"`
	R2        *Data `json:"r2"`
	Distances *Data `json:"distances,omitempty"`
}

// NewReport builds normalized histograms with the given number of bins from
// the results of relax.Process and the distances they were obtained from.
func NewReport(results []relax.FrameResult, frames []relax.FrameDistances, bins int) (*Report, error) {
	r1 := make([]float64, len(results))
	r2 := make([]float64, len(results))
	for i, v := range results {
		r1[i] = v.R1
		r2[i] = v.R2
	}
	var d []float64
	for _, f := range frames {
		d = append(d, f.Distances...)
	}
	var err error
	ret := new(Report)
	if ret.R1, err = Of(r1, bins); err != nil {
		return nil, fmt.Errorf("histo.NewReport: R1: %w", err)
	}
	if ret.R2, err = Of(r2, bins); err != nil {
		return nil, fmt.Errorf("histo.NewReport: R2: %w", err)
	}
	ret.R1.Normalize()
	ret.R2.Normalize()
	if len(d) > 0 {
		if ret.Distances, err = Of(d, bins); err != nil {
			return nil, fmt.Errorf("histo.NewReport: distances: %w", err)
		}
		ret.Distances.Normalize()
	}
	return ret, nil
}

// WriteFile writes the report to name as indented JSON.
func (R *Report) WriteFile(name string) error {
	j, err := json.MarshalIndent(R, "", "  ")
	if err != nil {
		return fmt.Errorf("histo.WriteFile: %w", err)
	}
	if err := os.WriteFile(name, append(j, '\n'), 0o644); err != nil {
		return fmt.Errorf("histo.WriteFile: %w", err)
	}
	return nil
}
