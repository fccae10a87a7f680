/*
 * aggregate.go, part of fluorelax.
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

// Strategy selects how the per-proton contributions of one frame are combined.
type Strategy int

const (
	// SumDDPlusCSA adds the DD terms of all the protons in the frame to a
	// single CSA term. This is the default.
	SumDDPlusCSA Strategy = iota
	// AveragePerProton averages the overall R1 and R2 computed for each proton.
	// Superseded, but kept for comparison with older results.
	AveragePerProton
)

func (s Strategy) String() string {
	switch s {
	case SumDDPlusCSA:
		return "sum"
	case AveragePerProton:
		return "average"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "sum", "":
		return SumDDPlusCSA, nil
	case "average", "avg":
		return AveragePerProton, nil
	}
	return 0, newError(kindParameter, "ParseStrategy", "unknown aggregation strategy %q", s)
}

// FrameDistances contains the F-H distances, in Angstrom, found within the
// cutoff in one trajectory frame. Zero and NaN entries mean "no proton" and are skipped.
type FrameDistances struct {
	Index     int
	Distances []float64
}

// FrameResult is the relaxation rates (s^-1) obtained for one frame. Protons is the
// number of distances that contributed; if it is 0, R1 and R2 contain only the CSA terms.
type FrameResult struct {
	Frame   int
	R1, R2  float64
	Protons int
}

// CSAOnly reports whether no proton contributed to the result.
func (F FrameResult) CSAOnly() bool { return F.Protons == 0 }

func (F FrameResult) String() string {
	return fmt.Sprintf("frame: %d R1: %.4f R2: %.4f protons: %d", F.Frame, F.R1, F.R2, F.Protons)
}

func skipDistance(d float64) bool {
	return d == 0 || math.IsNaN(d)
}

// AggregateFrame returns R1 and R2 for a frame with the given F-H distances (Angstrom),
// and the number of distances used. Any distance set in the model is ignored. An
// empty set gives the CSA-only rates.
func AggregateFrame(M *Model, distances []float64, strategy Strategy) (float64, float64, int, error) {
	csa1, csa2 := M.CSAR1(), M.CSAR2()
	var s1, s2 float64
	n := 0
	for _, d := range distances {
		if skipDistance(d) {
			continue
		}
		dd1, dd2, err := M.DDAt(d)
		if err != nil {
			return 0, 0, 0, errDecorate(err, "AggregateFrame")
		}
		s1 += dd1
		s2 += dd2
		n++
	}
	if n == 0 {
		return csa1, csa2, 0, nil
	}
	switch strategy {
	case SumDDPlusCSA:
		return s1 + csa1, s2 + csa2, n, nil
	case AveragePerProton:
		//the mean of (dd_i + csa) over the protons.
		return s1/float64(n) + csa1, s2/float64(n) + csa2, n, nil
	}
	return 0, 0, 0, newError(kindParameter, "AggregateFrame", "unknown aggregation strategy %d", int(strategy))
}

// Aggregate returns the FrameResult for one set of frame distances.
func Aggregate(M *Model, f FrameDistances, strategy Strategy) (FrameResult, error) {
	r1, r2, n, err := AggregateFrame(M, f.Distances, strategy)
	if err != nil {
		return FrameResult{}, errDecorate(err, fmt.Sprintf("Aggregate: frame %d", f.Index))
	}
	return FrameResult{Frame: f.Index, R1: r1, R2: r2, Protons: n}, nil
}
