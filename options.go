/*
 * options.go, part of fluorelax.
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

import "runtime"

// DefaultCutoff is the default F-H cutoff radius, in Angstrom.
const DefaultCutoff = 3.0

// Options contains the settings for processing a series of frames.
type Options struct {
	cpus     int
	strategy Strategy
	cutoff   float64
	skip     int
}

// DefaultOptions returns an Options with the default options.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	ret.strategy = SumDDPlusCSA
	ret.cutoff = DefaultCutoff
	ret.skip = 1
	return ret
}

// Cpus returns the number of goroutines used to aggregate frames, and sets it,
// if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

// Strategy returns the aggregation strategy, and sets it, if given.
func (o *Options) Strategy(s ...Strategy) Strategy {
	ret := o.strategy
	if len(s) > 0 {
		o.strategy = s[0]
	}
	return ret
}

// Cutoff returns the F-H cutoff radius in Angstrom, and sets it, if a
// valid value is given.
func (o *Options) Cutoff(cutoff ...float64) float64 {
	ret := o.cutoff
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.cutoff = cutoff[0]
	}
	return ret
}

// Skip returns the stride used when reading trajectory frames, and sets it, if
// a valid value is given. 1 reads every frame.
func (o *Options) Skip(skip ...int) int {
	ret := o.skip
	if len(skip) > 0 && skip[0] > 0 {
		o.skip = skip[0]
	}
	return ret
}
