/*
 * process.go, part of fluorelax.
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
	"context"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Process aggregates every frame in frames, using o.Cpus() goroutines. The results are
// returned in the same order as frames. Cancellation of ctx is checked between
// frames; in that case the context's error is returned.
func Process(ctx context.Context, M *Model, frames []FrameDistances, options ...*Options) ([]FrameResult, error) {
	o := DefaultOptions()
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	}
	ret := make([]FrameResult, len(frames))
	if len(frames) == 0 {
		return ret, nil
	}
	workers := o.Cpus()
	if workers > len(frames) {
		workers = len(frames)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firsterr error
	)
	fail := func(err error) {
		once.Do(func() {
			firsterr = err
			cancel()
		})
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				//every goroutine writes to its own element of ret, no locking needed.
				r, err := Aggregate(M, frames[i], o.Strategy())
				if err != nil {
					fail(err)
					continue
				}
				ret[i] = r
			}
		}()
	}
feed:
	for i := range frames {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if firsterr != nil {
		return nil, firsterr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Summary contains the mean and standard deviation of R1 and R2 over a series of frames.
type Summary struct {
	N             int
	MeanR1, StdR1 float64
	MeanR2, StdR2 float64
	CSAOnlyFrames int
}

func (S Summary) String() string {
	return fmt.Sprintf("frames: %d R1: %.4f +/- %.4f s^-1 R2: %.4f +/- %.4f s^-1 (CSA-only frames: %d)", S.N, S.MeanR1, S.StdR1, S.MeanR2, S.StdR2, S.CSAOnlyFrames)
}

// Summarize returns the mean and (unbiased) standard deviation of R1 and R2
// in results. The standard deviations are 0 for fewer than 2 frames.
func Summarize(results []FrameResult) Summary {
	s := Summary{N: len(results)}
	if s.N == 0 {
		return s
	}
	r1 := make([]float64, s.N)
	r2 := make([]float64, s.N)
	for i, v := range results {
		r1[i] = v.R1
		r2[i] = v.R2
		if v.CSAOnly() {
			s.CSAOnlyFrames++
		}
	}
	if s.N == 1 {
		s.MeanR1, s.MeanR2 = r1[0], r2[0]
		return s
	}
	s.MeanR1, s.StdR1 = stat.MeanStdDev(r1, nil)
	s.MeanR2, s.StdR2 = stat.MeanStdDev(r2, nil)
	return s
}
