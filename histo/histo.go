/*
 * histo.go, part of fluorelax.
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

// Package histo builds histograms of per-frame quantities, such as relaxation
// rates or F-H distances, over a trajectory.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. Bin i counts the values v with dividers[i] <= v < dividers[i+1].
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
// rawdata is not modified.
func NewData(dividers []float64, rawdata []float64) (*Data, error) {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		return nil, fmt.Errorf("histo.NewData: at least 2 increasing dividers are needed, got %v", dividers)
	}
	d := new(Data)
	//a copy, so nobody changes it from outside
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.rehisto(rawdata)
	}
	return d, nil
}

// Uniform returns bins+1 evenly spaced dividers spanning all values in data.
// The last divider is nudged up so the maximum falls in the last bin.
func Uniform(data []float64, bins int) ([]float64, error) {
	if bins < 1 {
		return nil, fmt.Errorf("histo.Uniform: need at least one bin, got %d", bins)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("histo.Uniform: no data")
	}
	lo, hi := floats.Min(data), floats.Max(data)
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("histo.Uniform: data must be finite")
	}
	if lo == hi {
		//a single value gets a unit-wide range around it
		lo, hi = lo-0.5, hi+0.5
	}
	div := floats.Span(make([]float64, bins+1), lo, hi)
	//Span can round the last divider back to hi, so the nudge goes after it.
	div[bins] = math.Nextafter(hi, math.Inf(1))
	return div, nil
}

// Of returns a histogram of data with bins evenly spaced bins covering all of it.
func Of(data []float64, bins int) (*Data, error) {
	div, err := Uniform(data, bins)
	if err != nil {
		return nil, err
	}
	return NewData(div, data)
}

// AddData adds the given data point(s) to the histogram. Values outside the
// dividers are omitted.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if v < D.dividers[0] || v >= D.dividers[last] || math.IsNaN(v) {
			continue
		}
		//first divider larger than v
		j := sort.Search(len(D.dividers), func(i int) bool { return D.dividers[i] > v })
		D.histo[j-1]++
		D.total++
	}
	//if it was normalized, we return it to that state
	if norma {
		D.Normalize()
	}
}

// Total returns the number of values counted.
func (D *Data) Total() int {
	return D.total
}

// Normalized returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize scales the bins so they add up to 1.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize returns the bins to counts.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

// Dividers returns a copy of the dividers of the histogram.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// View returns the bins of the histogram. They are not copied.
func (D *Data) View() []float64 {
	return D.histo
}

// Sum returns the sum of all bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// Mode returns the center of the fullest bin.
func (D *Data) Mode() float64 {
	i := floats.MaxIdx(D.histo)
	return (D.dividers[i] + D.dividers[i+1]) / 2
}

func (D *Data) rehisto(rawdata []float64) {
	data := make([]float64, 0, len(rawdata))
	last := D.dividers[len(D.dividers)-1]
	//stat.Histogram panics instead of omitting the values that are off limits,
	//so we remove them here before the call.
	for _, v := range rawdata {
		if v >= D.dividers[0] && v < last {
			data = append(data, v)
		}
	}
	sort.Float64s(data)
	D.total = len(data)
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}

// String prints a -hopefully- pretty representation of the histogram,
// in 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("Normalized: %v, TotalData: %d\n", D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%.4g-%.4g", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + strings.Join(d, " ") + "\n" + strings.Join(h, " ")
}

type jsonData struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) < 2 || !sort.Float64sAreSorted(a.Dividers) {
		return fmt.Errorf("histo: at least 2 increasing dividers are needed, got %v", a.Dividers)
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}
