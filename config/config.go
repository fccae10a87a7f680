/*
 * config.go, part of fluorelax.
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

// Package config reads the JSON run configuration of fluorelax.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	relax "github.com/fluorelax/fluorelax"
)

// Systems contains the CSA tensors of the chemical systems known by name.
var Systems = map[string]relax.CSATensor{
	"w4f": relax.W4F, //4-fluorotryptophan
}

// SystemNames returns the names in Systems, sorted.
func SystemNames() []string {
	ret := make([]string, 0, len(Systems))
	for k := range Systems {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Larmor is the JSON form of relax.Larmor.
type Larmor struct {
	Mode string  `json:"mode,omitempty"` // "gamma" (default) or "literature"
	NuF  float64 `json:"nu_f,omitempty"` // MHz
	NuH  float64 `json:"nu_h,omitempty"` // MHz
}

// Config contains the settings of a relaxation run. Either System or Tensor
// must be given; Tensor takes precedence.
type Config struct {
	Tc       float64     `json:"tc"`     // s
	Magnet   float64     `json:"magnet"` // T
	System   string      `json:"system,omitempty"`
	Tensor   *[3]float64 `json:"tensor,omitempty"` // s11, s22, s33 in ppm
	Cutoff   float64     `json:"cutoff,omitempty"` // A
	Larmor   Larmor      `json:"larmor"`
	Strategy string      `json:"strategy,omitempty"`
	Cpus     int         `json:"cpus,omitempty"`
	Skip     int         `json:"skip,omitempty"`
	Fluorine string      `json:"fluorine,omitempty"` // atom name prefix
	Proton   string      `json:"proton,omitempty"`   // atom name prefix
}

// Default returns the configuration used for 4-fluorotryptophan in cyclophilin A at 600 MHz.
func Default() *Config {
	return &Config{
		Tc:       8.2e-9,
		Magnet:   14.1,
		System:   "w4f",
		Cutoff:   relax.DefaultCutoff,
		Larmor:   Larmor{Mode: relax.LarmorGamma.String()},
		Strategy: relax.SumDDPlusCSA.String(),
		Skip:     1,
		Fluorine: "F",
		Proton:   "H",
	}
}

const maxFileSize = 1 << 20

// Load reads a JSON configuration file. Fields not present in the file keep their default values.
func Load(path string) (*Config, error) {
	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".json" {
		return nil, fmt.Errorf("config.Load: file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config.Load: file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", clean, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// CSATensor returns the tensor given explicitly, or that of the named system.
func (c *Config) CSATensor() (relax.CSATensor, error) {
	if c.Tensor != nil {
		return relax.CSATensor{S11: c.Tensor[0], S22: c.Tensor[1], S33: c.Tensor[2]}, nil
	}
	t, ok := Systems[strings.ToLower(c.System)]
	if !ok {
		return relax.CSATensor{}, fmt.Errorf("config: unknown system %q (known: %s)", c.System, strings.Join(SystemNames(), ", "))
	}
	return t, nil
}

// Validate checks the settings that can be checked without building a model.
func (c *Config) Validate() error {
	if _, err := c.CSATensor(); err != nil {
		return err
	}
	if c.Cutoff <= 0 {
		return fmt.Errorf("config: cutoff must be positive, got %g", c.Cutoff)
	}
	if c.Skip < 0 || c.Cpus < 0 {
		return fmt.Errorf("config: skip and cpus can't be negative")
	}
	if _, err := relax.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := relax.ParseLarmorMode(c.Larmor.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Fluorine == "" || c.Proton == "" {
		return fmt.Errorf("config: fluorine and proton name prefixes can't be empty")
	}
	return nil
}

// Model builds the relaxation model described by the configuration.
func (c *Config) Model() (*relax.Model, error) {
	t, err := c.CSATensor()
	if err != nil {
		return nil, err
	}
	mode, err := relax.ParseLarmorMode(c.Larmor.Mode)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	l := relax.Larmor{Mode: mode, NuF: c.Larmor.NuF, NuH: c.Larmor.NuH}
	if mode == relax.LarmorLiterature && l.NuF == 0 && l.NuH == 0 {
		//the stored frequencies belong to one field only.
		if math.Abs(c.Magnet-relax.LiteratureMagnet) > 1e-6 {
			return nil, fmt.Errorf("config: literature Larmor frequencies for a %g T field must be given (nu_f, nu_h); the defaults are for %g T", c.Magnet, relax.LiteratureMagnet)
		}
		l = relax.LiteratureLarmor()
	}
	o := relax.DefaultModelOptions()
	o.Larmor(l)
	m, err := relax.NewModel(c.Tc, c.Magnet, t, o)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return m, nil
}

// Options returns the frame processing options of the configuration.
func (c *Config) Options() (*relax.Options, error) {
	s, err := relax.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	o := relax.DefaultOptions()
	o.Strategy(s)
	o.Cutoff(c.Cutoff)
	o.Cpus(c.Cpus)
	o.Skip(c.Skip)
	return o, nil
}
