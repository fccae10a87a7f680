/*
 * main.go, part of fluorelax.
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

// fluorelax computes per-frame 19F R1 and R2 relaxation rates along an MD trajectory.
//
//	fluorelax -p protein.pdb -c traj.dcd -o rates.tsv.gz
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	relax "github.com/fluorelax/fluorelax"
	"github.com/fluorelax/fluorelax/config"
	"github.com/fluorelax/fluorelax/fhdist"
	"github.com/fluorelax/fluorelax/histo"
	"github.com/fluorelax/fluorelax/store"
	"github.com/fluorelax/fluorelax/table"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fluorelax: ")
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("fluorelax", flag.ContinueOnError)
	parm := fs.String("p", "", "topology file (PDB or XYZ), required")
	crd := fs.String("c", "", "trajectory file (DCD or STF). If not given, the frames in the topology file are used")
	cfgfile := fs.String("config", "", "JSON configuration file")
	tc := fs.Float64("tc", 0, "rotational correlation time, in s")
	magnet := fs.Float64("magnet", 0, "static magnetic field, in T")
	system := fs.String("system", "", "chemical system, for the CSA tensor (known: "+strings.Join(config.SystemNames(), ", ")+")")
	cutoff := fs.Float64("cutoff", 0, "F-H cutoff radius, in A")
	step := fs.Int("step", 0, "use every step-th frame")
	larmor := fs.String("larmor", "", "Larmor frequencies: gamma or literature")
	nuf := fs.Float64("nuf", 0, "19F frequency for -larmor literature, in MHz (default: 564.6, only at 14.1 T)")
	nuh := fs.Float64("nuh", 0, "1H frequency for -larmor literature, in MHz (default: 600.1, only at 14.1 T)")
	strategy := fs.String("strategy", "", "per-frame aggregation: sum or average")
	cpus := fs.Int("cpus", 0, "goroutines used for the rate calculation")
	out := fs.String("o", "", "output table (tab-separated; .gz and .zst are compressed). Standard output if not given")
	dbpath := fs.String("db", "", "SQLite database where the run is archived")
	histfile := fs.String("histo", "", "JSON file for the distributions of R1, R2 and the F-H distances")
	bins := fs.Int("bins", 30, "number of bins in the distributions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *parm == "" {
		fs.Usage()
		return fmt.Errorf("a topology file (-p) is required")
	}
	c := config.Default()
	if *cfgfile != "" {
		var err error
		if c, err = config.Load(*cfgfile); err != nil {
			return err
		}
	}
	//flags given explicitly override the configuration file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tc":
			c.Tc = *tc
		case "magnet":
			c.Magnet = *magnet
		case "system":
			c.System = *system
			c.Tensor = nil
		case "cutoff":
			c.Cutoff = *cutoff
		case "step":
			c.Skip = *step
		case "larmor":
			c.Larmor.Mode = *larmor
		case "nuf":
			c.Larmor.NuF = *nuf
		case "nuh":
			c.Larmor.NuH = *nuh
		case "strategy":
			c.Strategy = *strategy
		case "cpus":
			c.Cpus = *cpus
		}
	})
	if err := c.Validate(); err != nil {
		return err
	}
	model, err := c.Model()
	if err != nil {
		return err
	}
	o, err := c.Options()
	if err != nil {
		return err
	}
	log.Printf("model: %v", model)

	mol, traj, err := fhdist.Open(*parm, *crd)
	if err != nil {
		return err
	}
	defer traj.Close()
	sel, err := fhdist.Select(mol, c.Fluorine, c.Proton)
	if err != nil {
		return err
	}
	log.Printf("fluorine: atom %d, %d candidate protons", sel.Fluorine, len(sel.Protons))
	frames, err := fhdist.Series(traj, sel, o.Cutoff(), o.Skip())
	if err != nil {
		return err
	}
	log.Printf("read %d frames", len(frames))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := relax.Process(ctx, model, frames, o)
	if err != nil {
		return err
	}
	meta := table.RunMeta(model, o)
	if *out == "" {
		err = table.Write(os.Stdout, results, meta)
	} else {
		err = table.WriteFile(*out, results, meta)
	}
	if err != nil {
		return err
	}
	if *dbpath != "" {
		source := *crd
		if source == "" {
			source = *parm
		}
		db, err := store.Open(*dbpath)
		if err != nil {
			return err
		}
		defer db.Close()
		r := store.NewRun(model, o, source)
		if err := db.SaveRun(ctx, r, results); err != nil {
			return err
		}
		log.Printf("run %s archived in %s", r.ID, *dbpath)
	}
	if *histfile != "" {
		rep, err := histo.NewReport(results, frames, *bins)
		if err != nil {
			return err
		}
		if err := rep.WriteFile(*histfile); err != nil {
			return err
		}
	}
	log.Print(relax.Summarize(results))
	return nil
}
