/*
 * store.go, part of fluorelax.
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

// Package store archives relaxation runs, with the settings that produced them
// and their per-frame rates, in an SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	relax "github.com/fluorelax/fluorelax"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id       TEXT PRIMARY KEY,
	created  INTEGER NOT NULL,
	source   TEXT NOT NULL,
	tc       REAL NOT NULL,
	magnet   REAL NOT NULL,
	s11      REAL NOT NULL,
	s22      REAL NOT NULL,
	s33      REAL NOT NULL,
	larmor   TEXT NOT NULL,
	omega_f  REAL NOT NULL,
	omega_h  REAL NOT NULL,
	strategy TEXT NOT NULL,
	cutoff   REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS frames (
	run_id  TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	frame   INTEGER NOT NULL,
	r1      REAL NOT NULL,
	r2      REAL NOT NULL,
	protons INTEGER NOT NULL,
	PRIMARY KEY (run_id, frame)
);
`

var pragmas = []string{
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}

// Run describes how a series of frame results was obtained.
type Run struct {
	ID       string
	Created  time.Time
	Source   string // trajectory (or topology) the distances came from
	Tc       float64
	Magnet   float64
	Tensor   relax.CSATensor
	Larmor   string
	OmegaF   float64
	OmegaH   float64
	Strategy string
	Cutoff   float64
}

// NewRun returns a Run with a fresh ID for results obtained with M and o from source.
func NewRun(M *relax.Model, o *relax.Options, source string) *Run {
	wF, wH := M.Omegas()
	return &Run{
		ID:       uuid.NewString(),
		Created:  time.Now().UTC(),
		Source:   source,
		Tc:       M.Tc(),
		Magnet:   M.Magnet(),
		Tensor:   M.Tensor(),
		Larmor:   M.Larmor().String(),
		OmegaF:   wF,
		OmegaH:   wH,
		Strategy: o.Strategy().String(),
		Cutoff:   o.Cutoff(),
	}
}

// DB is an open results database.
type DB struct {
	db *sql.DB
}

// Open opens (creating it if needed) the database in path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	//keeps the pragmas, which are per-connection, in effect.
	db.SetMaxOpenConns(1)
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store.Open: %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open: schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (D *DB) Close() error {
	return D.db.Close()
}

// SaveRun stores run and its results in a single transaction.
func (D *DB) SaveRun(ctx context.Context, run *Run, results []relax.FrameResult) error {
	if _, err := uuid.Parse(run.ID); err != nil {
		return fmt.Errorf("store.SaveRun: invalid run ID %q: %w", run.ID, err)
	}
	tx, err := D.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store.SaveRun: %w", err)
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, `INSERT INTO runs (id, created, source, tc, magnet, s11, s22, s33, larmor, omega_f, omega_h, strategy, cutoff)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Created.UnixNano(), run.Source, run.Tc, run.Magnet, run.Tensor.S11, run.Tensor.S22, run.Tensor.S33,
		run.Larmor, run.OmegaF, run.OmegaH, run.Strategy, run.Cutoff)
	if err != nil {
		return fmt.Errorf("store.SaveRun: run %s: %w", run.ID, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO frames (run_id, frame, r1, r2, protons) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store.SaveRun: %w", err)
	}
	defer stmt.Close()
	for _, r := range results {
		if _, err := stmt.ExecContext(ctx, run.ID, r.Frame, r.R1, r.R2, r.Protons); err != nil {
			return fmt.Errorf("store.SaveRun: frame %d: %w", r.Frame, err)
		}
	}
	return tx.Commit()
}

// Runs returns all the stored runs, oldest first.
func (D *DB) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := D.db.QueryContext(ctx, `SELECT id, created, source, tc, magnet, s11, s22, s33, larmor, omega_f, omega_h, strategy, cutoff
		FROM runs ORDER BY created, id`)
	if err != nil {
		return nil, fmt.Errorf("store.Runs: %w", err)
	}
	defer rows.Close()
	var ret []*Run
	for rows.Next() {
		r := new(Run)
		var created int64
		if err := rows.Scan(&r.ID, &created, &r.Source, &r.Tc, &r.Magnet, &r.Tensor.S11, &r.Tensor.S22, &r.Tensor.S33,
			&r.Larmor, &r.OmegaF, &r.OmegaH, &r.Strategy, &r.Cutoff); err != nil {
			return nil, fmt.Errorf("store.Runs: %w", err)
		}
		r.Created = time.Unix(0, created).UTC()
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

// Frames returns the results stored for the run with the given ID, in frame order.
func (D *DB) Frames(ctx context.Context, runID string) ([]relax.FrameResult, error) {
	rows, err := D.db.QueryContext(ctx, `SELECT frame, r1, r2, protons FROM frames WHERE run_id = ? ORDER BY frame`, runID)
	if err != nil {
		return nil, fmt.Errorf("store.Frames: %w", err)
	}
	defer rows.Close()
	var ret []relax.FrameResult
	for rows.Next() {
		var r relax.FrameResult
		if err := rows.Scan(&r.Frame, &r.R1, &r.R2, &r.Protons); err != nil {
			return nil, fmt.Errorf("store.Frames: %w", err)
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

// DeleteRun removes a run and its frames.
func (D *DB) DeleteRun(ctx context.Context, runID string) error {
	res, err := D.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("store.DeleteRun: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store.DeleteRun: no run %s", runID)
	}
	return nil
}
