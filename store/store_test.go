/*
 * store_test.go, part of fluorelax.
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

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relax "github.com/fluorelax/fluorelax"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testModel(t *testing.T) *relax.Model {
	t.Helper()
	o := relax.DefaultModelOptions()
	o.Larmor(relax.LiteratureLarmor())
	m, err := relax.NewModel(8.2e-9, 14.1, relax.W4F, o)
	require.NoError(t, err)
	return m
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	m := testModel(t)
	results, err := relax.Process(ctx, m, []relax.FrameDistances{
		{Index: 0, Distances: []float64{2.3}},
		{Index: 10},
		{Index: 20, Distances: []float64{2.1, 2.9}},
	})
	require.NoError(t, err)

	run := NewRun(m, relax.DefaultOptions(), "3k0n_w4f.dcd")
	require.NoError(t, db.SaveRun(ctx, run, results))

	runs, err := db.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, relax.W4F, got.Tensor)
	assert.Equal(t, "literature(F=564.6 MHz, H=600.1 MHz)", got.Larmor)
	assert.Equal(t, "sum", got.Strategy)
	assert.Equal(t, "3k0n_w4f.dcd", got.Source)
	assert.Equal(t, run.Created.UnixNano(), got.Created.UnixNano())
	wF, _ := m.Omegas()
	assert.Equal(t, wF, got.OmegaF)

	frames, err := db.Frames(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, results, frames)
	assert.Equal(t, 0, frames[1].Protons)
	assert.Equal(t, 2, frames[2].Protons)
}

func TestSaveRunErrors(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	run := NewRun(testModel(t), relax.DefaultOptions(), "x.dcd")

	bad := *run
	bad.ID = "not-a-uuid"
	require.Error(t, db.SaveRun(ctx, &bad, nil))

	//repeated frames violate the primary key, nothing must be stored.
	dup := []relax.FrameResult{{Frame: 1, R1: 1, R2: 2}, {Frame: 1, R1: 1, R2: 2}}
	require.Error(t, db.SaveRun(ctx, run, dup))
	runs, err := db.Runs(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestDeleteRun(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	run := NewRun(testModel(t), relax.DefaultOptions(), "x.dcd")
	require.NoError(t, db.SaveRun(ctx, run, []relax.FrameResult{{Frame: 0, R1: 1, R2: 2}}))
	require.NoError(t, db.DeleteRun(ctx, run.ID))
	frames, err := db.Frames(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, frames)
	assert.Error(t, db.DeleteRun(ctx, run.ID))
}
