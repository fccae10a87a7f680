/*
 * files.go, part of fluorelax.
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

package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	relax "github.com/fluorelax/fluorelax"
)

// codec returns the compression format for a file name: "gz", "zst", or "" for plain text.
func codec(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return "gz"
	case ".zst", ".zstd":
		return "zst"
	}
	return ""
}

// chain closes a compressor, then the file under it.
type chain struct {
	io.Writer
	closers []io.Closer
}

func (c *chain) Close() error {
	var first error
	for _, v := range c.closers {
		if err := v.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type readChain struct {
	io.Reader
	closers []func() error
}

func (c *readChain) Close() error {
	var first error
	for _, f := range c.closers {
		if err := f(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create creates the file name and returns a writer that compresses the data
// with gzip or zstd, if the file extension is .gz or .zst, respectively.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("table.Create: %w", err)
	}
	switch codec(name) {
	case "gz":
		gz := gzip.NewWriter(f)
		return &chain{Writer: gz, closers: []io.Closer{gz, f}}, nil
	case "zst":
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("table.Create: %w", err)
		}
		return &chain{Writer: zw, closers: []io.Closer{zw, f}}, nil
	}
	return f, nil
}

// Open opens the file name, decompressing it according to its extension (see Create).
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("table.Open: %w", err)
	}
	reader := bufio.NewReader(f)
	switch codec(name) {
	case "gz":
		gz, err := gzip.NewReader(reader)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("table.Open: %s: %w", name, err)
		}
		return &readChain{Reader: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case "zst":
		zr, err := zstd.NewReader(reader)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("table.Open: %s: %w", name, err)
		}
		return &readChain{Reader: zr, closers: []func() error{func() error { zr.Close(); return nil }, f.Close}}, nil
	}
	return &readChain{Reader: reader, closers: []func() error{f.Close}}, nil
}

// WriteFile writes results and meta to the file name, compressed according to its extension.
func WriteFile(name string, results []relax.FrameResult, meta Meta) error {
	w, err := Create(name)
	if err != nil {
		return err
	}
	if err := Write(w, results, meta); err != nil {
		w.Close()
		return fmt.Errorf("table.WriteFile: %s: %w", name, err)
	}
	return w.Close()
}

// ReadFile reads the table in the file name.
func ReadFile(name string) ([]relax.FrameResult, Meta, error) {
	r, err := Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	return Read(r)
}
