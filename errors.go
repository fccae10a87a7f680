/*
 * errors.go, part of fluorelax.
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
	"strings"
)

// Decorator is implemented by the errors in this library. Decorate adds the name of
// a function in the calling stack (plus, optionally, some info in the form "Function: info")
// and returns the current decoration slice. An empty string only returns the slice.
type Decorator interface {
	Error() string
	Decorate(string) []string
}

// Kinds of failure. They are meant to be used with errors.Is.
var (
	ErrInvalidParameter = &Error{message: "invalid parameter", kind: kindParameter}
	ErrInvalidTensor    = &Error{message: "degenerate CSA tensor", kind: kindTensor}
	ErrMissingDistance  = &Error{message: "no F-H distance in context", kind: kindDistance}
)

type errKind int

const (
	kindParameter errKind = iota + 1
	kindTensor
	kindDistance
)

// Error is the general structure for errors in the relaxation calculation.
// It fulfills Decorator.
type Error struct {
	message string
	kind    errKind
	deco    []string
}

func newError(kind errKind, caller, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}}
}

func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return fmt.Sprintf("%s: %s", strings.Join(err.deco, ": "), err.message)
}

// Decorate adds new information to the error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Is reports whether target is the sentinel for the error's kind. A degenerate
// tensor is also an invalid parameter.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.kind == err.kind {
		return true
	}
	return err.kind == kindTensor && t.kind == kindParameter
}

// errDecorate decorates err with the caller's name if it is a Decorator,
// and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if d, ok := err.(Decorator); ok {
		d.Decorate(caller)
	}
	return err
}
