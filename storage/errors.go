// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "fmt"

// Code is a stable, machine-readable error identifier surfaced to callers
// of the solver core. Values mirror the error taxonomy of the external
// tool-protocol façade so that a rejected matrix or vector can be reported
// without inspecting error strings.
type Code string

const (
	InvalidMatrix        Code = "INVALID_MATRIX"
	DimensionMismatch     Code = "DIMENSION_MISMATCH"
	DegenerateDiagonal    Code = "DEGENERATE_DIAGONAL"
	NotDiagonallyDominant Code = "NOT_DIAGONALLY_DOMINANT"
	NonFiniteValue        Code = "NON_FINITE_VALUE"
)

// Error is a classified error carrying a stable Code plus the offending
// indices, so a caller across the RPC boundary can act on Code without
// parsing Msg.
type Error struct {
	Code Code
	Msg  string
	Row  int
	Col  int
}

func (e *Error) Error() string {
	if e.Row >= 0 || e.Col >= 0 {
		return fmt.Sprintf("storage: %s: %s (row=%d, col=%d)", e.Code, e.Msg, e.Row, e.Col)
	}
	return fmt.Sprintf("storage: %s: %s", e.Code, e.Msg)
}

func newErr(code Code, row, col int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Row: row, Col: col}
}
