// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config defines the solver's public request/response types:
// SolverConfig, SolveResult, progress events, and the stable error code
// taxonomy the dispatcher surfaces to callers.
package config

import (
	"time"

	"github.com/ruvnet/sublinear-time-solver-sub004/analysis"
)

// ErrCode is a stable, machine-readable identifier so a caller never needs
// to parse an error string.
type ErrCode string

const (
	InvalidMatrix         ErrCode = "INVALID_MATRIX"
	DimensionMismatch     ErrCode = "DIMENSION_MISMATCH"
	NotSPD                ErrCode = "NOT_SPD"
	DegenerateDiagonal    ErrCode = "DEGENERATE_DIAGONAL"
	NotDiagonallyDominant ErrCode = "NOT_DIAGONALLY_DOMINANT"
	NonFiniteValue        ErrCode = "NON_FINITE_VALUE"
	MethodUnsupported     ErrCode = "METHOD_UNSUPPORTED"
	BudgetExhausted       ErrCode = "BUDGET_EXHAUSTED"
	TimeoutExceeded       ErrCode = "TIMEOUT"
	Cancelled             ErrCode = "CANCELLED"
)

// Error is the error type returned across the dispatcher boundary.
type Error struct {
	Code ErrCode
	Msg  string
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Msg }

// NewError constructs an Error with the given code and message.
func NewError(code ErrCode, msg string) *Error { return &Error{Code: code, Msg: msg} }

// SolverConfig carries the options accepted at the API boundary. Zero
// values select the documented defaults, applied by WithDefaults.
type SolverConfig struct {
	Method analysis.Method

	Epsilon       float64
	MaxIterations int
	Timeout       time.Duration

	Seed  uint64
	Walks int // Monte-Carlo sample budget (aliased as "budget" at the API boundary)

	Damping float64

	AutoFixMatrix  bool
	StreamProgress bool

	// Confidence is the failure probability tolerated by the functional
	// certificate; default 0.01.
	Confidence float64
}

const (
	defaultEpsilon       = 1e-6
	defaultMaxIterations = 1000
	defaultDamping       = 0.15
	defaultConfidence    = 0.01
	defaultWalks         = 4096
)

// WithDefaults returns a copy of c with every zero-valued option replaced
// by the documented default.
func (c SolverConfig) WithDefaults() SolverConfig {
	if c.Method == "" {
		c.Method = analysis.Hybrid
	}
	if c.Epsilon == 0 {
		c.Epsilon = defaultEpsilon
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = defaultMaxIterations
	}
	if c.Damping == 0 {
		c.Damping = defaultDamping
	}
	if c.Confidence == 0 {
		c.Confidence = defaultConfidence
	}
	if c.Walks == 0 {
		c.Walks = defaultWalks
	}
	return c
}

// Grade mirrors analysis.Grade at the result boundary so that callers of
// package config need not import package analysis just to read a grade.
type Grade byte

// SolveResult is the outcome of one Solve or SolveFunctional call.
type SolveResult struct {
	// Solution is present in full-solution mode.
	Solution []float64
	// FunctionalValue and ErrorBound are present in functional mode.
	FunctionalValue float64
	ErrorBound      float64
	HasFunctional   bool

	Iterations      int
	FinalResidual   float64
	Converged       bool
	Cancelled       bool
	ConvergenceRate float64
	ReductionFactor float64
	MethodUsed      analysis.Method
	ElapsedMs       float64
	MemoryPeak      int
	Grade           Grade

	// History maps iteration number to residual, present only when
	// StreamProgress was requested.
	History map[int]float64

	// Repairs is non-empty when AutoFixMatrix repaired a degenerate
	// diagonal before solving.
	Repairs []RepairRecord
}

// RepairRecord mirrors analysis.RepairEntry at the API boundary.
type RepairRecord struct {
	Row      int
	Old      float64
	New      float64
	SigmaRow float64
}

// ProgressEvent is one record of the streamed progress sequence, strictly
// monotonic in Iteration.
type ProgressEvent struct {
	Iteration          int
	Residual           float64
	ConvergencePercent float64
	ReductionFactor    float64
	TimestampMs        float64
	Final              bool
	Result             *SolveResult // set only when Final is true
}
