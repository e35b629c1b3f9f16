// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sublinear is the public entry point for the sparse linear
// system engine: Solve for the full solution vector of M*x = b, and
// SolveFunctional for a single query t^T x resolved without ever
// materializing x. Everything else -- storage formats, dominance
// analysis, the iterative solver family, and the push/random-walk
// estimators -- lives in subpackages this one wires together.
package sublinear

import (
	"context"

	"github.com/ruvnet/sublinear-time-solver-sub004/analysis"
	"github.com/ruvnet/sublinear-time-solver-sub004/config"
	"github.com/ruvnet/sublinear-time-solver-sub004/dispatch"
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
)

// Matrix, SolverConfig, SolveResult, Method, and the method names are
// re-exported here so a caller only needs this one package for the common path;
// advanced callers (custom ingest shapes, raw dominance reports) reach
// into storage/analysis/config directly.
type (
	Matrix       = storage.Matrix
	SolverConfig = config.SolverConfig
	SolveResult  = config.SolveResult
	Method       = analysis.Method
)

const (
	Jacobi            = analysis.Jacobi
	GaussSeidel       = analysis.GaussSeidel
	ConjugateGradient = analysis.ConjugateGradient
	Neumann           = analysis.Neumann
	ForwardPush       = analysis.ForwardPush
	BackwardPush      = analysis.BackwardPush
	RandomWalkMethod  = analysis.RandomWalk
	Bidirectional     = analysis.Bidirectional
	Hybrid            = analysis.Hybrid
)

// NewMatrix builds a Matrix from one of the three ingest shapes (dense,
// coo, csr/csc). Dense, CSR and CSC input keep their layout; COO input
// becomes dense or CSR as storage.PreferDense decides.
func NewMatrix(in storage.Ingest) (Matrix, error) {
	return storage.Build(in)
}

// Solve computes x solving M*x = b to the precision and budget named by
// cfg, dispatching to the method cfg.Method names or, when cfg.Method is
// Hybrid (the default), to whichever method Analyze recommends. Only the
// iterative methods are run; a push, random-walk or bidirectional method,
// including a recommended forward_push, returns a METHOD_UNSUPPORTED error.
func Solve(ctx context.Context, m Matrix, b []float64, cfg SolverConfig) (*SolveResult, error) {
	return dispatch.Solve(ctx, m, b, cfg)
}

// SolveFunctional answers t^T x, x solving M*x = b, without computing the
// full solution vector, using backward push plus Monte Carlo random
// walks. b and t are independent: a nil b is treated as the all-zero
// right-hand side. It requires a strictly positive dominance gap so
// remainder error stays certifiable; a zero-gap system must go through
// Solve instead.
func SolveFunctional(ctx context.Context, m Matrix, b, t []float64, cfg SolverConfig) (*SolveResult, error) {
	return dispatch.SolveFunctional(ctx, m, b, t, cfg)
}

// Analyze exposes the dominance/symmetry/sparsity report a caller can use
// to decide on AutoFixMatrix or an explicit Method before calling Solve.
func Analyze(m Matrix) *analysis.Report {
	return analysis.Analyze(m)
}
