// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch implements the hybrid dispatcher: the state machine
// that takes a raw matrix and right-hand side through validation,
// optional repair, dominance analysis, method selection, iteration, and
// result reporting. It owns the one vecops.Pool a solve uses end to end
// and constructs the solve.Method for each full-solution solve; functional
// queries are handed to package functional.
package dispatch

import (
	"context"
	"math"
	"time"

	"github.com/ruvnet/sublinear-time-solver-sub004/analysis"
	"github.com/ruvnet/sublinear-time-solver-sub004/config"
	"github.com/ruvnet/sublinear-time-solver-sub004/convergence"
	"github.com/ruvnet/sublinear-time-solver-sub004/functional"
	"github.com/ruvnet/sublinear-time-solver-sub004/rng"
	"github.com/ruvnet/sublinear-time-solver-sub004/solve"
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

// State names a stage of the dispatcher's progression through a solve.
type State int

const (
	Received State = iota
	Validated
	Repaired
	Analyzed
	MethodSelected
	Iterating
	Converged
	Stalled
	Failed
	TimedOut
	Reported
)

// Solve drives the full-solution path: validate, analyze, (repair),
// select a method (or honor an explicit one), iterate to convergence,
// and report. On a non-convergent iterative method it retries exactly
// once with Neumann before giving up, since Neumann's damped partial
// sums recover from a divergence an aggressive method like
// Gauss-Seidel occasionally hits on a borderline-dominant system. Solve
// runs only the iterative methods (jacobi, gauss_seidel,
// conjugate_gradient, neumann); a push, random-walk or bidirectional
// method returns a METHOD_UNSUPPORTED error, including forward_push when
// Hybrid selection recommends it for a large, very sparse system.
func Solve(ctx context.Context, m storage.Matrix, b []float64, cfg config.SolverConfig) (*config.SolveResult, error) {
	start := time.Now()
	cfg = cfg.WithDefaults()

	if err := validate(m, b); err != nil {
		return nil, err
	}

	report := analysis.Analyze(m)
	var repairs []config.RepairRecord
	if len(report.DegenerateRows) > 0 {
		if !cfg.AutoFixMatrix {
			return nil, config.NewError(config.DegenerateDiagonal, "matrix has a degenerate diagonal and auto-fix is disabled")
		}
		fixed, entries, err := analysis.Repair(m)
		if err != nil {
			return nil, config.NewError(config.InvalidMatrix, err.Error())
		}
		m = fixed
		report = analysis.Analyze(m)
		for _, e := range entries {
			repairs = append(repairs, config.RepairRecord{Row: e.Row, Old: e.Old, New: e.New, SigmaRow: e.SigmaRow})
		}
	}
	if !report.IsRDD && !report.IsCDD {
		return nil, config.NewError(config.NotDiagonallyDominant, "matrix is not diagonally dominant by either rows or columns")
	}

	method := cfg.Method
	if method == analysis.Hybrid {
		method = analysis.Recommend(report, m.Rows(), m.NNZ(), analysis.FullSolution)
	}

	switch method {
	case analysis.ForwardPush, analysis.BackwardPush, analysis.RandomWalk, analysis.Bidirectional:
		return nil, config.NewError(config.MethodUnsupported, "push and random-walk methods are not run for a full-solution query: "+string(method))
	}

	pool := vecops.NewPool()
	result, err := runIterative(ctx, m, b, method, cfg, pool)
	if err != nil {
		return nil, err
	}
	result.Repairs = repairs
	result.ElapsedMs = float64(time.Since(start)) / float64(time.Millisecond)
	return result, nil
}

func runIterative(ctx context.Context, m storage.Matrix, b []float64, method analysis.Method, cfg config.SolverConfig, pool *vecops.Pool) (*config.SolveResult, error) {
	tagged := solve.New(tagFor(method))
	if tagged == nil {
		return nil, config.NewError(config.MethodUnsupported, "unknown iterative method: "+string(method))
	}
	if method == analysis.ConjugateGradient {
		report := analysis.Analyze(m)
		if !report.Symmetric {
			return nil, config.NewError(config.NotSPD, "conjugate gradient requires a symmetric matrix")
		}
	}

	det := convergence.NewDetector(cfg.Epsilon, cfg.MaxIterations, cfg.Timeout)
	out := solve.Run(ctx, tagged, m, b, nil, pool, det, cfg.StreamProgress, nil)

	if out.Reason != convergence.Converged && method != analysis.Neumann {
		retryDet := convergence.NewDetector(cfg.Epsilon, cfg.MaxIterations, cfg.Timeout)
		retry := solve.Run(ctx, &solve.Neumann{}, m, b, out.X, pool, retryDet, cfg.StreamProgress, nil)
		if retry.Reason == convergence.Converged || retry.FinalResidual < out.FinalResidual {
			out = retry
			method = analysis.Neumann
			det = retryDet
		}
	}

	grade := det.Grade(out.Reason, out.Iterations, method == analysis.Neumann && out.Reason != convergence.Converged)
	return &config.SolveResult{
		Solution:        out.X,
		Iterations:      out.Iterations,
		FinalResidual:   out.FinalResidual,
		Converged:       out.Reason == convergence.Converged,
		Cancelled:       out.Reason == convergence.Timeout && ctx.Err() != nil,
		ConvergenceRate: out.ConvergenceRate,
		ReductionFactor: out.ReductionFactor,
		MethodUsed:      method,
		History:         out.History,
		Grade:           config.Grade(grade),
	}, nil
}

// SolveFunctional drives the sublinear functional path: validate,
// analyze, then answer t^T x (x solving M*x = b) via backward push plus
// Monte Carlo walks without ever materializing the full solution. b and
// t are independent: b is the system's right-hand side, t is the query
// vector being dotted against the (unmaterialized) solution. A nil b is
// treated as the all-zero right-hand side.
func SolveFunctional(ctx context.Context, m storage.Matrix, b, t []float64, cfg config.SolverConfig) (*config.SolveResult, error) {
	start := time.Now()
	cfg = cfg.WithDefaults()
	if err := validateMatrix(m); err != nil {
		return nil, err
	}
	if b == nil {
		b = make([]float64, m.Rows())
	} else if err := validateVector(b, m.Rows()); err != nil {
		return nil, err
	}
	if err := validateVector(t, m.Rows()); err != nil {
		return nil, err
	}

	report := analysis.Analyze(m)
	var repairs []config.RepairRecord
	if len(report.DegenerateRows) > 0 {
		if !cfg.AutoFixMatrix {
			return nil, config.NewError(config.DegenerateDiagonal, "matrix has a degenerate diagonal and auto-fix is disabled")
		}
		fixed, entries, err := analysis.Repair(m)
		if err != nil {
			return nil, config.NewError(config.InvalidMatrix, err.Error())
		}
		m = fixed
		report = analysis.Analyze(m)
		for _, e := range entries {
			repairs = append(repairs, config.RepairRecord{Row: e.Row, Old: e.Old, New: e.New, SigmaRow: e.SigmaRow})
		}
	}
	if !report.IsRDD && !report.IsCDD {
		return nil, config.NewError(config.NotDiagonallyDominant, "matrix is not diagonally dominant by either rows or columns")
	}
	if report.DeltaRow <= 0 {
		return nil, config.NewError(config.NotDiagonallyDominant, "zero dominance gap: no sublinear error certificate is available")
	}

	budget := functional.DefaultBudget(cfg.Epsilon, vecops.Norm1(t), report.DeltaRow, cfg.Confidence)
	budget.MinWalks = cfg.Walks / 4
	budget.MaxWalks = cfg.Walks
	if budget.MinWalks < 1 {
		budget.MinWalks = 1
	}

	src := rng.New(cfg.Seed)
	out := functional.Estimate(m, b, t, report.DeltaRow, src, budget)

	return &config.SolveResult{
		FunctionalValue: out.Value,
		ErrorBound:      out.ErrorBound,
		HasFunctional:   true,
		MethodUsed:      analysis.Bidirectional,
		Repairs:         repairs,
		Converged:       true,
		ElapsedMs:       float64(time.Since(start)) / float64(time.Millisecond),
	}, nil
}

func validateMatrix(m storage.Matrix) error {
	if m == nil {
		return config.NewError(config.InvalidMatrix, "matrix is nil")
	}
	if err := storage.CheckSquareDims(m.Rows(), m.Cols()); err != nil {
		return config.NewError(config.InvalidMatrix, err.Error())
	}
	return nil
}

func validateVector(v []float64, n int) error {
	if storage.VecDimMismatch(len(v), n) {
		return config.NewError(config.DimensionMismatch, "vector length does not match matrix dimension")
	}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return config.NewError(config.NonFiniteValue, "vector contains a non-finite value")
		}
	}
	return nil
}

func validate(m storage.Matrix, b []float64) error {
	if err := validateMatrix(m); err != nil {
		return err
	}
	return validateVector(b, m.Rows())
}

func tagFor(m analysis.Method) string {
	switch m {
	case analysis.Jacobi:
		return "jacobi"
	case analysis.GaussSeidel:
		return "gauss_seidel"
	case analysis.ConjugateGradient:
		return "conjugate_gradient"
	case analysis.Neumann:
		return "neumann"
	default:
		return ""
	}
}
