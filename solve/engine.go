// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"context"

	"github.com/ruvnet/sublinear-time-solver-sub004/convergence"
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

// Outcome is the terminal state of a Run call.
type Outcome struct {
	X               []float64
	Iterations      int
	FinalResidual   float64
	Reason          convergence.Reason
	History         map[int]float64
	ConvergenceRate float64
	ReductionFactor float64
}

// Progress is delivered once per iteration when a non-nil channel is
// supplied to Run, mirroring the streamed progress events at the API
// boundary without this package needing to import package config.
type Progress struct {
	Iteration          int
	Residual           float64
	ConvergencePercent float64
	ReductionFactor    float64
}

// New constructs the Method implementation named by tag. It returns nil
// for any tag this package does not implement (push/random-walk/hybrid
// belong to other packages).
func New(tag string) Method {
	switch tag {
	case "jacobi":
		return &Jacobi{}
	case "gauss_seidel":
		return &GaussSeidel{}
	case "conjugate_gradient":
		return &CG{}
	case "neumann":
		return &Neumann{}
	default:
		return nil
	}
}

// Run drives method against m*x=b until the detector calls a halt,
// publishing one Progress per iteration on progressCh when non-nil.
// Run owns calling method.Release exactly once before returning.
func Run(ctx context.Context, method Method, m storage.Matrix, b, x0 []float64, pool *vecops.Pool, det *convergence.Detector, keepHistory bool, progressCh chan<- Progress) Outcome {
	defer method.Release()

	method.Init(m, b, x0, pool)

	if IsZeroRHS(b) {
		return Outcome{X: append([]float64(nil), method.X()...), Reason: convergence.Converged}
	}

	var history map[int]float64
	if keepHistory {
		history = make(map[int]float64)
	}

	k := 0
	var residual float64
	var reason convergence.Reason
	for {
		select {
		case <-ctx.Done():
			reason = convergence.Timeout
		default:
		}
		if reason != convergence.NotStopped {
			break
		}

		k++
		residual = method.Step()
		if keepHistory {
			history[k] = residual
		}

		stop, r := det.Observe(k, residual)
		if progressCh != nil {
			progressCh <- Progress{
				Iteration:          k,
				Residual:           residual,
				ConvergencePercent: det.ConvergencePercent(),
				ReductionFactor:    det.ReductionFactor(),
			}
		}
		if stop {
			reason = r
			break
		}
	}

	return Outcome{
		X:               append([]float64(nil), method.X()...),
		Iterations:      k,
		FinalResidual:   residual,
		Reason:          reason,
		History:         history,
		ConvergenceRate: det.GeometricRate(),
		ReductionFactor: det.ReductionFactor(),
	}
}
