// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solve implements the iterative solver family: Jacobi,
// Gauss-Seidel, Conjugate Gradient, and Neumann-series partial sums. Every
// method satisfies the Method interface -- a closed tagged variant with a
// shared capability set modeled on gonum's reverse-communication
// linsolve.Method, simplified to the direct init/step/result shape since
// none of these four methods need GMRES-style multi-phase commands.
package solve

import (
	"math"

	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

// Method is an iterative method that produces a sequence of iterates
// converging to the solution of M*x = b. A Method owns its own scratch
// vectors so the shared Run loop in this package never needs to know the
// method's internal state shape.
type Method interface {
	// Init prepares the method for a solve of M*x = b starting from x0
	// (nil means the zero vector). Init keeps references to m and b for
	// later Step calls and modifies neither.
	Init(m storage.Matrix, b []float64, x0 []float64, pool *vecops.Pool)

	// Step performs one outer iteration and returns the new iterate's
	// relative residual norm ||b - M*x_new|| / max(||b||, epsAbs).
	Step() (residual float64)

	// X returns the current iterate. The returned slice is owned by the
	// Method and is only valid until the next Step call.
	X() []float64

	// Release returns any pooled scratch buffers. Must be called exactly
	// once, on every exit path.
	Release()
}

// EpsAbs is the floor used in the relative-residual denominator so that a
// zero right-hand side does not divide by zero.
const EpsAbs = 1e-30

// RHSNorm returns max(||b||, EpsAbs), the shared denominator for relative
// residual computations across every iterative method.
func RHSNorm(b []float64) float64 {
	n := vecops.Norm2(b)
	if n < EpsAbs {
		return EpsAbs
	}
	return n
}

// Residual computes ||b - M*x||/bNorm into a scratch buffer supplied by
// the caller (must have length len(b)).
func Residual(m storage.Matrix, b, x, scratch []float64, bNorm float64) float64 {
	m.MatVec(x, scratch)
	vecops.AXPYTo(scratch, b, -1, scratch)
	return vecops.Norm2(scratch) / bNorm
}

// IsZeroRHS reports whether b is exactly the zero vector, the case every
// iterative method must short-circuit: return x=0 with iterations=0.
func IsZeroRHS(b []float64) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// checkFiniteStep aborts a method with a recoverable failure flag instead
// of panicking or propagating a NaN: internal arithmetic errors never
// raise out of inner kernels.
func checkFiniteStep(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
