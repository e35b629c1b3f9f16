// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convergence tracks a solver's residual series and decides when
// to stop: on convergence, on stagnation, at the iteration cap, or at a
// wall-clock timeout. It also derives the convergence rate and the A-F
// grade reported in a SolveResult.
package convergence

import (
	"math"
	"time"
)

// Reason names which stop rule fired.
type Reason int

const (
	NotStopped Reason = iota
	Converged
	Stagnated
	IterationLimit
	Timeout
)

// stagnationWindow is the number of iterations a reduction factor close to
// 1 must persist for before the detector declares stagnation.
const stagnationWindow = 10

// stagnationRelTol is the threshold in rule (2): |r_k - r_{k-5}|/r_k < tol.
const stagnationRelTol = 1e-4

// tieBreakFactor declares convergence early when two consecutive residuals
// agree to within tieBreakFactor*epsilon.
const tieBreakFactor = 1e-3

// Detector accumulates the residual history of a single solve.
type Detector struct {
	Epsilon       float64
	MaxIterations int
	Timeout       time.Duration

	history     []float64
	startTime   time.Time
	stagnantFor int
}

// NewDetector returns a Detector configured for one solve. If timeout <= 0,
// no wall-clock limit is enforced.
func NewDetector(epsilon float64, maxIterations int, timeout time.Duration) *Detector {
	return &Detector{
		Epsilon:       epsilon,
		MaxIterations: maxIterations,
		Timeout:       timeout,
		startTime:     time.Now(),
	}
}

// Observe records the residual at iteration k (1-indexed) and evaluates
// the stop rules in priority order, returning whether to stop and why.
func (d *Detector) Observe(k int, residual float64) (stop bool, reason Reason) {
	d.history = append(d.history, residual)

	if residual <= d.Epsilon {
		return true, Converged
	}
	if len(d.history) >= 2 {
		prev := d.history[len(d.history)-2]
		if math.Abs(residual-prev) <= tieBreakFactor*d.Epsilon {
			return true, Converged
		}
	}

	if len(d.history) > 5 {
		r5 := d.history[len(d.history)-6]
		if residual != 0 && math.Abs(residual-r5)/residual < stagnationRelTol {
			d.stagnantFor++
		} else {
			d.stagnantFor = 0
		}
		if d.stagnantFor >= stagnationWindow {
			return true, Stagnated
		}
	}

	if k >= d.MaxIterations {
		return true, IterationLimit
	}
	if d.Timeout > 0 && time.Since(d.startTime) >= d.Timeout {
		return true, Timeout
	}
	return false, NotStopped
}

// History returns the recorded residual series, indexed from 0 (first
// observed iteration).
func (d *Detector) History() []float64 { return d.history }

// ReductionFactor returns r_k / r_{k-1} for the most recent pair, clamped
// to [0, 1.01]. It returns 1 if fewer than two residuals have been
// observed.
func (d *Detector) ReductionFactor() float64 {
	n := len(d.history)
	if n < 2 {
		return 1
	}
	prev := d.history[n-2]
	if prev == 0 {
		return 1
	}
	f := d.history[n-1] / prev
	if f < 0 {
		f = 0
	}
	if f > 1.01 {
		f = 1.01
	}
	return f
}

// GeometricRate returns exp(mean(log r_k - log r_{k-1})) over the last 10
// iterations (or fewer if the history is shorter).
func (d *Detector) GeometricRate() float64 {
	n := len(d.history)
	if n < 2 {
		return 1
	}
	window := stagnationWindow
	start := n - window
	if start < 1 {
		start = 1
	}
	var sum float64
	count := 0
	for k := start; k < n; k++ {
		a, b := d.history[k], d.history[k-1]
		if a <= 0 || b <= 0 {
			continue
		}
		sum += math.Log(a) - math.Log(b)
		count++
	}
	if count == 0 {
		return 1
	}
	return math.Exp(sum / float64(count))
}

// ConvergencePercent returns 100*(1 - r_k/r_0).
func (d *Detector) ConvergencePercent() float64 {
	n := len(d.history)
	if n == 0 {
		return 0
	}
	r0 := d.history[0]
	if r0 == 0 {
		return 100
	}
	return 100 * (1 - d.history[n-1]/r0)
}

// Grade computes the A-F label from the iteration count at which
// convergence occurred. stalledThenRecovered should be true if
// the detector observed at least one stagnation run that was not the
// terminal stop reason (used to distinguish a D from an F grade).
func (d *Detector) Grade(reason Reason, iterations int, stalledThenRecovered bool) byte {
	switch reason {
	case Converged:
		switch {
		case iterations <= 10:
			return 'A'
		case iterations <= 100:
			return 'B'
		default:
			return 'C'
		}
	case IterationLimit, Stagnated:
		if stalledThenRecovered {
			return 'D'
		}
		return 'F'
	default:
		return 'F'
	}
}
