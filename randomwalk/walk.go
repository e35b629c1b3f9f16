// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randomwalk implements the Monte Carlo estimator that resolves
// the residual mass a push computation left behind. Each walk is an
// instance of the Ulam-von Neumann method: starting from a node u, it
// steps to a random off-diagonal neighbor with probability proportional
// to the Jacobi transition weight, absorbing (and returning the local
// b-contribution) with the complementary probability, since a
// diagonally dominant row's off-diagonal mass never sums to one.
package randomwalk

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
)

// walkStep advances one random walk starting at u by one transition and
// reports whether it absorbed (terminated) this step, the next node if
// not, and the sign flip contributed by a negative off-diagonal entry.
func walkStep(m storage.Matrix, u int, rnd *rand.Rand) (absorbed bool, next int, sign float64) {
	du, _ := m.Diag(u)
	rowAbs := m.RowAbsSum(u)
	total := rowAbs / math.Abs(du)
	if total <= 0 {
		return true, u, 1
	}
	roll := rnd.Float64()
	if roll >= total {
		return true, u, 1
	}

	// Walk the row's off-diagonal entries, consuming roll as a running
	// cumulative-probability threshold, picking the neighbor it lands in.
	target := roll
	picked := -1
	var pickedSign float64 = 1
	m.RowIter(u, func(col int, v float64) {
		if picked >= 0 || col == u {
			return
		}
		p := math.Abs(v) / math.Abs(du)
		if target < p {
			picked = col
			if v < 0 {
				pickedSign = -1
			}
			return
		}
		target -= p
	})
	if picked < 0 {
		return true, u, 1
	}
	return false, picked, pickedSign
}

// Simulate runs a single random walk from source u, bounded to maxSteps,
// and returns the accumulated sample of x_u: the discounted b-value
// collected at the absorbing node, sign-adjusted by every negative
// transition taken along the way.
func Simulate(m storage.Matrix, b []float64, u int, maxSteps int, rnd *rand.Rand) float64 {
	sign := 1.0
	node := u
	for step := 0; step < maxSteps; step++ {
		absorbed, next, stepSign := walkStep(m, node, rnd)
		sign *= stepSign
		if absorbed {
			d, _ := m.Diag(node)
			return sign * b[node] / d
		}
		node = next
	}
	d, _ := m.Diag(node)
	return sign * b[node] / d
}
