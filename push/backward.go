// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package push

import "github.com/ruvnet/sublinear-time-solver-sub004/storage"

// Backward runs sink-centric backward push for a functional query vector
// t, computing a left estimate p and residual q such that
//
//	t^T x  ≈  p^T b + q^T x
//
// with x the (unknown) solution of M*x = b. It is the adjoint of Forward:
// the fixed point is pi = t + pi·N, N_uv = -M_uv/D_u, so expanding node u
// moves its mass into pi[u], redistributed along row u (RowIter, since
// N_uv for fixed u ranges over columns v of row u) weighted by -M_uv/D_u.
// p is pi rescaled by the diagonal at the moment each node is popped
// (p_u = pi_u/D_u), since x = (I-N)^-1 D^-1 b makes t^T x = pi^T D^-1 b,
// not pi^T b directly -- the same D-division Simulate applies when a
// random walk absorbs. q accumulates at the nodes t has not yet been
// fully pushed through and is exactly the vector a downstream
// random-walk estimator needs to resolve the q^T x term.
func Backward(m storage.Matrix, t []float64, epsilon float64, maxPushes int) Result {
	n := m.Rows()
	p := make([]float64, n)
	q := make([]float64, n)
	copy(q, t)

	active := newActiveQueue(n)
	for i := 0; i < n; i++ {
		if abs(q[i]) > epsilon {
			active.upsert(i, abs(q[i]))
		}
	}

	pushes := 0
	for !active.empty() && pushes < maxPushes {
		u, pri := active.popMax()
		if pri <= epsilon {
			break
		}
		mass := q[u]
		q[u] = 0

		du, _ := m.Diag(u)
		p[u] += mass / du

		m.RowIter(u, func(v int, muv float64) {
			if v == u {
				return
			}
			q[v] += (-muv / du) * mass
			if abs(q[v]) > epsilon {
				active.upsert(v, abs(q[v]))
			}
		})
		pushes++
	}

	return Result{Estimate: p, Residual: q, Pushes: pushes}
}
