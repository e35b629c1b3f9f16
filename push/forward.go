// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package push

import "github.com/ruvnet/sublinear-time-solver-sub004/storage"

// Result carries a push computation's estimate and leftover residual,
// along with the number of node expansions performed -- the quantity
// that must stay sublinear in n for the call to have been worth making.
type Result struct {
	Estimate []float64
	Residual []float64
	Pushes   int
}

// Forward runs source-centric forward push against the Jacobi splitting
// M = D - (D - M), i.e. the fixed point x = D⁻¹b + N·x with
// N_uv = -M_uv/D_u (u≠v). It maintains an estimate p and a residual r
// seeded at r = D⁻¹b, and repeatedly expands the node with the largest
// outstanding |r[u]|: that mass moves into p[u], then is redistributed to
// every row w with a nonzero in column u (found via ColIter, since N_wu
// depends on M_wu) weighted by -M_wu/D_w. Expansion stops once every
// residual falls below epsilon or maxPushes is reached, whichever first;
// the caller can then bound the unresolved error from the returned
// residual's L1 norm.
func Forward(m storage.Matrix, b []float64, epsilon float64, maxPushes int) Result {
	n := m.Rows()
	p := make([]float64, n)
	r := make([]float64, n)
	for i := 0; i < n; i++ {
		d, _ := m.Diag(i)
		r[i] = b[i] / d
	}

	q := newActiveQueue(n)
	for i := 0; i < n; i++ {
		if abs(r[i]) > epsilon {
			q.upsert(i, abs(r[i]))
		}
	}

	pushes := 0
	for !q.empty() && pushes < maxPushes {
		u, pri := q.popMax()
		if pri <= epsilon {
			break
		}
		mass := r[u]
		r[u] = 0
		p[u] += mass

		m.ColIter(u, func(w int, muw float64) {
			if w == u {
				return
			}
			dw, _ := m.Diag(w)
			r[w] += (-muw / dw) * mass
			if abs(r[w]) > epsilon {
				q.upsert(w, abs(r[w]))
			}
		})
		pushes++
	}

	return Result{Estimate: p, Residual: r, Pushes: pushes}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
