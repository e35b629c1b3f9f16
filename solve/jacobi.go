// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

// Jacobi implements the Jacobi iteration
//
//	x_new[i] = (b[i] - Σ_{j≠i} M_ij·x[j]) / M_ii
//
// computed from a row iterator, so it requires only that every diagonal
// be nonzero (enforced by package analysis before a solve starts).
type Jacobi struct {
	m storage.Matrix
	b []float64

	x, xNew, scratch []float64
	bNorm            float64

	pool *vecops.Pool
}

func (j *Jacobi) Init(m storage.Matrix, b []float64, x0 []float64, pool *vecops.Pool) {
	n := m.Rows()
	j.m, j.b, j.pool = m, b, pool
	j.x = pool.Get(n, x0 == nil)
	if x0 != nil {
		copy(j.x, x0)
	}
	j.xNew = pool.Get(n, false)
	j.scratch = pool.Get(n, false)
	j.bNorm = RHSNorm(b)
}

func (j *Jacobi) Step() float64 {
	n := j.m.Rows()
	for i := 0; i < n; i++ {
		dv, _ := j.m.Diag(i)
		sum := j.b[i]
		j.m.RowIter(i, func(col int, v float64) {
			sum -= v * j.x[col]
		})
		j.xNew[i] = sum / dv
	}
	j.x, j.xNew = j.xNew, j.x
	if !checkFiniteStep(j.x) {
		return 1.01 // signal non-convergence without propagating NaN/Inf
	}
	return Residual(j.m, j.b, j.x, j.scratch, j.bNorm)
}

func (j *Jacobi) X() []float64 { return j.x }

func (j *Jacobi) Release() {
	j.pool.Put(j.x)
	j.pool.Put(j.xNew)
	j.pool.Put(j.scratch)
}
