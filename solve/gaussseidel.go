// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

// GaussSeidel implements the in-place sweep
//
//	x[i] <- (b[i] - Σ_{j<i} M_ij·x[j] - Σ_{j>i} M_ij·x_old[j]) / M_ii
//
// Because it updates x in place row by row, it sees the newest value for
// every j < i within the same sweep, which is why it typically converges
// in fewer iterations than Jacobi for the same system.
type GaussSeidel struct {
	m storage.Matrix
	b []float64

	x, scratch []float64
	bNorm      float64

	pool *vecops.Pool
}

func (g *GaussSeidel) Init(m storage.Matrix, b []float64, x0 []float64, pool *vecops.Pool) {
	n := m.Rows()
	g.m, g.b, g.pool = m, b, pool
	g.x = pool.Get(n, x0 == nil)
	if x0 != nil {
		copy(g.x, x0)
	}
	g.scratch = pool.Get(n, false)
	g.bNorm = RHSNorm(b)
}

func (g *GaussSeidel) Step() float64 {
	n := g.m.Rows()
	for i := 0; i < n; i++ {
		dv, _ := g.m.Diag(i)
		sum := g.b[i]
		g.m.RowIter(i, func(col int, v float64) {
			sum -= v * g.x[col]
		})
		g.x[i] = sum / dv
	}
	if !checkFiniteStep(g.x) {
		return 1.01
	}
	return Residual(g.m, g.b, g.x, g.scratch, g.bNorm)
}

func (g *GaussSeidel) X() []float64 { return g.x }

func (g *GaussSeidel) Release() {
	g.pool.Put(g.x)
	g.pool.Put(g.scratch)
}
