// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

// Neumann accumulates the partial sums of the Neumann series for
// M = D(I - N), N = I - D⁻¹M:
//
//	x_k = Σ_{j=0}^{k} N^j D⁻¹ r0 + x0,  r0 = b - M*x0
//
// Each Step advances the running term v by one multiplication with N and
// folds it into the running sum, so a single matrix-vector product per
// iteration produces the next partial sum without ever forming N
// explicitly. Valid only when the spectral radius of N is below one,
// i.e. the matrix is diagonally dominant with a nonzero gap. Hybrid
// selection (analysis.Recommend) picks this method only for a row-dominant
// system with a positive gap; the dispatcher's retry and an explicit
// request run it without that check.
type Neumann struct {
	m storage.Matrix
	b []float64

	dinv, v, vNext, x, scratch []float64
	bNorm                      float64

	pool *vecops.Pool
}

func (nm *Neumann) Init(m storage.Matrix, b []float64, x0 []float64, pool *vecops.Pool) {
	n := m.Rows()
	nm.m, nm.b, nm.pool = m, b, pool
	nm.dinv = pool.Get(n, false)
	nm.v = pool.Get(n, false)
	nm.vNext = pool.Get(n, false)
	nm.x = pool.Get(n, false)
	nm.scratch = pool.Get(n, false)
	nm.bNorm = RHSNorm(b)

	for i := 0; i < n; i++ {
		d, _ := m.Diag(i)
		nm.dinv[i] = 1 / d
	}

	if x0 != nil {
		m.MatVec(x0, nm.scratch)
		for i := range nm.v {
			nm.v[i] = nm.dinv[i] * (b[i] - nm.scratch[i])
		}
		vecops.Copy(nm.x, x0)
		vecops.AXPY(1, nm.v, nm.x)
	} else {
		for i := range nm.v {
			nm.v[i] = nm.dinv[i] * b[i]
		}
		vecops.Copy(nm.x, nm.v)
	}
}

func (nm *Neumann) Step() float64 {
	nm.m.MatVec(nm.v, nm.scratch)
	for i := range nm.vNext {
		nm.vNext[i] = nm.v[i] - nm.dinv[i]*nm.scratch[i]
	}
	nm.v, nm.vNext = nm.vNext, nm.v
	vecops.AXPY(1, nm.v, nm.x)

	if !checkFiniteStep(nm.x) {
		return 1.01
	}
	return Residual(nm.m, nm.b, nm.x, nm.scratch, nm.bNorm)
}

func (nm *Neumann) X() []float64 { return nm.x }

func (nm *Neumann) Release() {
	nm.pool.Put(nm.dinv)
	nm.pool.Put(nm.v)
	nm.pool.Put(nm.vNext)
	nm.pool.Put(nm.x)
	nm.pool.Put(nm.scratch)
}
