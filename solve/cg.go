// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

// CG implements the unpreconditioned Conjugate Gradient method for
// symmetric positive definite systems, grounded on gonum's linsolve.CG:
// the same ρ/ρ_prev bookkeeping and p-vector update, adapted from
// VecDense to plain []float64 scratch drawn from a vecops.Pool.
//
// References:
//   - Hestenes, M., and Stiefel, E. (1952). Methods of conjugate gradients
//     for solving linear systems. J. Res. Nat. Bur. Standards, 49(6), 409.
type CG struct {
	m storage.Matrix
	b []float64

	x, r, p, ap []float64
	rho, rhoPrev         float64
	bNorm                float64

	pool *vecops.Pool
}

func (c *CG) Init(m storage.Matrix, b []float64, x0 []float64, pool *vecops.Pool) {
	n := m.Rows()
	c.m, c.b, c.pool = m, b, pool
	c.x = pool.Get(n, x0 == nil)
	if x0 != nil {
		copy(c.x, x0)
	}
	c.r = pool.Get(n, false)
	c.p = pool.Get(n, true)
	c.ap = pool.Get(n, false)
	c.bNorm = RHSNorm(b)

	m.MatVec(c.x, c.r)
	vecops.AXPYTo(c.r, b, -1, c.r)
	c.rhoPrev = 1
}

func (c *CG) Step() float64 {
	c.rho = vecops.Dot(c.r, c.r)
	beta := c.rho / c.rhoPrev
	// p <- r + beta*p
	for i := range c.p {
		c.p[i] = c.r[i] + beta*c.p[i]
	}

	c.m.MatVec(c.p, c.ap)
	denom := vecops.Dot(c.p, c.ap)
	if denom == 0 {
		return 1.01
	}
	alpha := c.rho / denom

	vecops.AXPY(alpha, c.p, c.x)
	vecops.AXPY(-alpha, c.ap, c.r)
	c.rhoPrev = c.rho

	if !checkFiniteStep(c.x) {
		return 1.01
	}
	return vecops.Norm2(c.r) / c.bNorm
}

func (c *CG) X() []float64 { return c.x }

func (c *CG) Release() {
	c.pool.Put(c.x)
	c.pool.Put(c.r)
	c.pool.Put(c.p)
	c.pool.Put(c.ap)
}
