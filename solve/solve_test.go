// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/ruvnet/sublinear-time-solver-sub004/convergence"
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

func identity3(t *testing.T) storage.Matrix {
	t.Helper()
	m, err := storage.NewCSR(3, 3, []int{0, 1, 2, 3}, []int{0, 1, 2}, []float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// wellKnown3x3 is the diagonally dominant system [[4,1,0],[1,3,-1],[0,-1,2]].
func wellKnown3x3(t *testing.T) storage.Matrix {
	t.Helper()
	row := []int{0, 0, 1, 1, 1, 2, 2}
	col := []int{0, 1, 0, 1, 2, 1, 2}
	val := []float64{4, 1, 1, 3, -1, -1, 2}
	coo, err := storage.NewCOO(3, 3, row, col, val)
	if err != nil {
		t.Fatal(err)
	}
	return coo.ToCSR()
}

func tridiagCSR(t *testing.T, n int) storage.Matrix {
	t.Helper()
	var row, col []int
	var val []float64
	for i := 0; i < n; i++ {
		row = append(row, i)
		col = append(col, i)
		val = append(val, 4)
		if i > 0 {
			row = append(row, i)
			col = append(col, i-1)
			val = append(val, -1)
		}
		if i < n-1 {
			row = append(row, i)
			col = append(col, i+1)
			val = append(val, -1)
		}
	}
	coo, err := storage.NewCOO(n, n, row, col, val)
	if err != nil {
		t.Fatal(err)
	}
	return coo.ToCSR()
}

func poisson2D(t *testing.T, side int) (storage.Matrix, int) {
	t.Helper()
	n := side * side
	idx := func(r, c int) int { return r*side + c }
	var row, col []int
	var val []float64
	add := func(i, j int, v float64) {
		row = append(row, i)
		col = append(col, j)
		val = append(val, v)
	}
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			i := idx(r, c)
			add(i, i, 4)
			if r > 0 {
				add(i, idx(r-1, c), -1)
			}
			if r < side-1 {
				add(i, idx(r+1, c), -1)
			}
			if c > 0 {
				add(i, idx(r, c-1), -1)
			}
			if c < side-1 {
				add(i, idx(r, c+1), -1)
			}
		}
	}
	coo, err := storage.NewCOO(n, n, row, col, val)
	if err != nil {
		t.Fatal(err)
	}
	return coo.ToCSR(), n
}

func runToConvergence(t *testing.T, method Method, m storage.Matrix, b []float64, maxIter int) Outcome {
	t.Helper()
	pool := vecops.NewPool()
	det := convergence.NewDetector(1e-8, maxIter, time.Minute)
	return Run(context.Background(), method, m, b, nil, pool, det, false, nil)
}

func TestJacobiIdentity(t *testing.T) {
	m := identity3(t)
	b := []float64{5, 4, 3}
	out := runToConvergence(t, &Jacobi{}, m, b, 100)
	if out.Reason != convergence.Converged {
		t.Fatalf("reason = %v, want Converged", out.Reason)
	}
	for i, want := range b {
		if math.Abs(out.X[i]-want) > 1e-6 {
			t.Errorf("x[%d] = %v, want %v", i, out.X[i], want)
		}
	}
}

func TestGaussSeidelWellKnown(t *testing.T) {
	m := wellKnown3x3(t)
	b := []float64{5, 3, 1}
	out := runToConvergence(t, &GaussSeidel{}, m, b, 500)
	if out.Reason != convergence.Converged {
		t.Fatalf("reason = %v, want Converged", out.Reason)
	}
	scratch := make([]float64, 3)
	m.MatVec(out.X, scratch)
	for i := range b {
		if math.Abs(scratch[i]-b[i]) > 1e-4 {
			t.Errorf("Mx[%d] = %v, want %v", i, scratch[i], b[i])
		}
	}
}

func TestCGTridiagSPD(t *testing.T) {
	// CG is exercised here against the 20x20 tridiagonal system, which is
	// SPD.
	m := tridiagCSR(t, 20)
	b := make([]float64, 20)
	for i := range b {
		b[i] = 1
	}
	out := runToConvergence(t, &CG{}, m, b, 100)
	if out.Reason != convergence.Converged {
		t.Fatalf("reason = %v, want Converged", out.Reason)
	}
	scratch := make([]float64, 20)
	m.MatVec(out.X, scratch)
	for i := range b {
		if math.Abs(scratch[i]-b[i]) > 1e-4 {
			t.Errorf("Mx[%d] = %v, want %v", i, scratch[i], b[i])
		}
	}
}

func TestNeumannTridiag1000(t *testing.T) {
	n := 1000
	m := tridiagCSR(t, n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	out := runToConvergence(t, &Neumann{}, m, b, 2000)
	if out.Reason != convergence.Converged {
		t.Fatalf("reason = %v, want Converged, final residual %v after %d iters", out.Reason, out.FinalResidual, out.Iterations)
	}
}

func TestGaussSeidelPoisson30(t *testing.T) {
	m, n := poisson2D(t, 30)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	out := runToConvergence(t, &GaussSeidel{}, m, b, 2000)
	if out.Reason != convergence.Converged {
		t.Fatalf("reason = %v, want Converged", out.Reason)
	}
}

func TestRunIdempotentOnZeroRHS(t *testing.T) {
	m := identity3(t)
	b := []float64{0, 0, 0}
	out := runToConvergence(t, &Jacobi{}, m, b, 10)
	if out.Iterations != 0 {
		t.Errorf("iterations = %d, want 0 for zero RHS", out.Iterations)
	}
	for _, v := range out.X {
		if v != 0 {
			t.Errorf("x = %v, want all zero", out.X)
		}
	}
}
