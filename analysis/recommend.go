// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

// Method is a closed tagged variant naming the solver family the hybrid
// dispatcher may select, or the caller may request explicitly.
type Method string

const (
	Jacobi             Method = "jacobi"
	GaussSeidel        Method = "gauss_seidel"
	ConjugateGradient  Method = "conjugate_gradient"
	Neumann            Method = "neumann"
	ForwardPush        Method = "forward_push"
	BackwardPush       Method = "backward_push"
	RandomWalk         Method = "random_walk"
	Bidirectional      Method = "bidirectional"
	Hybrid             Method = "hybrid"
)

// QueryMode distinguishes the two query shapes the engine supports.
type QueryMode int

const (
	FullSolution QueryMode = iota
	Functional
)

// Recommend implements the method-selection mapping. n and nnz
// describe the matrix after any repair has been applied; mode says
// whether the caller wants the full solution vector or a single
// functional estimate.
func Recommend(r *Report, n, nnz int, mode QueryMode) Method {
	density := float64(nnz) / (float64(n) * float64(n))

	switch {
	case r.Symmetric && r.DeltaRow > 0:
		return ConjugateGradient
	case density <= 0.001 && n > 1e4:
		if mode == Functional {
			return Bidirectional
		}
		return ForwardPush
	case density <= 0.05 && r.IsRDD && r.DeltaRow > 0:
		return Neumann
	default:
		return GaussSeidel
	}
}
