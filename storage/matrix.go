// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage implements the sparse and dense matrix representations
// that back the solver core: triplet (COO), compressed-row (CSR),
// compressed-column (CSC), and a dense fallback for small or non-sparse
// systems. CSR, CSC and dense satisfy Matrix, which exposes only the
// operations the solvers need: row/column iteration, diagonal lookup,
// absolute off-diagonal sums, and mat-vec products. COO is an ingest
// format only and does not satisfy Matrix; it is converted with ToCSR,
// ToCSC or ToDense.
package storage

import "math"

const defaultTauDiag = 1e-14

// TauDiag is the minimum magnitude a diagonal entry must have to be
// considered present. Entries at or below TauDiag are treated as missing
// (grade F, see the analysis package) unless repaired.
var TauDiag = defaultTauDiag

// Format names the physical layout backing a Matrix.
type Format int

const (
	Dense Format = iota
	COOFormat
	CSRFormat
	CSCFormat
)

func (f Format) String() string {
	switch f {
	case Dense:
		return "dense"
	case COOFormat:
		return "coo"
	case CSRFormat:
		return "csr"
	case CSCFormat:
		return "csc"
	default:
		return "unknown"
	}
}

// Entry is a single nonzero encountered during row or column iteration.
type Entry struct {
	Index int // column index for a row iterator, row index for a column iterator
	Value float64
}

// Matrix is the read-only contract every storage representation satisfies.
// It is the only type the rest of the engine (Analysis, solvers, push
// estimators) depends on, so a solver never needs to know whether it is
// walking a CSR, CSC, or dense matrix.
type Matrix interface {
	// Rows and Cols report the dimensions; Rows() == Cols() always holds
	// for matrices accepted by this engine.
	Rows() int
	Cols() int
	// NNZ reports the number of stored (nonzero) entries.
	NNZ() int
	// Format reports the physical layout.
	Format() Format

	// Diag returns the diagonal entry M_ii and whether it was found.
	Diag(i int) (float64, bool)

	// RowIter calls fn for every stored off-diagonal entry (j, M_ij) of
	// row i, in ascending column order. It must not allocate per call.
	RowIter(i int, fn func(j int, v float64))
	// ColIter calls fn for every stored off-diagonal entry (i, M_ij) of
	// column j, in ascending row order.
	ColIter(j int, fn func(i int, v float64))

	// RowAbsSum returns σ_row(i) = Σ_{j≠i} |M_ij|.
	RowAbsSum(i int) float64
	// ColAbsSum returns σ_col(j) = Σ_{i≠j} |M_ij|.
	ColAbsSum(j int) float64

	// MatVec computes y ← M*x. x and y must both have length Rows().
	MatVec(x, y []float64)
	// TransposeMatVec computes y ← Mᵀ*x.
	TransposeMatVec(x, y []float64)
}

// CheckSquareDims returns a DimensionMismatch-coded Error if rows and cols
// disagree, or an InvalidMatrix-coded Error if they are non-positive.
func CheckSquareDims(rows, cols int) error {
	if rows != cols {
		return newErr(DimensionMismatch, -1, -1, "matrix must be square, got %d x %d", rows, cols)
	}
	if rows <= 0 {
		return newErr(InvalidMatrix, -1, -1, "matrix dimension must be positive, got %d", rows)
	}
	return nil
}

// CheckFinite reports a NonFiniteValue error for the first non-finite entry
// found, or nil if every value in vals is finite.
func CheckFinite(vals []float64, rowOf func(k int) int, colOf func(k int) int) error {
	for k, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			r, c := -1, -1
			if rowOf != nil {
				r = rowOf(k)
			}
			if colOf != nil {
				c = colOf(k)
			}
			return newErr(NonFiniteValue, r, c, "non-finite value %v at index %d", v, k)
		}
	}
	return nil
}

// VecDimMismatch is a convenience check used by MatVec/TransposeMatVec
// implementations.
func VecDimMismatch(got, want int) bool { return got != want }
