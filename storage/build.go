// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

// smallN and denseDensityMin select the dense fallback representation:
// used only when n <= smallN or density >= denseDensityMin.
const (
	smallN          = 256
	denseDensityMin = 0.25
)

// PreferDense reports whether a matrix with the given dimension and
// nonzero count should be materialized densely rather than sparsely.
func PreferDense(n, nnz int) bool {
	if n <= smallN {
		return true
	}
	density := float64(nnz) / (float64(n) * float64(n))
	return density >= denseDensityMin
}

// FromCOO converts raw triplets into the storage representation
// PreferDense picks for ingest: dense for small/high-density systems,
// otherwise CSR (the layout every iterative and forward-push solver
// wants first).
func FromCOO(rows, cols int, row, col []int, val []float64) (Matrix, error) {
	coo, err := NewCOO(rows, cols, row, col, val)
	if err != nil {
		return nil, err
	}
	if PreferDense(rows, len(val)) {
		return coo.ToDense(), nil
	}
	return coo.ToCSR(), nil
}

// Ingest mirrors the JSON-equivalent ingest shapes accepted at the API
// boundary: dense, coo, and csr/csc. Kind must be one of "dense", "coo",
// "csr", "csc".
type Ingest struct {
	Rows int
	Cols int
	Kind string

	// Dense
	Data [][]float64

	// COO
	RowIndices []int
	ColIndices []int
	Values     []float64

	// CSR / CSC
	Ptr     []int
	Indices []int
}

// Build materializes the Matrix described by an Ingest, or an
// InvalidMatrix/DimensionMismatch Error if the shape is inconsistent.
func Build(in Ingest) (Matrix, error) {
	switch in.Kind {
	case "dense":
		return NewDenseFromRows(in.Data)
	case "coo":
		return FromCOO(in.Rows, in.Cols, in.RowIndices, in.ColIndices, in.Values)
	case "csr":
		return NewCSR(in.Rows, in.Cols, in.Ptr, in.Indices, in.Values)
	case "csc":
		return NewCSC(in.Rows, in.Cols, in.Ptr, in.Indices, in.Values)
	default:
		return nil, newErr(InvalidMatrix, -1, -1, "unrecognized storage format %q", in.Kind)
	}
}
