// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "sort"

// CSR is a compressed sparse row matrix: rowPtr has length rows+1, and the
// entries of row i live in colIdx[rowPtr[i]:rowPtr[i+1]] (sorted ascending
// by column) with matching values in val. CSR gives O(1) access to a row's
// nonzeros in order, which is what Jacobi, Gauss-Seidel, and backward push
// need.
type CSR struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	val        []float64

	diagOnce  bool
	diagIdx   []int     // per-row index into colIdx/val of the diagonal, or -1
	diagVal   []float64 // cached diagonal value, valid where diagIdx[i] >= 0
	rowAbsSum []float64 // cached σ_row(i)
}

// NewCSR builds a CSR matrix directly from already sorted, deduplicated
// compressed-row arrays. Callers that do not already have this layout
// should build a COO and call ToCSR.
func NewCSR(rows, cols int, rowPtr, colIdx []int, val []float64) (*CSR, error) {
	if err := CheckSquareDims(rows, cols); err != nil {
		return nil, err
	}
	if len(rowPtr) != rows+1 {
		return nil, newErr(InvalidMatrix, -1, -1, "rowPtr must have length rows+1=%d, got %d", rows+1, len(rowPtr))
	}
	if len(colIdx) != len(val) {
		return nil, newErr(InvalidMatrix, -1, -1, "colIdx/val length mismatch: %d vs %d", len(colIdx), len(val))
	}
	for i := 0; i < rows; i++ {
		start, end := rowPtr[i], rowPtr[i+1]
		if start < 0 || end < start || end > len(colIdx) {
			return nil, newErr(InvalidMatrix, i, -1, "row pointer out of range for row %d", i)
		}
		for k := start + 1; k < end; k++ {
			if colIdx[k] <= colIdx[k-1] {
				return nil, newErr(InvalidMatrix, i, colIdx[k], "column indices must be sorted ascending without duplicates in row %d", i)
			}
		}
		for k := start; k < end; k++ {
			if colIdx[k] < 0 || colIdx[k] >= cols {
				return nil, newErr(InvalidMatrix, i, colIdx[k], "column index out of range")
			}
		}
	}
	if err := CheckFinite(val, nil, nil); err != nil {
		return nil, err
	}
	return &CSR{rows: rows, cols: cols, rowPtr: rowPtr, colIdx: colIdx, val: val}, nil
}

func (m *CSR) Rows() int      { return m.rows }
func (m *CSR) Cols() int      { return m.cols }
func (m *CSR) NNZ() int       { return len(m.val) }
func (m *CSR) Format() Format { return CSRFormat }

// ensureCache lazily computes the per-row diagonal index/value and
// off-diagonal absolute sum in a single pass, computed once and cached
// for the lifetime of the matrix.
func (m *CSR) ensureCache() {
	if m.diagOnce {
		return
	}
	m.diagIdx = make([]int, m.rows)
	m.diagVal = make([]float64, m.rows)
	m.rowAbsSum = make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		var sum float64
		di := -1
		var dv float64
		for k := start; k < end; k++ {
			if m.colIdx[k] == i {
				di = k
				dv = m.val[k]
				continue
			}
			v := m.val[k]
			if v < 0 {
				v = -v
			}
			sum += v
		}
		m.diagIdx[i] = di
		m.diagVal[i] = dv
		m.rowAbsSum[i] = sum
	}
	m.diagOnce = true
}

// Diag returns M_ii, located during ensureCache's single linear pass
// over each row's stored entries, and cached across calls.
func (m *CSR) Diag(i int) (float64, bool) {
	m.ensureCache()
	if m.diagIdx[i] < 0 {
		return 0, false
	}
	return m.diagVal[i], true
}

// RowIter yields every off-diagonal entry of row i in ascending column
// order; it performs no allocation.
func (m *CSR) RowIter(i int, fn func(j int, v float64)) {
	start, end := m.rowPtr[i], m.rowPtr[i+1]
	for k := start; k < end; k++ {
		j := m.colIdx[k]
		if j == i {
			continue
		}
		fn(j, m.val[k])
	}
}

// ColIter yields every off-diagonal entry of column j by scanning all rows.
// CSR has no column index, so this is O(nnz); callers on the hot path
// (forward push, transpose products) should prefer a CSC built once via
// ToCSC.
func (m *CSR) ColIter(j int, fn func(i int, v float64)) {
	for i := 0; i < m.rows; i++ {
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		k := start + sort.Search(end-start, func(k int) bool { return m.colIdx[start+k] >= j })
		if k < end && m.colIdx[k] == j {
			if i != j {
				fn(i, m.val[k])
			}
		}
	}
}

// RowAbsSum returns σ_row(i) = Σ_{k≠i} |M_ik|.
func (m *CSR) RowAbsSum(i int) float64 {
	m.ensureCache()
	return m.rowAbsSum[i]
}

// ColAbsSum returns σ_col(j) by scanning every row; prefer a CSC for
// repeated column queries.
func (m *CSR) ColAbsSum(j int) float64 {
	var sum float64
	m.ColIter(j, func(i int, v float64) {
		if v < 0 {
			v = -v
		}
		sum += v
	})
	return sum
}

// MatVec computes y <- M*x row by row, including the diagonal term.
func (m *CSR) MatVec(x, y []float64) {
	if VecDimMismatch(len(x), m.cols) || VecDimMismatch(len(y), m.rows) {
		panic("storage: MatVec dimension mismatch")
	}
	for i := 0; i < m.rows; i++ {
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		var sum float64
		for k := start; k < end; k++ {
			sum += m.val[k] * x[m.colIdx[k]]
		}
		y[i] = sum
	}
}

// TransposeMatVec computes y <- Mᵀ*x by scatter-accumulation over rows.
func (m *CSR) TransposeMatVec(x, y []float64) {
	if VecDimMismatch(len(x), m.rows) || VecDimMismatch(len(y), m.cols) {
		panic("storage: TransposeMatVec dimension mismatch")
	}
	for i := range y {
		y[i] = 0
	}
	for i := 0; i < m.rows; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		for k := start; k < end; k++ {
			y[m.colIdx[k]] += m.val[k] * xi
		}
	}
}

// ToCSC converts the receiver to compressed-column form in O(nnz).
func (m *CSR) ToCSC() *CSC {
	colPtr := make([]int, m.cols+1)
	for _, j := range m.colIdx {
		colPtr[j+1]++
	}
	for j := 0; j < m.cols; j++ {
		colPtr[j+1] += colPtr[j]
	}
	rowIdx := make([]int, len(m.colIdx))
	vals := make([]float64, len(m.val))
	next := make([]int, m.cols)
	copy(next, colPtr[:m.cols])
	for i := 0; i < m.rows; i++ {
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		for k := start; k < end; k++ {
			j := m.colIdx[k]
			dst := next[j]
			rowIdx[dst] = i
			vals[dst] = m.val[k]
			next[j]++
		}
	}
	return &CSC{rows: m.rows, cols: m.cols, colPtr: colPtr, rowIdx: rowIdx, val: vals}
}

// ToCOO expands the receiver back into triplet form, used by the
// round-trip storage property in the testable properties list.
func (m *CSR) ToCOO() *COO {
	row := make([]int, 0, len(m.val))
	col := make([]int, 0, len(m.val))
	val := make([]float64, 0, len(m.val))
	for i := 0; i < m.rows; i++ {
		start, end := m.rowPtr[i], m.rowPtr[i+1]
		for k := start; k < end; k++ {
			row = append(row, i)
			col = append(col, m.colIdx[k])
			val = append(val, m.val[k])
		}
	}
	c, _ := NewCOO(m.rows, m.cols, row, col, val)
	return c
}

// Clone returns a deep copy, used by Analysis' diagonal repair so the
// original matrix is never mutated.
func (m *CSR) Clone() *CSR {
	rowPtr := append([]int(nil), m.rowPtr...)
	colIdx := append([]int(nil), m.colIdx...)
	val := append([]float64(nil), m.val...)
	return &CSR{rows: m.rows, cols: m.cols, rowPtr: rowPtr, colIdx: colIdx, val: val}
}

// SetDiag overwrites the diagonal entry of row i to v, inserting it in
// sorted position if row i previously had no diagonal entry. Used only by
// the diagonal-repair path in package analysis; it invalidates the cache.
func (m *CSR) SetDiag(i int, v float64) {
	start, end := m.rowPtr[i], m.rowPtr[i+1]
	for k := start; k < end; k++ {
		if m.colIdx[k] == i {
			m.val[k] = v
			m.diagOnce = false
			return
		}
	}
	// Insert a new diagonal entry in sorted position.
	pos := start + sort.Search(end-start, func(k int) bool { return m.colIdx[start+k] >= i })
	m.colIdx = append(m.colIdx, 0)
	copy(m.colIdx[pos+1:], m.colIdx[pos:])
	m.colIdx[pos] = i
	m.val = append(m.val, 0)
	copy(m.val[pos+1:], m.val[pos:])
	m.val[pos] = v
	for r := i + 1; r <= m.rows; r++ {
		m.rowPtr[r]++
	}
	m.diagOnce = false
}
