// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "sort"

// CSC is the column-major mirror of CSR: colPtr has length cols+1, and the
// entries of column j live in rowIdx[colPtr[j]:colPtr[j+1]] (sorted
// ascending by row) with matching values in val. CSC gives O(1) access to
// a column's nonzeros in order, which is what forward push and Mᵀ
// products need.
type CSC struct {
	rows, cols int
	colPtr     []int
	rowIdx     []int
	val        []float64

	diagOnce  bool
	diagIdx   []int
	diagVal   []float64
	colAbsSum []float64
}

// NewCSC builds a CSC matrix directly from already sorted, deduplicated
// compressed-column arrays.
func NewCSC(rows, cols int, colPtr, rowIdx []int, val []float64) (*CSC, error) {
	if err := CheckSquareDims(rows, cols); err != nil {
		return nil, err
	}
	if len(colPtr) != cols+1 {
		return nil, newErr(InvalidMatrix, -1, -1, "colPtr must have length cols+1=%d, got %d", cols+1, len(colPtr))
	}
	if len(rowIdx) != len(val) {
		return nil, newErr(InvalidMatrix, -1, -1, "rowIdx/val length mismatch: %d vs %d", len(rowIdx), len(val))
	}
	for j := 0; j < cols; j++ {
		start, end := colPtr[j], colPtr[j+1]
		if start < 0 || end < start || end > len(rowIdx) {
			return nil, newErr(InvalidMatrix, -1, j, "column pointer out of range for column %d", j)
		}
		for k := start + 1; k < end; k++ {
			if rowIdx[k] <= rowIdx[k-1] {
				return nil, newErr(InvalidMatrix, rowIdx[k], j, "row indices must be sorted ascending without duplicates in column %d", j)
			}
		}
	}
	if err := CheckFinite(val, nil, nil); err != nil {
		return nil, err
	}
	return &CSC{rows: rows, cols: cols, colPtr: colPtr, rowIdx: rowIdx, val: val}, nil
}

func (m *CSC) Rows() int      { return m.rows }
func (m *CSC) Cols() int      { return m.cols }
func (m *CSC) NNZ() int       { return len(m.val) }
func (m *CSC) Format() Format { return CSCFormat }

func (m *CSC) ensureCache() {
	if m.diagOnce {
		return
	}
	m.diagIdx = make([]int, m.cols)
	m.diagVal = make([]float64, m.cols)
	m.colAbsSum = make([]float64, m.cols)
	for j := 0; j < m.cols; j++ {
		start, end := m.colPtr[j], m.colPtr[j+1]
		di := -1
		var dv, sum float64
		for k := start; k < end; k++ {
			if m.rowIdx[k] == j {
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
		m.diagIdx[j] = di
		m.diagVal[j] = dv
		m.colAbsSum[j] = sum
	}
	m.diagOnce = true
}

// Diag returns M_ii by locating the diagonal entry of column i.
func (m *CSC) Diag(i int) (float64, bool) {
	m.ensureCache()
	if m.diagIdx[i] < 0 {
		return 0, false
	}
	return m.diagVal[i], true
}

// ColIter yields every off-diagonal entry of column j in ascending row
// order.
func (m *CSC) ColIter(j int, fn func(i int, v float64)) {
	start, end := m.colPtr[j], m.colPtr[j+1]
	for k := start; k < end; k++ {
		i := m.rowIdx[k]
		if i == j {
			continue
		}
		fn(i, m.val[k])
	}
}

// RowIter yields every off-diagonal entry of row i by scanning all
// columns; prefer a CSR for repeated row queries.
func (m *CSC) RowIter(i int, fn func(j int, v float64)) {
	for j := 0; j < m.cols; j++ {
		start, end := m.colPtr[j], m.colPtr[j+1]
		k := start + sort.Search(end-start, func(k int) bool { return m.rowIdx[start+k] >= i })
		if k < end && m.rowIdx[k] == i && i != j {
			fn(j, m.val[k])
		}
	}
}

// ColAbsSum returns σ_col(j) = Σ_{i≠j} |M_ij|.
func (m *CSC) ColAbsSum(j int) float64 {
	m.ensureCache()
	return m.colAbsSum[j]
}

// RowAbsSum returns σ_row(i) by scanning every column.
func (m *CSC) RowAbsSum(i int) float64 {
	var sum float64
	m.RowIter(i, func(j int, v float64) {
		if v < 0 {
			v = -v
		}
		sum += v
	})
	return sum
}

// MatVec computes y <- M*x by scatter-accumulation over columns.
func (m *CSC) MatVec(x, y []float64) {
	if VecDimMismatch(len(x), m.cols) || VecDimMismatch(len(y), m.rows) {
		panic("storage: MatVec dimension mismatch")
	}
	for i := range y {
		y[i] = 0
	}
	for j := 0; j < m.cols; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		start, end := m.colPtr[j], m.colPtr[j+1]
		for k := start; k < end; k++ {
			y[m.rowIdx[k]] += m.val[k] * xj
		}
	}
}

// TransposeMatVec computes y <- Mᵀ*x column by column.
func (m *CSC) TransposeMatVec(x, y []float64) {
	if VecDimMismatch(len(x), m.rows) || VecDimMismatch(len(y), m.cols) {
		panic("storage: TransposeMatVec dimension mismatch")
	}
	for j := 0; j < m.cols; j++ {
		start, end := m.colPtr[j], m.colPtr[j+1]
		var sum float64
		for k := start; k < end; k++ {
			sum += m.val[k] * x[m.rowIdx[k]]
		}
		y[j] = sum
	}
}

// ToCSR converts the receiver to compressed-row form in O(nnz).
func (m *CSC) ToCSR() *CSR {
	rowPtr := make([]int, m.rows+1)
	for _, i := range m.rowIdx {
		rowPtr[i+1]++
	}
	for i := 0; i < m.rows; i++ {
		rowPtr[i+1] += rowPtr[i]
	}
	colIdx := make([]int, len(m.rowIdx))
	vals := make([]float64, len(m.val))
	next := make([]int, m.rows)
	copy(next, rowPtr[:m.rows])
	for j := 0; j < m.cols; j++ {
		start, end := m.colPtr[j], m.colPtr[j+1]
		for k := start; k < end; k++ {
			i := m.rowIdx[k]
			dst := next[i]
			colIdx[dst] = j
			vals[dst] = m.val[k]
			next[i]++
		}
	}
	return &CSR{rows: m.rows, cols: m.cols, rowPtr: rowPtr, colIdx: colIdx, val: vals}
}
