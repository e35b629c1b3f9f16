// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "sort"

// COO is a coordinate-format (triplet) sparse matrix: three parallel slices
// of equal length holding the row index, column index, and value of each
// stored entry. COO is cheap to build incrementally and is the natural
// ingest format; it is converted to CSR or CSC before any solver runs.
type COO struct {
	rows, cols int
	row        []int
	col        []int
	val        []float64
}

// NewCOO builds a COO matrix of the given dimensions from parallel triplet
// slices. The slices are not copied; NewCOO takes ownership of them. Entries
// need not be sorted and may contain duplicate (row, col) pairs -- these are
// summed when the matrix is converted to CSR or CSC.
func NewCOO(rows, cols int, row, col []int, val []float64) (*COO, error) {
	if err := CheckSquareDims(rows, cols); err != nil {
		return nil, err
	}
	if len(row) != len(col) || len(row) != len(val) {
		return nil, newErr(InvalidMatrix, -1, -1, "triplet slices must have equal length: got %d/%d/%d", len(row), len(col), len(val))
	}
	for k := range row {
		if row[k] < 0 || row[k] >= rows || col[k] < 0 || col[k] >= cols {
			return nil, newErr(InvalidMatrix, row[k], col[k], "triplet index out of range at entry %d", k)
		}
	}
	if err := CheckFinite(val, func(k int) int { return row[k] }, func(k int) int { return col[k] }); err != nil {
		return nil, err
	}
	return &COO{rows: rows, cols: cols, row: row, col: col, val: val}, nil
}

// Add appends a single entry to the triplet lists. Duplicate (i, j) pairs
// are allowed and are summed on conversion.
func (c *COO) Add(i, j int, v float64) {
	c.row = append(c.row, i)
	c.col = append(c.col, j)
	c.val = append(c.val, v)
}

func (c *COO) Rows() int      { return c.rows }
func (c *COO) Cols() int      { return c.cols }
func (c *COO) NNZ() int       { return len(c.val) }
func (c *COO) Format() Format { return COOFormat }

// Triplets exposes the raw parallel arrays. The returned slices alias the
// receiver's storage and must not be mutated by the caller.
func (c *COO) Triplets() (row, col []int, val []float64) {
	return c.row, c.col, c.val
}

// dedupedByRow returns triplets sorted by (row, col) with duplicate
// coordinates summed into a single entry, used by both ToCSR and ToCSC.
func (c *COO) dedupedByRow() (rowPtr []int, colIdx []int, vals []float64) {
	n := c.NNZ()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ra, rb := c.row[order[a]], c.row[order[b]]
		if ra != rb {
			return ra < rb
		}
		return c.col[order[a]] < c.col[order[b]]
	})

	rowPtr = make([]int, c.rows+1)
	colIdx = make([]int, 0, n)
	vals = make([]float64, 0, n)

	pos := 0
	for r := 0; r < c.rows; r++ {
		rowPtr[r] = len(colIdx)
		for pos < n {
			k := order[pos]
			if c.row[k] != r {
				break
			}
			j := c.col[k]
			v := c.val[k]
			pos++
			// Merge any further entries sharing (r, j).
			for pos < n {
				k2 := order[pos]
				if c.row[k2] != r || c.col[k2] != j {
					break
				}
				v += c.val[k2]
				pos++
			}
			colIdx = append(colIdx, j)
			vals = append(vals, v)
		}
	}
	rowPtr[c.rows] = len(colIdx)
	return rowPtr, colIdx, vals
}

// ToCSR converts the receiver to compressed-row storage, summing duplicate
// (row, col) entries and sorting column indices ascending within each row.
func (c *COO) ToCSR() *CSR {
	rowPtr, colIdx, vals := c.dedupedByRow()
	return &CSR{rows: c.rows, cols: c.cols, rowPtr: rowPtr, colIdx: colIdx, val: vals}
}

// ToCSC converts the receiver to compressed-column storage, summing
// duplicate (row, col) entries and sorting row indices ascending within
// each column. It reuses the CSR dedup path on the transposed triplets.
func (c *COO) ToCSC() *CSC {
	t := &COO{rows: c.cols, cols: c.rows, row: c.col, col: c.row, val: c.val}
	colPtr, rowIdx, vals := t.dedupedByRow()
	return &CSC{rows: c.rows, cols: c.cols, colPtr: colPtr, rowIdx: rowIdx, val: vals}
}

// ToDense materializes the receiver as a dense matrix. Intended only for
// small n (density ≥ 0.25 or n ≤ 256).
func (c *COO) ToDense() *DenseMatrix {
	d := NewDense(c.rows, c.cols)
	for k := range c.val {
		d.data[c.row[k]*c.cols+c.col[k]] += c.val[k]
	}
	return d
}
