// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

// DenseMatrix is a row-major n x n dense matrix, used only when n <= 256
// or the density estimate is >= 0.25 (see PreferDense).
type DenseMatrix struct {
	n    int
	data []float64
}

// NewDense allocates a zeroed n x n dense matrix.
func NewDense(rows, cols int) *DenseMatrix {
	if err := CheckSquareDims(rows, cols); err != nil {
		panic(err)
	}
	return &DenseMatrix{n: rows, data: make([]float64, rows*cols)}
}

// NewDenseFromRows builds a dense matrix from a row-major [][]float64.
func NewDenseFromRows(rows [][]float64) (*DenseMatrix, error) {
	n := len(rows)
	if err := CheckSquareDims(n, n); err != nil {
		return nil, err
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, newErr(InvalidMatrix, i, -1, "row %d has length %d, want %d", i, len(row), n)
		}
		data = append(data, row...)
	}
	if err := CheckFinite(data, func(k int) int { return k / n }, func(k int) int { return k % n }); err != nil {
		return nil, err
	}
	return &DenseMatrix{n: n, data: data}, nil
}

func (d *DenseMatrix) Rows() int      { return d.n }
func (d *DenseMatrix) Cols() int      { return d.n }
func (d *DenseMatrix) Format() Format { return Dense }

func (d *DenseMatrix) NNZ() int {
	nnz := 0
	for _, v := range d.data {
		if v != 0 {
			nnz++
		}
	}
	return nnz
}

func (d *DenseMatrix) at(i, j int) float64 { return d.data[i*d.n+j] }

func (d *DenseMatrix) Diag(i int) (float64, bool) {
	v := d.at(i, i)
	return v, v != 0 || d.hasExplicitDiag(i)
}

// hasExplicitDiag treats a dense matrix as always carrying an explicit
// diagonal slot; only its magnitude determines whether analysis considers
// it degenerate.
func (d *DenseMatrix) hasExplicitDiag(int) bool { return true }

func (d *DenseMatrix) RowIter(i int, fn func(j int, v float64)) {
	base := i * d.n
	for j := 0; j < d.n; j++ {
		if j == i {
			continue
		}
		if v := d.data[base+j]; v != 0 {
			fn(j, v)
		}
	}
}

func (d *DenseMatrix) ColIter(j int, fn func(i int, v float64)) {
	for i := 0; i < d.n; i++ {
		if i == j {
			continue
		}
		if v := d.at(i, j); v != 0 {
			fn(i, v)
		}
	}
}

func (d *DenseMatrix) RowAbsSum(i int) float64 {
	var sum float64
	d.RowIter(i, func(_ int, v float64) {
		if v < 0 {
			v = -v
		}
		sum += v
	})
	return sum
}

func (d *DenseMatrix) ColAbsSum(j int) float64 {
	var sum float64
	d.ColIter(j, func(_ int, v float64) {
		if v < 0 {
			v = -v
		}
		sum += v
	})
	return sum
}

func (d *DenseMatrix) MatVec(x, y []float64) {
	if VecDimMismatch(len(x), d.n) || VecDimMismatch(len(y), d.n) {
		panic("storage: MatVec dimension mismatch")
	}
	for i := 0; i < d.n; i++ {
		base := i * d.n
		var sum float64
		for j := 0; j < d.n; j++ {
			sum += d.data[base+j] * x[j]
		}
		y[i] = sum
	}
}

func (d *DenseMatrix) TransposeMatVec(x, y []float64) {
	if VecDimMismatch(len(x), d.n) || VecDimMismatch(len(y), d.n) {
		panic("storage: TransposeMatVec dimension mismatch")
	}
	for j := 0; j < d.n; j++ {
		y[j] = 0
	}
	for i := 0; i < d.n; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}
		base := i * d.n
		for j := 0; j < d.n; j++ {
			y[j] += d.data[base+j] * xi
		}
	}
}

// Set assigns M_ij = v. Used by Analysis' repair path and by test fixtures.
func (d *DenseMatrix) Set(i, j int, v float64) { d.data[i*d.n+j] = v }

// At returns M_ij.
func (d *DenseMatrix) At(i, j int) float64 { return d.at(i, j) }

// Clone returns a deep copy.
func (d *DenseMatrix) Clone() *DenseMatrix {
	data := append([]float64(nil), d.data...)
	return &DenseMatrix{n: d.n, data: data}
}

// ToCOO expands the dense matrix into triplet form over its nonzeros.
func (d *DenseMatrix) ToCOO() *COO {
	var row, col []int
	var val []float64
	for i := 0; i < d.n; i++ {
		base := i * d.n
		for j := 0; j < d.n; j++ {
			if v := d.data[base+j]; v != 0 {
				row = append(row, i)
				col = append(col, j)
				val = append(val, v)
			}
		}
	}
	c, _ := NewCOO(d.n, d.n, row, col, val)
	return c
}
