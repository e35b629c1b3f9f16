// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func tridiag(n int) *COO {
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
	c, err := NewCOO(n, n, row, col, val)
	if err != nil {
		panic(err)
	}
	return c
}

func TestCOOToCSRRoundTrip(t *testing.T) {
	coo := tridiag(10)
	csr := coo.ToCSR()
	back := csr.ToCOO()

	wantRow, wantCol, wantVal := coo.Triplets()
	gotRow, gotCol, gotVal := back.Triplets()
	if len(wantVal) != len(gotVal) {
		t.Fatalf("nnz mismatch: got %d want %d", len(gotVal), len(wantVal))
	}

	type triplet struct {
		r, c int
		v    float64
	}
	want := make([]triplet, len(wantVal))
	for k := range wantVal {
		want[k] = triplet{wantRow[k], wantCol[k], wantVal[k]}
	}
	got := make([]triplet, len(gotVal))
	for k := range gotVal {
		got[k] = triplet{gotRow[k], gotCol[k], gotVal[k]}
	}
	less := func(s []triplet) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].r != s[j].r {
				return s[i].r < s[j].r
			}
			return s[i].c < s[j].c
		}
	}
	sort.Slice(want, less(want))
	sort.Slice(got, less(got))

	approxFloat := cmp.Comparer(func(a, b float64) bool {
		return math.Abs(a-b) < 1e-12
	})
	if diff := cmp.Diff(want, got, approxFloat, cmpopts.EquateEmpty(), cmp.AllowUnexported(triplet{})); diff != "" {
		t.Fatalf("triplet set mismatch (-want +got):\n%s", diff)
	}
}

func TestCSRToCSCToCSRRoundTrip(t *testing.T) {
	csr := tridiag(8).ToCSR()
	csc := csr.ToCSC()
	back := csc.ToCSR()

	for i := 0; i < csr.Rows(); i++ {
		start, end := csr.rowPtr[i], csr.rowPtr[i+1]
		bstart, bend := back.rowPtr[i], back.rowPtr[i+1]
		if end-start != bend-bstart {
			t.Fatalf("row %d nnz mismatch: got %d want %d", i, bend-bstart, end-start)
		}
		for k := 0; k < end-start; k++ {
			if csr.colIdx[start+k] != back.colIdx[bstart+k] || csr.val[start+k] != back.val[bstart+k] {
				t.Fatalf("row %d entry %d mismatch", i, k)
			}
		}
	}
}

func TestCSRDiagAndRowAbsSum(t *testing.T) {
	csr := tridiag(5).ToCSR()
	for i := 0; i < 5; i++ {
		d, ok := csr.Diag(i)
		if !ok || d != 4 {
			t.Fatalf("row %d: Diag = %v, %v; want 4, true", i, d, ok)
		}
	}
	if got := csr.RowAbsSum(0); got != 1 {
		t.Errorf("row 0 abs sum = %v, want 1", got)
	}
	if got := csr.RowAbsSum(2); got != 2 {
		t.Errorf("row 2 abs sum = %v, want 2", got)
	}
}

func TestCSRMatVecIdentity(t *testing.T) {
	rowPtr := []int{0, 1, 2, 3}
	colIdx := []int{0, 1, 2}
	val := []float64{1, 1, 1}
	m, err := NewCSR(3, 3, rowPtr, colIdx, val)
	if err != nil {
		t.Fatal(err)
	}
	x := []float64{5, 4, 3}
	y := make([]float64, 3)
	m.MatVec(x, y)
	for i := range x {
		if y[i] != x[i] {
			t.Errorf("y[%d] = %v, want %v", i, y[i], x[i])
		}
	}
}

func TestCSRRejectsUnsortedColumns(t *testing.T) {
	_, err := NewCSR(2, 2, []int{0, 2, 2}, []int{1, 0}, []float64{1, 1})
	if err == nil {
		t.Fatal("expected error for unsorted column indices")
	}
}

func TestPreferDense(t *testing.T) {
	if !PreferDense(100, 10) {
		t.Error("small n should prefer dense")
	}
	if PreferDense(10000, 1) {
		t.Error("large sparse n should not prefer dense")
	}
	if !PreferDense(10000, 30_000_000) {
		t.Error("high density should prefer dense")
	}
}
