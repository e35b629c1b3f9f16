// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"testing"

	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
)

func wellKnown3x3(t *testing.T) *storage.CSR {
	t.Helper()
	rows := [][]float64{{4, 1, 0}, {1, 3, -1}, {0, -1, 2}}
	var row, col []int
	var val []float64
	for i, r := range rows {
		for j, v := range r {
			if v != 0 {
				row = append(row, i)
				col = append(col, j)
				val = append(val, v)
			}
		}
	}
	coo, err := storage.NewCOO(3, 3, row, col, val)
	if err != nil {
		t.Fatal(err)
	}
	return coo.ToCSR()
}

func TestAnalyzeGradesStrictDominance(t *testing.T) {
	m := wellKnown3x3(t)
	r := Analyze(m)
	if !r.IsRDD {
		t.Error("expected strict row dominance")
	}
	if r.Grade != GradeB && r.Grade != GradeA {
		t.Errorf("grade = %v, want A or B", r.Grade)
	}
	if r.DeltaRow <= 0 {
		t.Errorf("delta = %v, want > 0", r.DeltaRow)
	}
}

func TestAnalyzeDetectsDegenerateDiagonal(t *testing.T) {
	rowPtr := []int{0, 1, 2}
	colIdx := []int{1, 0}
	val := []float64{1, 1}
	m, err := storage.NewCSR(2, 2, rowPtr, colIdx, val)
	if err != nil {
		t.Fatal(err)
	}
	r := Analyze(m)
	if r.Grade != GradeF {
		t.Errorf("grade = %v, want F", r.Grade)
	}
	if len(r.DegenerateRows) != 2 {
		t.Errorf("degenerate rows = %v, want both rows", r.DegenerateRows)
	}
}

func TestRepairProducesDominantDiagonal(t *testing.T) {
	rowPtr := []int{0, 1, 2}
	colIdx := []int{1, 0}
	val := []float64{2, 2}
	m, err := storage.NewCSR(2, 2, rowPtr, colIdx, val)
	if err != nil {
		t.Fatal(err)
	}
	repaired, entries, err := Repair(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 repairs, got %d", len(entries))
	}
	r := Analyze(repaired)
	if !r.IsRDD {
		t.Error("repaired matrix should be row diagonally dominant")
	}
	for _, e := range entries {
		if e.New < 2.4 {
			t.Errorf("row %d: repaired diagonal %v below expected 2.4", e.Row, e.New)
		}
	}
}

func TestRepairNeverMutatesOriginal(t *testing.T) {
	rowPtr := []int{0, 1, 2}
	colIdx := []int{1, 0}
	val := []float64{2, 2}
	m, err := storage.NewCSR(2, 2, rowPtr, colIdx, val)
	if err != nil {
		t.Fatal(err)
	}
	before := Analyze(m)
	_, _, err = Repair(m)
	if err != nil {
		t.Fatal(err)
	}
	after := Analyze(m)
	if before.Grade != after.Grade {
		t.Error("repair must not mutate the original matrix")
	}
}

func TestRecommendSymmetricPrefersCG(t *testing.T) {
	m := wellKnown3x3(t)
	// The 3x3 example above is symmetric already; the report fields are
	// pinned here so the check depends only on Recommend's mapping.
	r := Analyze(m)
	r.Symmetric = true
	r.DeltaRow = 0.1
	if got := Recommend(r, 3, 7, FullSolution); got != ConjugateGradient {
		t.Errorf("Recommend = %v, want conjugate_gradient", got)
	}
}

func TestRecommendSparseLargePrefersPush(t *testing.T) {
	r := &Report{IsRDD: true, DeltaRow: 0.3, Symmetric: false}
	if got := Recommend(r, 100000, 50, FullSolution); got != ForwardPush {
		t.Errorf("Recommend = %v, want forward_push", got)
	}
	if got := Recommend(r, 100000, 50, Functional); got != Bidirectional {
		t.Errorf("Recommend = %v, want bidirectional", got)
	}
}
