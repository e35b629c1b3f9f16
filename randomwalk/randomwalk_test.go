// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randomwalk

import (
	"math"
	"testing"

	"github.com/ruvnet/sublinear-time-solver-sub004/rng"
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
)

func identity3(t *testing.T) storage.Matrix {
	t.Helper()
	m, err := storage.NewCSR(3, 3, []int{0, 1, 2, 3}, []int{0, 1, 2}, []float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSimulateIdentityIsExact(t *testing.T) {
	m := identity3(t)
	b := []float64{5, 4, 3}
	src := rng.New(1)
	for u := 0; u < 3; u++ {
		got := Simulate(m, b, u, 10, src.Next())
		if got != b[u] {
			t.Errorf("Simulate(%d) = %v, want %v", u, got, b[u])
		}
	}
}

func TestFunctionalEstimateIdentityMatchesDotProduct(t *testing.T) {
	m := identity3(t)
	b := []float64{5, 4, 3}
	q := []float64{1, 1, 1}
	src := rng.New(42)
	est := FunctionalEstimate(m, b, q, src, 256, 4096, 20, 0.01, 0.01)
	want := b[0] + b[1] + b[2]
	if math.Abs(est.Value-want) > 1 {
		t.Errorf("estimate = %v, want approx %v (walks=%d)", est.Value, want, est.Walks)
	}
	if est.Walks == 0 {
		t.Error("expected at least one walk")
	}
}

func TestFunctionalEstimateZeroQueryIsZero(t *testing.T) {
	m := identity3(t)
	b := []float64{5, 4, 3}
	q := []float64{0, 0, 0}
	src := rng.New(7)
	est := FunctionalEstimate(m, b, q, src, 64, 1024, 10, 0.01, 0.01)
	if est.Value != 0 || est.Walks != 0 {
		t.Errorf("zero query should short-circuit, got %+v", est)
	}
}
