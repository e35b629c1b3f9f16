// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vecops

import (
	"math"
	"testing"
)

func TestDotMatchesScalarAndWide(t *testing.T) {
	for _, n := range []int{1, 8, 63, 64, 65, 200} {
		x := make([]float64, n)
		y := make([]float64, n)
		for i := range x {
			x[i] = float64(i%7) - 3
			y[i] = float64(i%5) - 2
		}
		var want float64
		for i := range x {
			want += x[i] * y[i]
		}
		got := Dot(x, y)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("n=%d: Dot = %v, want %v", n, got, want)
		}
	}
}

func TestAXPY(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{10, 10, 10}
	AXPY(2, x, y)
	want := []float64{12, 14, 16}
	for i := range want {
		if y[i] != want[i] {
			t.Errorf("y[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestNorm2Identity(t *testing.T) {
	x := []float64{3, 4}
	if got := Norm2(x); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm2 = %v, want 5", got)
	}
}

func TestPoolRoundTrip(t *testing.T) {
	p := NewPool()
	buf, release := p.Lease(10, true)
	for _, v := range buf {
		if v != 0 {
			t.Fatalf("leased buffer not zeroed")
		}
	}
	buf[0] = 42
	release()

	buf2 := p.Get(10, false)
	if cap(buf2) < 10 {
		t.Fatalf("pool returned undersized buffer")
	}
}
