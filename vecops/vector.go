// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vecops implements the dense vector kernels shared by every
// solver: dot product, AXPY, scaling, and the 2-norm, plus a length-keyed
// buffer pool so the iterative loops in package solve avoid a per-iteration
// allocation. Dot and Norm2 have a scalar reference form and an unrolled
// "wide" form selected automatically once a vector is long enough to
// amortize the unrolling overhead; both forms are bit-for-bit identical up
// to IEEE-754 summation associativity. The other kernels are scalar only.
package vecops

import "math"

// wideLanes is the width of the unrolled accumulation loop used by Dot and
// Norm2 once a vector is long enough to amortize it. It mirrors the 8-wide
// float64 lane count of a typical AVX-512 register without depending on
// any platform-specific code.
const wideLanes = 8

// wideThreshold is the minimum vector length before the wide path is used;
// below it the unrolling overhead outweighs the benefit.
const wideThreshold = 64

// Dot returns the inner product of x and y. Panics if the lengths differ.
func Dot(x, y []float64) float64 {
	checkLen(x, y)
	if len(x) >= wideThreshold {
		return dotWide(x, y)
	}
	var sum float64
	for i := range x {
		sum += x[i] * y[i]
	}
	return sum
}

func dotWide(x, y []float64) float64 {
	var acc [wideLanes]float64
	n := len(x)
	lanes := n - n%wideLanes
	for i := 0; i < lanes; i += wideLanes {
		for l := 0; l < wideLanes; l++ {
			acc[l] += x[i+l] * y[i+l]
		}
	}
	var sum float64
	for _, a := range acc {
		sum += a
	}
	for i := lanes; i < n; i++ {
		sum += x[i] * y[i]
	}
	return sum
}

// AXPY computes y <- y + alpha*x in place. Panics if the lengths differ.
func AXPY(alpha float64, x, y []float64) {
	checkLen(x, y)
	if alpha == 0 {
		return
	}
	for i := range x {
		y[i] += alpha * x[i]
	}
}

// AXPYTo computes dst <- a + alpha*b, leaving a and b untouched. dst may
// alias a or b.
func AXPYTo(dst []float64, a []float64, alpha float64, b []float64) {
	checkLen(a, b)
	checkLen(a, dst)
	for i := range dst {
		dst[i] = a[i] + alpha*b[i]
	}
}

// Scale computes x <- alpha*x in place.
func Scale(alpha float64, x []float64) {
	for i := range x {
		x[i] *= alpha
	}
}

// ScaleTo computes dst <- alpha*x.
func ScaleTo(dst []float64, alpha float64, x []float64) {
	checkLen(dst, x)
	for i := range x {
		dst[i] = alpha * x[i]
	}
}

// Copy copies src into dst, which must have equal length.
func Copy(dst, src []float64) {
	checkLen(dst, src)
	copy(dst, src)
}

// Norm2 returns the Euclidean norm of x.
func Norm2(x []float64) float64 {
	if len(x) >= wideThreshold {
		return math.Sqrt(dotWide(x, x))
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Norm1 returns the sum of absolute values of x.
func Norm1(x []float64) float64 {
	var sum float64
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum
}

// NormInf returns the maximum absolute value of x.
func NormInf(x []float64) float64 {
	var m float64
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

// Zero sets every element of x to 0.
func Zero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}

// checkLen panics if a and b differ in length, matching the shape-panic
// convention of gonum's mat.VecDense.
func checkLen(a, b []float64) {
	if len(a) != len(b) {
		panic("vecops: vector length mismatch")
	}
}
