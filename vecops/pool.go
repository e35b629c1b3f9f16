// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vecops

import (
	"math/bits"
	"sync"
)

// poolFor returns the ceiling of base-2 log of size, giving an index into
// a size-stratified array of sync.Pools: pool[i] holds buffers with
// capacity 1<<i. This is the same bucketing strategy gonum's mat package
// uses for its Dense/VecDense workspace pools.
func poolFor(size uint) int {
	if size == 0 {
		return 0
	}
	return bits.Len(size - 1)
}

// Pool is a length-keyed buffer pool for []float64 scratch space. It is
// owned by whichever component drives a solve (the dispatcher), not kept
// as package-global state, so that concurrent solves do not share a pool
// and so a pool's lifetime matches a single solve.
type Pool struct {
	buckets [64]sync.Pool
}

// NewPool returns a ready-to-use Pool.
func NewPool() *Pool {
	p := &Pool{}
	for i := range p.buckets {
		l := 1 << uint(i)
		p.buckets[i].New = func() interface{} {
			s := make([]float64, l)
			return &s
		}
	}
	return p
}

// Get returns a []float64 of length n, optionally zeroed, drawn from the
// bucket whose backing capacity is the smallest power of two >= n.
func (p *Pool) Get(n int, clear bool) []float64 {
	if n == 0 {
		return nil
	}
	idx := poolFor(uint(n))
	s := *p.buckets[idx].Get().(*[]float64)
	s = s[:n]
	if clear {
		Zero(s)
	}
	return s
}

// Put returns s to the bucket matching its capacity. The caller must not
// retain any reference to s, or to a slice derived from it, after Put.
func (p *Pool) Put(s []float64) {
	if cap(s) == 0 {
		return
	}
	idx := poolFor(uint(cap(s)))
	p.buckets[idx].Put(&s)
}

// Lease acquires a buffer of length n and returns it together with a
// release func bound to this Pool, so callers can defer release() on every
// exit path (including cancellation and error returns) per the scoped
// buffer lifecycle in the design notes.
func (p *Pool) Lease(n int, clear bool) (buf []float64, release func()) {
	buf = p.Get(n, clear)
	return buf, func() { p.Put(buf) }
}
