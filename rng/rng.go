// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rng provides the solver's random number source: a thin,
// counter-based splittable wrapper over golang.org/x/exp/rand so that
// parallel Monte-Carlo walks (see package randomwalk) get independent,
// reproducible sub-streams without any locking, and so the whole solve is
// deterministic given a seed and a fixed thread count.
package rng

import (
	"golang.org/x/exp/rand"
)

// Source is a per-solve random source. It is never shared across solves:
// the dispatcher constructs one from config.Seed and scopes it to a single
// SolveFunctional call.
type Source struct {
	seed    uint64
	counter uint64
}

// New returns a Source seeded deterministically from seed. A seed of 0 is
// valid and still deterministic (it is not reinterpreted as "unseeded").
func New(seed uint64) *Source {
	return &Source{seed: seed}
}

// Sub derives an independent child stream identified by idx. Splitting is
// pure: Sub(idx) always returns a generator seeded identically given the
// same (seed, idx) pair, regardless of call order, which is what lets
// parallel walks reproduce a single-threaded run's statistics exactly.
func (s *Source) Sub(idx uint64) *rand.Rand {
	// Mix the parent seed with the child index using splitmix64, the same
	// technique used to seed independent xorshift/xoshiro streams; avoids
	// any correlation between adjacent indices that a plain seed+idx sum
	// would risk.
	mixed := splitmix64(s.seed ^ (idx*0x9E3779B97F4A7C15 + 0xD1B54A32D192ED03))
	return rand.New(rand.NewSource(mixed))
}

// Next returns the next child stream in sequence, incrementing an internal
// counter. Used by single-threaded callers that just want "the next
// independent stream" without managing indices themselves.
func (s *Source) Next() *rand.Rand {
	r := s.Sub(s.counter)
	s.counter++
	return r
}

// splitmix64 is a fast, well-distributed 64-bit mixing function, used only
// to decorrelate adjacent sub-stream indices before seeding the underlying
// generator.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
