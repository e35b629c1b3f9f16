// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randomwalk

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/ruvnet/sublinear-time-solver-sub004/rng"
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
)

// Estimate is the outcome of a Monte Carlo functional estimation: a point
// estimate of q^T x together with a Hoeffding-style bound on the
// remaining sampling error at the requested confidence.
type Estimate struct {
	Value      float64
	StdErr     float64
	ErrorBound float64
	Walks      int
}

// batchSize is the smallest first round of walks FunctionalEstimate draws,
// however small minWalks is.
const batchSize = 256

// FunctionalEstimate draws Monte Carlo samples of q^T x, x solving
// M*x = b, by repeatedly: (1) sampling a start node proportional to
// |q[u]|, (2) running one random walk from u via Simulate, (3) scaling
// the walk's sample by sign(q[u])*||q||_1. The walk budget starts at
// max(minWalks, batchSize) and doubles (geometric schedule) whenever the running
// standard error exceeds the target half-width, until maxWalks is
// reached, so well-conditioned queries spend far fewer samples than
// poorly-conditioned ones.
func FunctionalEstimate(m storage.Matrix, b, q []float64, source *rng.Source, minWalks, maxWalks, maxSteps int, targetHalfWidth, confidence float64) Estimate {
	qAbs := make([]float64, len(q))
	var total float64
	for i, v := range q {
		qAbs[i] = math.Abs(v)
		total += qAbs[i]
	}
	if total == 0 {
		return Estimate{}
	}

	cdf := make([]float64, len(q))
	var running float64
	for i, v := range qAbs {
		running += v
		cdf[i] = running / total
	}
	sampleNode := func(rndVal float64) int {
		lo, hi := 0, len(cdf)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if cdf[mid] < rndVal {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo
	}

	var all []float64
	budget := minWalks
	if budget < batchSize {
		budget = batchSize
	}

	for len(all) < maxWalks {
		toDraw := budget - len(all)
		if len(all)+toDraw > maxWalks {
			toDraw = maxWalks - len(all)
		}
		all = append(all, drawBatch(m, b, q, total, sampleNode, source, len(all), toDraw, maxSteps)...)

		if len(all) >= minWalks {
			mean, variance := stat.MeanVariance(all, nil)
			stderr := math.Sqrt(variance / float64(len(all)))
			if stderr <= targetHalfWidth || len(all) >= maxWalks {
				return Estimate{
					Value:      mean,
					StdErr:     stderr,
					ErrorBound: hoeffding(variance, len(all), confidence),
					Walks:      len(all),
				}
			}
		}
		budget *= 2
		if budget > maxWalks {
			budget = maxWalks
		}
	}

	mean, variance := stat.MeanVariance(all, nil)
	return Estimate{
		Value:      mean,
		StdErr:     math.Sqrt(variance / float64(len(all))),
		ErrorBound: hoeffding(variance, len(all), confidence),
		Walks:      len(all),
	}
}

func drawBatch(m storage.Matrix, b, q []float64, total float64, sampleNode func(float64) int, source *rng.Source, offset, n, maxSteps int) []float64 {
	out := make([]float64, n)
	var wg sync.WaitGroup
	workers := 8
	if n < workers {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end, streamIdx int) {
			defer wg.Done()
			rnd := source.Sub(uint64(offset + streamIdx))
			for i := start; i < end; i++ {
				u := sampleNode(rnd.Float64())
				sign := 1.0
				if q[u] < 0 {
					sign = -1
				}
				out[i] = sign * total * Simulate(m, b, u, maxSteps, rnd)
			}
		}(start, end, w)
	}
	wg.Wait()
	return out
}

// hoeffding returns the half-width of a (1-confidence) confidence
// interval for a bounded-variance mean estimate, confidence being the
// failure probability tolerated. This is the variance-based
// (Bernstein-style) analogue used when only the empirical sample
// variance is known rather than an assumed range: the multiplier is the
// two-sided normal quantile at confidence (via the inverse error
// function) rather than a fixed constant, so a tighter confidence
// request widens the certified bound instead of leaving it unchanged.
func hoeffding(variance float64, n int, confidence float64) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	z := 3.0
	if confidence > 0 && confidence < 1 {
		z = math.Sqrt2 * math.Erfinv(1-confidence)
	}
	return z * math.Sqrt(variance/float64(n))
}
