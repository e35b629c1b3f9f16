// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package functional answers a single query t^T x (x solving M*x = b)
// without ever materializing x, by splitting the query into a
// deterministic part resolved exactly by backward push and a residual
// part resolved statistically by Monte Carlo random walks.
package functional

import (
	"math"

	"github.com/ruvnet/sublinear-time-solver-sub004/push"
	"github.com/ruvnet/sublinear-time-solver-sub004/randomwalk"
	"github.com/ruvnet/sublinear-time-solver-sub004/rng"
	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
	"github.com/ruvnet/sublinear-time-solver-sub004/vecops"
)

// Budget configures a bidirectional estimate's work split between the
// deterministic push phase and the statistical walk phase.
type Budget struct {
	PushEpsilon     float64
	MaxPushes       int
	MinWalks        int
	MaxWalks        int
	MaxWalkSteps    int
	TargetHalfWidth float64
	Confidence      float64
}

// DefaultBudget returns the reference work split between push and walk
// for a query answered to accuracy epsilon at the given failure
// probability confidence. The backward-push stopping threshold scales
// with the requested accuracy, the query mass, and the dominance gap --
// ε_back = sqrt(epsilon * ||t||_1 * delta) -- so a loose epsilon lets
// push stop early and hand more of the query to the (cheaper, sampled)
// walk phase, while a tight epsilon or a small gap forces push to do
// more of the work deterministically. confidence sets the normal-quantile
// multiplier z the walk phase's error bound uses (see randomwalk.hoeffding),
// and the walk-stopping half-width is epsilon/z, so a tighter confidence
// also makes the walk phase draw more samples.
func DefaultBudget(epsilon, tNorm1, delta, confidence float64) Budget {
	epsBack := math.Sqrt(math.Max(epsilon*tNorm1*delta, 0))
	if epsBack <= 0 {
		epsBack = 1e-9
	}
	z := zScore(confidence)
	halfWidth := epsilon
	if z > 0 {
		halfWidth = epsilon / z
	}
	return Budget{
		PushEpsilon:     epsBack,
		MaxPushes:       2_000_000,
		MinWalks:        1024,
		MaxWalks:        1 << 20,
		MaxWalkSteps:    10_000,
		TargetHalfWidth: halfWidth,
		Confidence:      confidence,
	}
}

// zScore returns the two-sided normal quantile for a (1-confidence)
// interval, confidence being a failure probability in (0,1); it falls
// back to a conservative 3-sigma multiplier outside that range.
func zScore(confidence float64) float64 {
	if confidence <= 0 || confidence >= 1 {
		return 3
	}
	return math.Sqrt2 * math.Erfinv(1-confidence)
}

// Outcome is a certified estimate of t^T x.
type Outcome struct {
	Value          float64
	ErrorBound     float64
	Deterministic  float64
	Sampled        float64
	PushesDone     int
	WalksDone      int
	BackwardResult push.Result
}

// Estimate computes t^T x ≈ p^T b + q^T x using backward push to build p
// and q (Result.Estimate and Result.Residual respectively, see package
// push; p is already rescaled by the diagonal so the dot product with b
// is meaningful directly), then resolves the unpushed q^T x term with
// random walks seeded from source. delta is the dominance gap reported
// by package analysis for M; it bounds the push phase's worst-case
// leftover error via ||q||_1 * ||b||_∞ / delta, the certificate the
// design calls for whenever delta > 0 (a non-positive delta means no
// such certificate can be given, and the caller should fall back to a
// full solve instead).
func Estimate(m storage.Matrix, b, t []float64, delta float64, source *rng.Source, budget Budget) Outcome {
	bp := push.Backward(m, t, budget.PushEpsilon, budget.MaxPushes)

	det := vecops.Dot(bp.Estimate, b)

	var sampled float64
	var walks int
	var walkErr float64
	if vecops.Norm1(bp.Residual) > 0 {
		est := randomwalk.FunctionalEstimate(m, b, bp.Residual, source, budget.MinWalks, budget.MaxWalks, budget.MaxWalkSteps, budget.TargetHalfWidth, budget.Confidence)
		sampled = est.Value
		walks = est.Walks
		walkErr = est.ErrorBound
	}

	bound := walkErr
	if delta > 0 {
		bound += vecops.Norm1(bp.Residual) * vecops.NormInf(b) / delta
	}

	return Outcome{
		Value:          det + sampled,
		ErrorBound:     bound,
		Deterministic:  det,
		Sampled:        sampled,
		PushesDone:     bp.Pushes,
		WalksDone:      walks,
		BackwardResult: bp,
	}
}
