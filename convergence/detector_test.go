// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convergence

import "testing"

func TestObserveConvergesBelowEpsilon(t *testing.T) {
	d := NewDetector(1e-6, 100, 0)
	stop, reason := d.Observe(1, 1e-7)
	if !stop || reason != Converged {
		t.Fatalf("stop=%v reason=%v, want true, Converged", stop, reason)
	}
}

func TestObserveIterationLimit(t *testing.T) {
	d := NewDetector(1e-12, 3, 0)
	d.Observe(1, 1.0)
	d.Observe(2, 0.9)
	stop, reason := d.Observe(3, 0.85)
	if !stop || reason != IterationLimit {
		t.Fatalf("stop=%v reason=%v, want true, IterationLimit", stop, reason)
	}
}

func TestObserveStagnation(t *testing.T) {
	d := NewDetector(1e-12, 1000, 0)
	r := 1.0
	var stop bool
	var reason Reason
	for k := 1; k <= 20; k++ {
		stop, reason = d.Observe(k, r)
		if stop {
			break
		}
		r *= 0.999999 // negligible reduction each step
	}
	if !stop || reason != Stagnated {
		t.Fatalf("stop=%v reason=%v, want true, Stagnated", stop, reason)
	}
}

func TestGradeA(t *testing.T) {
	d := NewDetector(1e-6, 100, 0)
	if g := d.Grade(Converged, 5, false); g != 'A' {
		t.Errorf("grade = %c, want A", g)
	}
}
