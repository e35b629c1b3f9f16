// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"

	"github.com/ruvnet/sublinear-time-solver-sub004/storage"
)

// RepairBoost is ρ in the diagonal repair rule: a repaired entry is set to
// σ_row(i)·(1+RepairBoost) + τ_diag, strictly exceeding the off-diagonal
// mass by a 20% margin.
const RepairBoost = 0.2

// RepairEntry records one diagonal rewrite so a caller can
// audit exactly what Repair changed.
type RepairEntry struct {
	Row    int
	Old    float64
	New    float64
	SigmaRow float64
}

// Repair clones m and, for every row whose diagonal is missing or whose
// magnitude is below max(τ_diag, σ_row(i)), rewrites the diagonal to
// σ_row(i)·(1+ρ) + τ_diag, preserving the original sign when the old value
// was nonzero. The original matrix is never mutated. Repair only supports
// CSR and Dense inputs; callers holding a CSC or COO matrix should convert
// first.
func Repair(m storage.Matrix) (storage.Matrix, []RepairEntry, error) {
	switch v := m.(type) {
	case *storage.CSR:
		return repairCSR(v)
	case *storage.DenseMatrix:
		return repairDense(v)
	default:
		return nil, nil, &storage.Error{Code: storage.InvalidMatrix, Msg: "repair requires CSR or Dense storage", Row: -1, Col: -1}
	}
}

func repairCSR(m *storage.CSR) (*storage.CSR, []RepairEntry, error) {
	clone := m.Clone()
	var entries []RepairEntry
	for i := 0; i < clone.Rows(); i++ {
		sigma := clone.RowAbsSum(i)
		old, ok := clone.Diag(i)
		threshold := math.Max(storage.TauDiag, sigma)
		if ok && math.Abs(old) > threshold {
			continue
		}
		sign := 1.0
		if old < 0 {
			sign = -1.0
		}
		newVal := sign * (sigma*(1+RepairBoost) + storage.TauDiag)
		clone.SetDiag(i, newVal)
		entries = append(entries, RepairEntry{Row: i, Old: old, New: newVal, SigmaRow: sigma})
	}
	return clone, entries, nil
}

func repairDense(m *storage.DenseMatrix) (*storage.DenseMatrix, []RepairEntry, error) {
	clone := m.Clone()
	n := clone.Rows()
	var entries []RepairEntry
	for i := 0; i < n; i++ {
		sigma := clone.RowAbsSum(i)
		old, _ := clone.Diag(i)
		threshold := math.Max(storage.TauDiag, sigma)
		if math.Abs(old) > threshold {
			continue
		}
		sign := 1.0
		if old < 0 {
			sign = -1.0
		}
		newVal := sign * (sigma*(1+RepairBoost) + storage.TauDiag)
		clone.Set(i, i, newVal)
		entries = append(entries, RepairEntry{Row: i, Old: old, New: newVal, SigmaRow: sigma})
	}
	return clone, entries, nil
}
