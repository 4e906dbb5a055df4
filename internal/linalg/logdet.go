package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/edhearn84/stan/internal/autodiff"
)

// LogDetSPD computes the log determinant of a symmetric
// positive-definite matrix of tape handles through its Cholesky
// factorization, recording one node with the n² edges
//
//	∂ log|M| / ∂M_kl = (M⁻¹)_lk.
//
// Together with InverseSPD this is the derivative plumbing a
// multivariate-normal log density needs.
func LogDetSPD(m *Dense[autodiff.Var]) (autodiff.Var, error) {
	ch, err := spdFactor("LogDetSPD", m.Values(nil))
	if err != nil {
		return autodiff.Var{}, err
	}
	var inv mat.SymDense
	if err := ch.InverseTo(&inv); err != nil {
		return autodiff.Var{}, domainErrf("LogDetSPD", "m", "matrix is numerically singular")
	}

	n := m.rows
	partials := make([]float64, n*n)
	for k := 0; k < n; k++ {
		for l := 0; l < n; l++ {
			partials[k*n+l] = inv.At(l, k)
		}
	}
	return m.data[0].Tape().Record(autodiff.OpLogDetSPD, ch.LogDet(), m.data, partials), nil
}

// LogDetSPDDual computes the log determinant in forward mode. The
// tangent is trace(M⁻¹·Ṁ).
func LogDetSPDDual(m *Dense[autodiff.Dual[autodiff.Real]]) (autodiff.Dual[autodiff.Real], error) {
	ch, err := spdFactor("LogDetSPDDual", m.Values(nil))
	if err != nil {
		return autodiff.Dual[autodiff.Real]{}, err
	}
	var inv mat.SymDense
	if err := ch.InverseTo(&inv); err != nil {
		return autodiff.Dual[autodiff.Real]{}, domainErrf("LogDetSPDDual", "m", "matrix is numerically singular")
	}

	dot := tangentsOf(m)
	tan := 0.0
	for k := 0; k < m.rows; k++ {
		for l := 0; l < m.rows; l++ {
			tan += inv.At(l, k) * dot.At(k, l)
		}
	}
	return autodiff.Dual[autodiff.Real]{
		Val: autodiff.Real(ch.LogDet()),
		Tangent: autodiff.Real(tan),
	}, nil
}
