// Copyright 2026 Ed Hearn. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides differentiable dense-matrix operations.
//
// A Dense[T] holds matrix entries in any differentiation mode, and the
// matrix-calculus operations (SPD inverse, SPD log determinant) push
// exact derivative rules through whichever mode the entries carry.
//
// Example:
//
//	import (
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/edhearn84/stan/autodiff"
//	    "github.com/edhearn84/stan/linalg"
//	)
//
//	func main() {
//	    tape := autodiff.NewTape()
//	    sigma := linalg.VarDense(tape, mat.NewDense(2, 2, []float64{4, 1, 1, 3}))
//	    ld, err := linalg.LogDetSPD(sigma)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    tape.Backward(ld)
//	    fmt.Println(sigma.At(0, 0).Adjoint()) // ∂log|Σ|/∂Σ₀₀
//	}
package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/edhearn84/stan/internal/autodiff"
	"github.com/edhearn84/stan/internal/linalg"
)

// Dense is a matrix of differentiable scalars in row-major order.
type Dense[T autodiff.Numeric[T]] = linalg.Dense[T]

// DomainError reports an argument outside an operation's domain, such
// as an asymmetric matrix passed to an SPD operation.
type DomainError = linalg.DomainError

// NewDense allocates an r×c matrix of zero values.
func NewDense[T autodiff.Numeric[T]](r, c int) *Dense[T] {
	return linalg.NewDense[T](r, c)
}

// VarDense records every entry of a as a leaf on the tape.
func VarDense(t *autodiff.Tape, a mat.Matrix) *Dense[autodiff.Var] {
	return linalg.VarDense(t, a)
}

// ConstDense records every entry of a as a constant on the tape.
func ConstDense(t *autodiff.Tape, a mat.Matrix) *Dense[autodiff.Var] {
	return linalg.ConstDense(t, a)
}

// DualDense pairs entry values with entry tangents. A nil tangents
// matrix seeds every tangent with zero.
func DualDense(values, tangents mat.Matrix) *Dense[autodiff.Dual[autodiff.Real]] {
	return linalg.DualDense(values, tangents)
}

// RealDense copies a into plain float64 arithmetic.
func RealDense(a mat.Matrix) *Dense[autodiff.Real] {
	return linalg.RealDense(a)
}

// InverseSPD inverts a symmetric positive definite matrix of tape
// variables, recording the exact adjoint rule for every output entry.
func InverseSPD(m *Dense[autodiff.Var]) (*Dense[autodiff.Var], error) {
	return linalg.InverseSPD(m)
}

// InverseSPDDual inverts a symmetric positive definite matrix of dual
// numbers, propagating the tangent −B·Ṁ·B alongside the inverse B.
func InverseSPDDual(m *Dense[autodiff.Dual[autodiff.Real]]) (*Dense[autodiff.Dual[autodiff.Real]], error) {
	return linalg.InverseSPDDual(m)
}

// LogDetSPD computes the log determinant of a symmetric positive
// definite matrix of tape variables via its Cholesky factorization.
func LogDetSPD(m *Dense[autodiff.Var]) (autodiff.Var, error) {
	return linalg.LogDetSPD(m)
}

// LogDetSPDDual computes the log determinant of a symmetric positive
// definite matrix of dual numbers, with tangent tr(M⁻¹·Ṁ).
func LogDetSPDDual(m *Dense[autodiff.Dual[autodiff.Real]]) (autodiff.Dual[autodiff.Real], error) {
	return linalg.LogDetSPDDual(m)
}

// AppendCol joins the columns of a with the single column b, sharing
// the underlying scalars rather than copying derivative state.
func AppendCol[T autodiff.Numeric[T]](a, b *Dense[T]) (*Dense[T], error) {
	return linalg.AppendCol(a, b)
}
