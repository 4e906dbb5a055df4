// Copyright 2026 Ed Hearn. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides dual-mode automatic differentiation for
// scalar models: forward-mode dual numbers and a reverse-mode tape
// behind one generic numeric vocabulary, with drivers for gradients,
// Jacobians, and exact second-order products.
//
// Example:
//
//	import "github.com/edhearn84/stan/autodiff"
//
//	func main() {
//	    f := func(x []autodiff.Var) (autodiff.Var, error) {
//	        return x[0].Mul(x[1].Sin()), nil
//	    }
//
//	    tape := autodiff.NewTape()
//	    value, grad, err := autodiff.Gradient(tape, nil, f, []float64{1.2, 0.7})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(value, grad)
//	}
package autodiff

import (
	"gonum.org/v1/gonum/mat"

	"github.com/edhearn84/stan/internal/autodiff"
)

// Numeric is the arithmetic vocabulary shared by every differentiation
// mode. Write a model once against Numeric and run it as Real, Dual,
// or Var.
type Numeric[T any] = autodiff.Numeric[T]

// Real is plain float64 arithmetic with no derivative tracking.
type Real = autodiff.Real

// Dual carries a value and its tangent through forward mode. Nest the
// parameter (Dual[Var], Dual[Dual[Real]]) for second-order derivatives.
type Dual[T Numeric[T]] = autodiff.Dual[T]

// Var is a handle to a node on a reverse-mode tape.
type Var = autodiff.Var

// Tape is the reverse-mode recording arena.
type Tape = autodiff.Tape

// Settings tunes the forward-mode drivers.
type Settings = autodiff.Settings

// NewDual pairs a value with a tangent seed.
func NewDual(value, tangent float64) Dual[Real] {
	return autodiff.NewDual(value, tangent)
}

// NewTape creates an empty tape with a modest pre-sized arena.
func NewTape() *Tape {
	return autodiff.NewTape()
}

// NewTapeCap creates an empty tape with capacity for the given node and
// edge counts, for callers that know their episode size.
func NewTapeCap(nodes, edges int) *Tape {
	return autodiff.NewTapeCap(nodes, edges)
}

// BinaryLogLoss computes the cross entropy −[y·log p + (1−y)·log(1−p)]
// for an outcome y in {0, 1} in any mode.
func BinaryLogLoss[T Numeric[T]](y int, p T) T {
	return autodiff.BinaryLogLoss(y, p)
}

// Gradient evaluates f at x in reverse mode: one recorded sweep, one
// backward sweep, the whole gradient. A nil tape allocates a fresh one.
func Gradient(t *Tape, dst []float64, f func([]Var) (Var, error), x []float64) (float64, []float64, error) {
	return autodiff.Gradient(t, dst, f, x)
}

// ForwardGradient evaluates f at x in forward mode, one evaluation per
// input dimension.
func ForwardGradient(dst []float64, f func([]Dual[Real]) (Dual[Real], error), x []float64, s *Settings) (float64, []float64, error) {
	return autodiff.ForwardGradient(dst, f, x, s)
}

// Jacobian fills dst with the Jacobian of a vector-valued f at x, one
// forward evaluation per column.
func Jacobian(dst *mat.Dense, f func([]Dual[Real]) ([]Dual[Real], error), x []float64, s *Settings) error {
	return autodiff.Jacobian(dst, f, x, s)
}

// HessianVector computes H(x)·v in a single forward-over-reverse
// episode.
func HessianVector(t *Tape, dst []float64, f func([]Dual[Var]) (Dual[Var], error), x, v []float64) (float64, []float64, error) {
	return autodiff.HessianVector(t, dst, f, x, v)
}

// Hessian fills dst with the full Hessian of f at x, one
// forward-over-reverse episode per row, extracting the gradient along
// the way when grad is non-nil.
func Hessian(t *Tape, dst *mat.SymDense, grad []float64, f func([]Dual[Var]) (Dual[Var], error), x []float64) (float64, error) {
	return autodiff.Hessian(t, dst, grad, f, x)
}
