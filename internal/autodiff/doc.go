// Package autodiff implements dual-mode automatic differentiation over
// float64 scalars: forward mode via dual numbers and reverse mode via a
// recording tape.
//
// Both modes share one generic numeric vocabulary:
//
//	Real          plain float64 arithmetic, no derivative tracking
//	Dual[T]       value plus tangent, derivatives ride along each call
//	Var           handle to a tape node, derivatives from a backward sweep
//
// All three satisfy Numeric[T], so a model written once as
//
//	func logistic[T autodiff.Numeric[T]](w []T, x []float64) T
//
// runs unchanged in any mode, and Dual[Var] or Dual[Dual[Real]] compose
// the modes for exact second-order derivatives.
//
// Forward mode is O(n) evaluations for an n-dimensional gradient but
// needs no bookkeeping; reverse mode records every operation on a Tape
// and recovers the whole gradient in one backward sweep. The drivers
// pick the plumbing:
//
//	value, grad, err := autodiff.Gradient(tape, nil, f, x)
//	err = autodiff.Jacobian(dst, g, x, nil)
//	value, hv, err := autodiff.HessianVector(tape, nil, h, x, v)
//
// A Tape is reused across episodes: Reset drops every node in O(1) and
// invalidates outstanding Vars, so a sampler can run millions of
// gradient episodes against one warm arena without reallocating.
// Numeric edge cases follow IEEE semantics throughout: log of a
// negative number is NaN, never an error.
package autodiff
