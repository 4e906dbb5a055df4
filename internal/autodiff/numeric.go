package autodiff

import "math"

// Numeric is the capability required of a differentiable scalar: arithmetic
// plus the elementary functions covered by the rule library. Exactly three
// types satisfy it:
//
//   - Real    plain evaluation, no derivative tracking
//   - Dual    forward mode, value and tangent propagated together
//   - Var     reverse mode, operations recorded on a Tape
//
// Algorithms written against Numeric run unchanged under every mode,
// including nested composition: Dual[Var] is forward-over-reverse (the
// Hessian drivers build on it) and Dual[Dual[Real]] is second-order
// forward mode.
type Numeric[T any] interface {
	// Arithmetic.
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Abs() T

	// Exponential and logarithmic.
	Exp() T
	Log() T
	Log1p() T
	Sqrt() T
	Pow(T) T
	PowReal(p float64) T

	// Trigonometric and hyperbolic.
	Sin() T
	Cos() T
	Tan() T
	Asin() T
	Acos() T
	Atan() T
	Sinh() T
	Cosh() T
	Tanh() T

	// Rounding. Derivatives are zero almost everywhere; at the
	// discontinuities they are reported as zero, not approximated.
	Floor() T
	Ceil() T
	Round() T

	// Branching selection. The derivative follows the selected operand;
	// exact ties select the receiver.
	Fmax(T) T
	Fmin(T) T

	// Statistical primitives.
	InvLogit() T
	BinaryLogLoss(y int) T

	// Lift embeds a plain constant into the receiver's mode. For Var the
	// constant registers on the receiver's tape and contributes no
	// derivative edges to its consumers.
	Lift(float64) T

	// Value reports the innermost primal value.
	Value() float64
}

// BinaryLogLoss is the cross-entropy of a predicted success probability p
// against a binary outcome y:
//
//	binary_log_loss(y, p) = -[y*log(p) + (1-y)*log(1-p)]
//
// The label y is a fixed selector, not a differentiable operand; only p
// carries derivatives. This wrapper gives the conventional argument order
// over the method form p.BinaryLogLoss(y).
func BinaryLogLoss[T Numeric[T]](y int, p T) T {
	return p.BinaryLogLoss(y)
}

// Real is the plain scalar mode: a float64 that satisfies Numeric without
// tracking any derivatives. It is the innermost component of every nested
// mode and the type the rule registry is instantiated at for tape partials.
type Real float64

var _ Numeric[Real] = Real(0)

// Add returns a + b.
func (a Real) Add(b Real) Real { return a + b }

// Sub returns a - b.
func (a Real) Sub(b Real) Real { return a - b }

// Mul returns a * b.
func (a Real) Mul(b Real) Real { return a * b }

// Div returns a / b, following IEEE semantics for zero divisors.
func (a Real) Div(b Real) Real { return a / b }

// Neg returns -a.
func (a Real) Neg() Real { return -a }

// Abs returns |a|.
func (a Real) Abs() Real { return Real(math.Abs(float64(a))) }

// Exp returns e**a.
func (a Real) Exp() Real { return Real(math.Exp(float64(a))) }

// Log returns the natural logarithm of a.
func (a Real) Log() Real { return Real(math.Log(float64(a))) }

// Log1p returns log(1 + a), accurate near zero.
func (a Real) Log1p() Real { return Real(math.Log1p(float64(a))) }

// Sqrt returns the square root of a.
func (a Real) Sqrt() Real { return Real(math.Sqrt(float64(a))) }

// Pow returns a**b.
func (a Real) Pow(b Real) Real { return Real(math.Pow(float64(a), float64(b))) }

// PowReal returns a**p for a constant exponent p.
func (a Real) PowReal(p float64) Real { return Real(math.Pow(float64(a), p)) }

// Sin returns the sine of a.
func (a Real) Sin() Real { return Real(math.Sin(float64(a))) }

// Cos returns the cosine of a.
func (a Real) Cos() Real { return Real(math.Cos(float64(a))) }

// Tan returns the tangent of a.
func (a Real) Tan() Real { return Real(math.Tan(float64(a))) }

// Asin returns the arcsine of a.
func (a Real) Asin() Real { return Real(math.Asin(float64(a))) }

// Acos returns the arccosine of a.
func (a Real) Acos() Real { return Real(math.Acos(float64(a))) }

// Atan returns the arctangent of a.
func (a Real) Atan() Real { return Real(math.Atan(float64(a))) }

// Sinh returns the hyperbolic sine of a.
func (a Real) Sinh() Real { return Real(math.Sinh(float64(a))) }

// Cosh returns the hyperbolic cosine of a.
func (a Real) Cosh() Real { return Real(math.Cosh(float64(a))) }

// Tanh returns the hyperbolic tangent of a.
func (a Real) Tanh() Real { return Real(math.Tanh(float64(a))) }

// Floor returns the greatest integer value <= a.
func (a Real) Floor() Real { return Real(math.Floor(float64(a))) }

// Ceil returns the least integer value >= a.
func (a Real) Ceil() Real { return Real(math.Ceil(float64(a))) }

// Round returns the nearest integer, rounding half away from zero.
func (a Real) Round() Real { return Real(math.Round(float64(a))) }

// Fmax returns the larger of a and b. A NaN operand wins, so NaN
// propagates; exact ties select a.
func (a Real) Fmax(b Real) Real {
	if selectFirst(float64(a), float64(b), true) {
		return a
	}
	return b
}

// Fmin returns the smaller of a and b. A NaN operand wins, so NaN
// propagates; exact ties select a.
func (a Real) Fmin(b Real) Real {
	if selectFirst(float64(a), float64(b), false) {
		return a
	}
	return b
}

// InvLogit returns the logistic sigmoid 1/(1+exp(-a)).
func (a Real) InvLogit() Real { return Real(invLogit(float64(a))) }

// BinaryLogLoss returns -[y*log(a) + (1-y)*log(1-a)] with a as the
// predicted probability and y as a fixed binary label.
func (a Real) BinaryLogLoss(y int) Real { return Real(binaryLogLoss(y, float64(a))) }

// Lift returns c as a Real.
func (Real) Lift(c float64) Real { return Real(c) }

// Value returns the scalar as a float64.
func (a Real) Value() float64 { return float64(a) }

// selectFirst reports whether the first operand wins a max (greater=true)
// or min (greater=false) selection. NaN operands win so that NaN
// propagates through both value and derivative channels; ties go to the
// first operand.
func selectFirst(a, b float64, greater bool) bool {
	if math.IsNaN(a) {
		return true
	}
	if math.IsNaN(b) {
		return false
	}
	if greater {
		return a >= b
	}
	return a <= b
}

// invLogit computes the logistic sigmoid with the usual split to avoid
// overflow of exp for large |x|.
func invLogit(x float64) float64 {
	if x < 0 {
		e := math.Exp(x)
		return e / (1 + e)
	}
	return 1 / (1 + math.Exp(-x))
}

// binaryLogLoss computes -[y*log(p) + (1-y)*log(1-p)] using log1p on the
// failure branch for accuracy near p = 0.
func binaryLogLoss(y int, p float64) float64 {
	if y != 0 {
		return -math.Log(p)
	}
	return -math.Log1p(-p)
}
