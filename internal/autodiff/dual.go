package autodiff

// Dual is the forward-mode value: a primal component and the tangent
// carrying its directional derivative with respect to the caller's seed.
// Every operation returns a new Dual; values are never mutated.
//
// Dual is generic in its component type, so the modes nest:
//
//	Dual[Real]       first-order forward mode
//	Dual[Dual[Real]] second-order forward mode (hyper-dual)
//	Dual[Var]        forward-over-reverse, tangents recorded on the tape
//
// Numeric edge cases never fail: division by a zero primal, log of a
// negative, and similar produce IEEE infinities and NaNs in both
// components, exactly as the underlying float64 operations would.
type Dual[T Numeric[T]] struct {
	Val T // primal component
	Tangent T // tangent component
}

var (
	_ Numeric[Dual[Real]]       = Dual[Real]{}
	_ Numeric[Dual[Dual[Real]]] = Dual[Dual[Real]]{}
)

// NewDual returns a first-order dual with the given value and tangent.
// Seed the tangent with 1 to differentiate along that input.
func NewDual(value, tangent float64) Dual[Real] {
	return Dual[Real]{Val: Real(value), Tangent: Real(tangent)}
}

// Add returns a + b.
func (a Dual[T]) Add(b Dual[T]) Dual[T] {
	return Dual[T]{Val: a.Val.Add(b.Val), Tangent: a.Tangent.Add(b.Tangent)}
}

// Sub returns a - b.
func (a Dual[T]) Sub(b Dual[T]) Dual[T] {
	return Dual[T]{Val: a.Val.Sub(b.Val), Tangent: a.Tangent.Sub(b.Tangent)}
}

// Mul returns a * b with tangent a'*b + a*b'.
func (a Dual[T]) Mul(b Dual[T]) Dual[T] {
	return Dual[T]{
		Val: a.Val.Mul(b.Val),
		Tangent: a.Tangent.Mul(b.Val).Add(a.Val.Mul(b.Tangent)),
	}
}

// Div returns a / b.
//
// Special cases are obtained from the component arithmetic: a zero
// divisor yields ±Inf or NaN in both components rather than an error.
func (a Dual[T]) Div(b Dual[T]) Dual[T] {
	fx := a.Val.Div(b.Val)
	return Dual[T]{
		Val: fx,
		Tangent: dDivA(a.Val, b.Val, fx).Mul(a.Tangent).Add(dDivB(a.Val, b.Val, fx).Mul(b.Tangent)),
	}
}

// Neg returns -a.
func (a Dual[T]) Neg() Dual[T] {
	return Dual[T]{Val: a.Val.Neg(), Tangent: a.Tangent.Neg()}
}

// Abs returns |a|; the derivative is sign(a), zero at a = 0.
func (a Dual[T]) Abs() Dual[T] {
	fx := a.Val.Abs()
	return Dual[T]{Val: fx, Tangent: dAbs(a.Val, fx).Mul(a.Tangent)}
}

// Exp returns e**a.
func (a Dual[T]) Exp() Dual[T] {
	fx := a.Val.Exp()
	return Dual[T]{Val: fx, Tangent: dExp(a.Val, fx).Mul(a.Tangent)}
}

// Log returns the natural logarithm of a.
//
// Special cases are:
//
//	Log(0)  = (-Inf, ±Inf tangent)
//	Log(<0) = NaN value
func (a Dual[T]) Log() Dual[T] {
	fx := a.Val.Log()
	return Dual[T]{Val: fx, Tangent: dLog(a.Val, fx).Mul(a.Tangent)}
}

// Log1p returns log(1 + a), accurate near zero.
func (a Dual[T]) Log1p() Dual[T] {
	fx := a.Val.Log1p()
	return Dual[T]{Val: fx, Tangent: dLog1p(a.Val, fx).Mul(a.Tangent)}
}

// Sqrt returns the square root of a; at a = 0 the tangent is ±Inf or NaN
// per IEEE division.
func (a Dual[T]) Sqrt() Dual[T] {
	fx := a.Val.Sqrt()
	return Dual[T]{Val: fx, Tangent: dSqrt(a.Val, fx).Mul(a.Tangent)}
}

// Pow returns a**b for two differentiable operands, with partials
// b*a**(b-1) and a**b*log(a). For a < 0 the log factor is NaN, which
// propagates into the tangent.
func (a Dual[T]) Pow(b Dual[T]) Dual[T] {
	fx := a.Val.Pow(b.Val)
	return Dual[T]{
		Val: fx,
		Tangent: dPowBase(a.Val, b.Val, fx).Mul(a.Tangent).Add(dPowExp(a.Val, b.Val, fx).Mul(b.Tangent)),
	}
}

// PowReal returns a**p for a constant exponent.
func (a Dual[T]) PowReal(p float64) Dual[T] {
	fx := a.Val.PowReal(p)
	return Dual[T]{Val: fx, Tangent: dPowReal(a.Val, fx, p).Mul(a.Tangent)}
}

// Sin returns the sine of a.
func (a Dual[T]) Sin() Dual[T] {
	fx := a.Val.Sin()
	return Dual[T]{Val: fx, Tangent: dSin(a.Val, fx).Mul(a.Tangent)}
}

// Cos returns the cosine of a.
func (a Dual[T]) Cos() Dual[T] {
	fx := a.Val.Cos()
	return Dual[T]{Val: fx, Tangent: dCos(a.Val, fx).Mul(a.Tangent)}
}

// Tan returns the tangent of a.
func (a Dual[T]) Tan() Dual[T] {
	fx := a.Val.Tan()
	return Dual[T]{Val: fx, Tangent: dTan(a.Val, fx).Mul(a.Tangent)}
}

// Asin returns the arcsine of a; outside [-1, 1] both components are NaN.
func (a Dual[T]) Asin() Dual[T] {
	fx := a.Val.Asin()
	return Dual[T]{Val: fx, Tangent: dAsin(a.Val, fx).Mul(a.Tangent)}
}

// Acos returns the arccosine of a.
func (a Dual[T]) Acos() Dual[T] {
	fx := a.Val.Acos()
	return Dual[T]{Val: fx, Tangent: dAcos(a.Val, fx).Mul(a.Tangent)}
}

// Atan returns the arctangent of a.
func (a Dual[T]) Atan() Dual[T] {
	fx := a.Val.Atan()
	return Dual[T]{Val: fx, Tangent: dAtan(a.Val, fx).Mul(a.Tangent)}
}

// Sinh returns the hyperbolic sine of a.
func (a Dual[T]) Sinh() Dual[T] {
	fx := a.Val.Sinh()
	return Dual[T]{Val: fx, Tangent: dSinh(a.Val, fx).Mul(a.Tangent)}
}

// Cosh returns the hyperbolic cosine of a.
func (a Dual[T]) Cosh() Dual[T] {
	fx := a.Val.Cosh()
	return Dual[T]{Val: fx, Tangent: dCosh(a.Val, fx).Mul(a.Tangent)}
}

// Tanh returns the hyperbolic tangent of a.
func (a Dual[T]) Tanh() Dual[T] {
	fx := a.Val.Tanh()
	return Dual[T]{Val: fx, Tangent: dTanh(a.Val, fx).Mul(a.Tangent)}
}

// Floor returns the greatest integer value <= a with a zero tangent.
func (a Dual[T]) Floor() Dual[T] {
	return Dual[T]{Val: a.Val.Floor(), Tangent: a.Val.Lift(0)}
}

// Ceil returns the least integer value >= a with a zero tangent.
func (a Dual[T]) Ceil() Dual[T] {
	return Dual[T]{Val: a.Val.Ceil(), Tangent: a.Val.Lift(0)}
}

// Round returns the nearest integer with a zero tangent.
func (a Dual[T]) Round() Dual[T] {
	return Dual[T]{Val: a.Val.Round(), Tangent: a.Val.Lift(0)}
}

// Fmax returns the larger operand, tangent included, so the derivative
// follows the winning branch. NaN wins; ties select a.
func (a Dual[T]) Fmax(b Dual[T]) Dual[T] {
	if selectFirst(a.Val.Value(), b.Val.Value(), true) {
		return a
	}
	return b
}

// Fmin returns the smaller operand, tangent included. NaN wins; ties
// select a.
func (a Dual[T]) Fmin(b Dual[T]) Dual[T] {
	if selectFirst(a.Val.Value(), b.Val.Value(), false) {
		return a
	}
	return b
}

// InvLogit returns the logistic sigmoid of a.
func (a Dual[T]) InvLogit() Dual[T] {
	fx := a.Val.InvLogit()
	return Dual[T]{Val: fx, Tangent: dInvLogit(a.Val, fx).Mul(a.Tangent)}
}

// BinaryLogLoss returns the log loss of the receiver as a predicted
// probability against the fixed binary label y. The label is a selector,
// not a differentiable operand: the tangent is -a'/a for y = 1 and
// +a'/(1-a) for y = 0.
func (a Dual[T]) BinaryLogLoss(y int) Dual[T] {
	fx := a.Val.BinaryLogLoss(y)
	return Dual[T]{Val: fx, Tangent: dBinaryLogLoss(y, a.Val, fx).Mul(a.Tangent)}
}

// Lift returns the constant c in a's mode with a zero tangent.
func (a Dual[T]) Lift(c float64) Dual[T] {
	return Dual[T]{Val: a.Val.Lift(c), Tangent: a.Val.Lift(0)}
}

// Value reports the innermost primal value.
func (a Dual[T]) Value() float64 { return a.Val.Value() }
