package autodiff

import "math"

// Var is the reverse-mode value: a lightweight handle to one node on a
// Tape. Copying a Var is free and many handles may reference the same
// node; every operation appends exactly one new node and returns a fresh
// handle. The embedded episode token ties the handle to the tape state it
// was created under — after Tape.Reset any surviving handle panics on use
// rather than silently reading stale arena slots.
type Var struct {
	tape *Tape
	id   int32
	gen  uint64
}

var _ Numeric[Var] = Var{}

// Tape returns the tape this value records to. Collaborators implementing
// matrix primitives use it to reach Tape.Record.
func (v Var) Tape() *Tape { return v.tape }

// Value reports the node's primal value; valid any time within the
// episode.
func (v Var) Value() float64 {
	return v.tape.nodes[v.tape.check(v)].value
}

// Adjoint reports d(output)/d(v) accumulated by the episode's backward
// sweep. It panics if no sweep has run since the last Reset.
func (v Var) Adjoint() float64 {
	i := v.tape.check(v)
	if !v.tape.swept {
		panic("autodiff: Adjoint read before Backward")
	}
	return v.tape.nodes[i].adjoint
}

// apply1 records a unary rule from the registry.
func (v Var) apply1(op Op) Var {
	t := v.tape
	i := t.check(v)
	r := &unaryRules[op]
	x := t.nodes[i].value
	fx := r.f(x)
	return t.push1(op, fx, i, r.df(x, fx))
}

// Add returns a + b on the same tape.
func (a Var) Add(b Var) Var {
	t := a.tape
	i, j := t.check(a), t.check(b)
	return t.push2(OpAdd, t.nodes[i].value+t.nodes[j].value, i, 1, j, 1)
}

// Sub returns a - b.
func (a Var) Sub(b Var) Var {
	t := a.tape
	i, j := t.check(a), t.check(b)
	return t.push2(OpSub, t.nodes[i].value-t.nodes[j].value, i, 1, j, -1)
}

// Mul returns a * b with partials (b, a).
func (a Var) Mul(b Var) Var {
	t := a.tape
	i, j := t.check(a), t.check(b)
	av, bv := t.nodes[i].value, t.nodes[j].value
	return t.push2(OpMul, av*bv, i, bv, j, av)
}

// Div returns a / b. A zero divisor records ±Inf/NaN in the value and the
// partials; reverse mode never fails on numeric edge cases.
func (a Var) Div(b Var) Var {
	t := a.tape
	i, j := t.check(a), t.check(b)
	av, bv := t.nodes[i].value, t.nodes[j].value
	fx := av / bv
	da := float64(dDivA(Real(av), Real(bv), Real(fx)))
	db := float64(dDivB(Real(av), Real(bv), Real(fx)))
	return t.push2(OpDiv, fx, i, da, j, db)
}

// Neg returns -a.
func (a Var) Neg() Var {
	t := a.tape
	i := t.check(a)
	return t.push1(OpNeg, -t.nodes[i].value, i, -1)
}

// Abs returns |a|; the recorded partial is sign(a), zero at a = 0.
func (a Var) Abs() Var { return a.apply1(OpAbs) }

// Exp returns e**a.
func (a Var) Exp() Var { return a.apply1(OpExp) }

// Log returns the natural logarithm of a. Log of zero or a negative
// records -Inf or NaN; no error is raised.
func (a Var) Log() Var { return a.apply1(OpLog) }

// Log1p returns log(1 + a).
func (a Var) Log1p() Var { return a.apply1(OpLog1p) }

// Sqrt returns the square root of a.
func (a Var) Sqrt() Var { return a.apply1(OpSqrt) }

// Pow returns a**b for two tape values, with partials b*a**(b-1) and
// a**b*log(a).
func (a Var) Pow(b Var) Var {
	t := a.tape
	i, j := t.check(a), t.check(b)
	av, bv := t.nodes[i].value, t.nodes[j].value
	fx := math.Pow(av, bv)
	da := float64(dPowBase(Real(av), Real(bv), Real(fx)))
	db := float64(dPowExp(Real(av), Real(bv), Real(fx)))
	return t.push2(OpPow, fx, i, da, j, db)
}

// PowReal returns a**p for a constant exponent.
func (a Var) PowReal(p float64) Var {
	t := a.tape
	i := t.check(a)
	x := t.nodes[i].value
	fx := math.Pow(x, p)
	return t.push1(OpPowReal, fx, i, float64(dPowReal(Real(x), Real(fx), p)))
}

// Sin returns the sine of a.
func (a Var) Sin() Var { return a.apply1(OpSin) }

// Cos returns the cosine of a.
func (a Var) Cos() Var { return a.apply1(OpCos) }

// Tan returns the tangent of a.
func (a Var) Tan() Var { return a.apply1(OpTan) }

// Asin returns the arcsine of a.
func (a Var) Asin() Var { return a.apply1(OpAsin) }

// Acos returns the arccosine of a.
func (a Var) Acos() Var { return a.apply1(OpAcos) }

// Atan returns the arctangent of a.
func (a Var) Atan() Var { return a.apply1(OpAtan) }

// Sinh returns the hyperbolic sine of a.
func (a Var) Sinh() Var { return a.apply1(OpSinh) }

// Cosh returns the hyperbolic cosine of a.
func (a Var) Cosh() Var { return a.apply1(OpCosh) }

// Tanh returns the hyperbolic tangent of a.
func (a Var) Tanh() Var { return a.apply1(OpTanh) }

// Floor returns the greatest integer value <= a; the recorded partial is
// zero everywhere.
func (a Var) Floor() Var { return a.apply1(OpFloor) }

// Ceil returns the least integer value >= a; the recorded partial is
// zero everywhere.
func (a Var) Ceil() Var { return a.apply1(OpCeil) }

// Round returns the nearest integer; the recorded partial is zero
// everywhere.
func (a Var) Round() Var { return a.apply1(OpRound) }

// Fmax returns the larger of a and b; the winning operand gets partial 1,
// the loser 0. NaN wins so it propagates; ties select a.
func (a Var) Fmax(b Var) Var {
	return maxMin(a, b, OpFmax, true)
}

// Fmin returns the smaller of a and b; the winning operand gets partial
// 1, the loser 0. NaN wins; ties select a.
func (a Var) Fmin(b Var) Var {
	return maxMin(a, b, OpFmin, false)
}

func maxMin(a, b Var, op Op, greater bool) Var {
	t := a.tape
	i, j := t.check(a), t.check(b)
	av, bv := t.nodes[i].value, t.nodes[j].value
	if selectFirst(av, bv, greater) {
		return t.push2(op, av, i, 1, j, 0)
	}
	return t.push2(op, bv, i, 0, j, 1)
}

// InvLogit returns the logistic sigmoid of a.
func (a Var) InvLogit() Var { return a.apply1(OpInvLogit) }

// BinaryLogLoss records the log loss of the receiver as a predicted
// probability against the fixed binary label y; the recorded partial is
// -1/a for y = 1 and +1/(1-a) for y = 0.
func (a Var) BinaryLogLoss(y int) Var {
	t := a.tape
	i := t.check(a)
	x := t.nodes[i].value
	fx := binaryLogLoss(y, x)
	return t.push1(OpBinaryLogLoss, fx, i, float64(dBinaryLogLoss(y, Real(x), Real(fx))))
}

// Lift registers c as a constant on a's tape.
func (a Var) Lift(c float64) Var {
	a.tape.check(a)
	return a.tape.Const(c)
}
