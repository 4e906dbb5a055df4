package autodiff

import (
	"fmt"
	"math"
)

// Op identifies the primitive operation recorded by a tape node.
type Op uint8

const (
	// OpLeaf is an independent input registered via Tape.Var.
	OpLeaf Op = iota
	// OpConst is a lifted constant; consumers record no edge to it.
	OpConst

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpAbs

	OpExp
	OpLog
	OpLog1p
	OpSqrt
	OpPow
	OpPowReal

	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpSinh
	OpCosh
	OpTanh

	OpFloor
	OpCeil
	OpRound
	OpFmax
	OpFmin

	OpInvLogit
	OpBinaryLogLoss

	// Matrix primitives recorded by the linear-algebra collaborator.
	OpInverseSPD
	OpLogDetSPD

	numOps
)

var opNames = [numOps]string{
	OpLeaf:          "leaf",
	OpConst:         "const",
	OpAdd:           "add",
	OpSub:           "sub",
	OpMul:           "mul",
	OpDiv:           "div",
	OpNeg:           "neg",
	OpAbs:           "abs",
	OpExp:           "exp",
	OpLog:           "log",
	OpLog1p:         "log1p",
	OpSqrt:          "sqrt",
	OpPow:           "pow",
	OpPowReal:       "pow_real",
	OpSin:           "sin",
	OpCos:           "cos",
	OpTan:           "tan",
	OpAsin:          "asin",
	OpAcos:          "acos",
	OpAtan:          "atan",
	OpSinh:          "sinh",
	OpCosh:          "cosh",
	OpTanh:          "tanh",
	OpFloor:         "floor",
	OpCeil:          "ceil",
	OpRound:         "round",
	OpFmax:          "fmax",
	OpFmin:          "fmin",
	OpInvLogit:      "inv_logit",
	OpBinaryLogLoss: "binary_log_loss",
	OpInverseSPD:    "inverse_spd",
	OpLogDetSPD:     "log_determinant_spd",
}

// String returns the operation's rule-library name.
func (op Op) String() string {
	if op < numOps {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Derivative formulas of the rule library, each written once against
// Numeric and expressed purely in terms of primal inputs and outputs.
// Forward mode instantiates them at the dual's component type to build
// tangents; the tape instantiates them at Real (via realDF) to compute
// node partials.

// d(a/b)/da = 1/b
func dDivA[T Numeric[T]](a, b, fx T) T { return a.Lift(1).Div(b) }

// d(a/b)/db = -(a/b)/b
func dDivB[T Numeric[T]](a, b, fx T) T { return fx.Neg().Div(b) }

// d|x|/dx = sign(x); zero at x = 0, NaN for NaN input.
func dAbs[T Numeric[T]](x, fx T) T {
	v := x.Value()
	switch {
	case math.IsNaN(v):
		return x.Lift(math.NaN())
	case v > 0:
		return x.Lift(1)
	case v < 0:
		return x.Lift(-1)
	default:
		return x.Lift(0)
	}
}

// d(e**x)/dx = e**x
func dExp[T Numeric[T]](x, fx T) T { return fx }

// d(log x)/dx = 1/x
func dLog[T Numeric[T]](x, fx T) T { return x.Lift(1).Div(x) }

// d(log(1+x))/dx = 1/(1+x)
func dLog1p[T Numeric[T]](x, fx T) T { return x.Lift(1).Div(x.Lift(1).Add(x)) }

// d(sqrt x)/dx = 1/(2*sqrt x)
func dSqrt[T Numeric[T]](x, fx T) T { return fx.Lift(1).Div(fx.Add(fx)) }

// d(x**p)/dx = p*x**(p-1)
func dPowReal[T Numeric[T]](x, fx T, p float64) T { return x.PowReal(p - 1).Mul(x.Lift(p)) }

// d(a**b)/da = b*a**(b-1)
func dPowBase[T Numeric[T]](a, b, fx T) T { return b.Mul(a.Pow(b.Sub(b.Lift(1)))) }

// d(a**b)/db = a**b * log(a)
func dPowExp[T Numeric[T]](a, b, fx T) T { return fx.Mul(a.Log()) }

// d(sin x)/dx = cos(x)
func dSin[T Numeric[T]](x, fx T) T { return x.Cos() }

// d(cos x)/dx = -sin(x)
func dCos[T Numeric[T]](x, fx T) T { return x.Sin().Neg() }

// d(tan x)/dx = 1 + tan(x)**2
func dTan[T Numeric[T]](x, fx T) T { return fx.Mul(fx).Add(fx.Lift(1)) }

// d(asin x)/dx = 1/sqrt(1-x**2)
func dAsin[T Numeric[T]](x, fx T) T {
	return x.Lift(1).Div(x.Lift(1).Sub(x.Mul(x)).Sqrt())
}

// d(acos x)/dx = -1/sqrt(1-x**2)
func dAcos[T Numeric[T]](x, fx T) T { return dAsin(x, fx).Neg() }

// d(atan x)/dx = 1/(1+x**2)
func dAtan[T Numeric[T]](x, fx T) T { return x.Lift(1).Div(x.Lift(1).Add(x.Mul(x))) }

// d(sinh x)/dx = cosh(x)
func dSinh[T Numeric[T]](x, fx T) T { return x.Cosh() }

// d(cosh x)/dx = sinh(x)
func dCosh[T Numeric[T]](x, fx T) T { return x.Sinh() }

// d(tanh x)/dx = 1 - tanh(x)**2
func dTanh[T Numeric[T]](x, fx T) T { return fx.Lift(1).Sub(fx.Mul(fx)) }

// dZero is the almost-everywhere derivative of the rounding family.
func dZero[T Numeric[T]](x, fx T) T { return x.Lift(0) }

// d(inv_logit x)/dx = inv_logit(x) * (1 - inv_logit(x))
func dInvLogit[T Numeric[T]](x, fx T) T { return fx.Mul(fx.Lift(1).Sub(fx)) }

// d(binary_log_loss(y,p))/dp = -y/p + (1-y)/(1-p); the label selects the
// active branch.
func dBinaryLogLoss[T Numeric[T]](y int, p, fx T) T {
	if y != 0 {
		return p.Lift(-1).Div(p)
	}
	return p.Lift(1).Div(p.Lift(1).Sub(p))
}

// unaryRule pairs a primal formula with its local derivative for tape
// recording.
type unaryRule struct {
	f  func(float64) float64
	df func(x, fx float64) float64
}

// realDF instantiates a shared derivative formula at Real for tape use.
func realDF(d func(x, fx Real) Real) func(x, fx float64) float64 {
	return func(x, fx float64) float64 { return float64(d(Real(x), Real(fx))) }
}

// unaryRules is the registry of single-operand elementary functions,
// indexed by Op. Rules carrying an extra parameter (PowReal's exponent,
// BinaryLogLoss's label) and the binary rules evaluate their shared
// formulas directly in the Var methods instead.
var unaryRules = [numOps]unaryRule{
	OpAbs:      {math.Abs, realDF(dAbs[Real])},
	OpExp:      {math.Exp, realDF(dExp[Real])},
	OpLog:      {math.Log, realDF(dLog[Real])},
	OpLog1p:    {math.Log1p, realDF(dLog1p[Real])},
	OpSqrt:     {math.Sqrt, realDF(dSqrt[Real])},
	OpSin:      {math.Sin, realDF(dSin[Real])},
	OpCos:      {math.Cos, realDF(dCos[Real])},
	OpTan:      {math.Tan, realDF(dTan[Real])},
	OpAsin:     {math.Asin, realDF(dAsin[Real])},
	OpAcos:     {math.Acos, realDF(dAcos[Real])},
	OpAtan:     {math.Atan, realDF(dAtan[Real])},
	OpSinh:     {math.Sinh, realDF(dSinh[Real])},
	OpCosh:     {math.Cosh, realDF(dCosh[Real])},
	OpTanh:     {math.Tanh, realDF(dTanh[Real])},
	OpFloor:    {math.Floor, realDF(dZero[Real])},
	OpCeil:     {math.Ceil, realDF(dZero[Real])},
	OpRound:    {math.Round, realDF(dZero[Real])},
	OpInvLogit: {invLogit, realDF(dInvLogit[Real])},
}
