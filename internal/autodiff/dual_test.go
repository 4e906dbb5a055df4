package autodiff_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/edhearn84/stan/internal/autodiff"
)

// hyper nests one dual number inside another for second derivatives.
type hyper = autodiff.Dual[autodiff.Dual[autodiff.Real]]

// TestDual_ProductQuotient tests the product and quotient rules.
func TestDual_ProductQuotient(t *testing.T) {
	a := autodiff.NewDual(3.0, 1) // x at x=3
	b := autodiff.NewDual(5.0, 0) // constant 5

	p := a.Mul(b)
	if got := float64(p.Tangent); got != 5 {
		t.Errorf("d(5x)/dx = %v, want 5", got)
	}

	q := b.Div(a)
	// d(5/x)/dx = -5/x² = -5/9
	if got, want := float64(q.Tangent), -5.0/9.0; math.Abs(got-want) > 1e-15 {
		t.Errorf("d(5/x)/dx = %v, want %v", got, want)
	}

	s := a.Mul(a).Sub(a)
	// d(x²-x)/dx = 2x-1 = 5
	if got := float64(s.Tangent); got != 5 {
		t.Errorf("d(x²-x)/dx = %v, want 5", got)
	}
}

// TestDual_ChainRule tests a deep composite against the analytic
// derivative and a finite-difference estimate.
func TestDual_ChainRule(t *testing.T) {
	f := func(x float64) float64 {
		return math.Exp(math.Sin(x * x))
	}
	x := 0.7

	d := autodiff.NewDual(x, 1)
	y := d.Mul(d).Sin().Exp()

	if got := y.Value(); got != f(x) {
		t.Errorf("value = %v, want %v", got, f(x))
	}

	// d/dx exp(sin(x²)) = exp(sin(x²))·cos(x²)·2x
	analytic := math.Exp(math.Sin(x*x)) * math.Cos(x*x) * 2 * x
	if got := float64(y.Tangent); math.Abs(got-analytic) > 1e-14 {
		t.Errorf("tangent = %v, want %v", got, analytic)
	}

	numeric := fd.Derivative(f, x, nil)
	if got := float64(y.Tangent); math.Abs(got-numeric) > 1e-6 {
		t.Errorf("tangent = %v, finite difference gives %v", got, numeric)
	}
}

// TestDual_Transcendental tests each unary rule at a generic point
// against a central finite difference.
func TestDual_Transcendental(t *testing.T) {
	cases := []struct {
		name string
		eval func(autodiff.Dual[autodiff.Real]) autodiff.Dual[autodiff.Real]
		f    func(float64) float64
		x    float64
	}{
		{"exp", autodiff.Dual[autodiff.Real].Exp, math.Exp, 0.3},
		{"log", autodiff.Dual[autodiff.Real].Log, math.Log, 2.1},
		{"log1p", autodiff.Dual[autodiff.Real].Log1p, math.Log1p, 0.4},
		{"sqrt", autodiff.Dual[autodiff.Real].Sqrt, math.Sqrt, 1.7},
		{"sin", autodiff.Dual[autodiff.Real].Sin, math.Sin, 0.9},
		{"cos", autodiff.Dual[autodiff.Real].Cos, math.Cos, 0.9},
		{"tan", autodiff.Dual[autodiff.Real].Tan, math.Tan, 0.6},
		{"asin", autodiff.Dual[autodiff.Real].Asin, math.Asin, 0.4},
		{"acos", autodiff.Dual[autodiff.Real].Acos, math.Acos, 0.4},
		{"atan", autodiff.Dual[autodiff.Real].Atan, math.Atan, 1.2},
		{"sinh", autodiff.Dual[autodiff.Real].Sinh, math.Sinh, 0.8},
		{"cosh", autodiff.Dual[autodiff.Real].Cosh, math.Cosh, 0.8},
		{"tanh", autodiff.Dual[autodiff.Real].Tanh, math.Tanh, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			y := tc.eval(autodiff.NewDual(tc.x, 1))
			if got := y.Value(); got != tc.f(tc.x) {
				t.Errorf("value = %v, want %v", got, tc.f(tc.x))
			}
			numeric := fd.Derivative(tc.f, tc.x, nil)
			if got := float64(y.Tangent); math.Abs(got-numeric) > 1e-6 {
				t.Errorf("tangent = %v, finite difference gives %v", got, numeric)
			}
		})
	}
}

// TestDual_Pow tests both power forms.
func TestDual_Pow(t *testing.T) {
	x := autodiff.NewDual(2.0, 1)

	y := x.PowReal(3)
	// d(x³)/dx = 3x² = 12
	if got := float64(y.Tangent); math.Abs(got-12) > 1e-12 {
		t.Errorf("d(x³)/dx = %v, want 12", got)
	}

	z := x.Pow(x)
	// d(x^x)/dx = x^x(log x + 1) = 4(log 2 + 1)
	want := 4 * (math.Log(2) + 1)
	if got := float64(z.Tangent); math.Abs(got-want) > 1e-12 {
		t.Errorf("d(x^x)/dx = %v, want %v", got, want)
	}
}

// TestDual_SpecialCases tests IEEE propagation through values and
// tangents. Domain violations yield NaN, never a panic.
func TestDual_SpecialCases(t *testing.T) {
	neg := autodiff.NewDual(-1.0, 1)

	l := neg.Log()
	if !math.IsNaN(l.Value()) {
		t.Errorf("Log(-1) = %v, want NaN", l.Value())
	}
	if s := neg.Sqrt(); !math.IsNaN(s.Value()) {
		t.Errorf("Sqrt(-1) = %v, want NaN", s.Value())
	}

	zero := autodiff.NewDual(0, 0)
	d := autodiff.NewDual(1, 1).Div(zero)
	if !math.IsInf(d.Value(), 1) {
		t.Errorf("1/0 = %v, want +Inf", d.Value())
	}

	nan := autodiff.NewDual(math.NaN(), 1)
	if y := nan.Exp().Mul(autodiff.NewDual(2, 0)); !math.IsNaN(y.Value()) {
		t.Errorf("NaN did not propagate, got %v", y.Value())
	}

	// Log(0) = -Inf with tangent 1/0·1 = +Inf.
	lz := autodiff.NewDual(0, 1).Log()
	if !math.IsInf(lz.Value(), -1) || !math.IsInf(float64(lz.Tangent), 1) {
		t.Errorf("Log(0) = (%v, %v), want (-Inf, +Inf)", lz.Value(), lz.Tangent)
	}
}

// TestDual_Extrema tests that Fmax and Fmin select a whole operand,
// ties keeping the first and NaN winning.
func TestDual_Extrema(t *testing.T) {
	a := autodiff.NewDual(2.0, 3)
	b := autodiff.NewDual(5.0, 7)

	if got := b.Fmax(a); float64(got.Tangent) != 7 {
		t.Errorf("Fmax picked tangent %v, want 7", got.Tangent)
	}
	if got := a.Fmin(b); float64(got.Tangent) != 3 {
		t.Errorf("Fmin picked tangent %v, want 3", got.Tangent)
	}

	// Equal values keep the first operand's tangent.
	c := autodiff.NewDual(2.0, 11)
	if got := a.Fmax(c); float64(got.Tangent) != 3 {
		t.Errorf("Fmax tie picked tangent %v, want 3", got.Tangent)
	}

	nan := autodiff.NewDual(math.NaN(), 0)
	if got := a.Fmax(nan); !math.IsNaN(got.Value()) {
		t.Errorf("Fmax(2, NaN) = %v, want NaN", got.Value())
	}
	if got := nan.Fmin(a); !math.IsNaN(got.Value()) {
		t.Errorf("Fmin(NaN, 2) = %v, want NaN", got.Value())
	}
}

// TestDual_Rounding tests that step functions carry zero tangents.
func TestDual_Rounding(t *testing.T) {
	x := autodiff.NewDual(2.7, 5)

	if got := x.Floor(); got.Value() != 2 || float64(got.Tangent) != 0 {
		t.Errorf("Floor(2.7) = (%v, %v), want (2, 0)", got.Value(), got.Tangent)
	}
	if got := x.Ceil(); got.Value() != 3 || float64(got.Tangent) != 0 {
		t.Errorf("Ceil(2.7) = (%v, %v), want (3, 0)", got.Value(), got.Tangent)
	}
	if got := x.Round(); got.Value() != 3 || float64(got.Tangent) != 0 {
		t.Errorf("Round(2.7) = (%v, %v), want (3, 0)", got.Value(), got.Tangent)
	}
	if got := autodiff.NewDual(0, 1).Abs(); float64(got.Tangent) != 0 {
		t.Errorf("Abs tangent at 0 = %v, want 0", got.Tangent)
	}
	if got := autodiff.NewDual(-3, 5).Abs(); float64(got.Tangent) != -5 {
		t.Errorf("Abs tangent at -3 = %v, want -5", got.Tangent)
	}
}

// TestDual_InvLogit tests the logistic primitive, including arguments
// that would overflow a naive 1/(1+exp(-x)).
func TestDual_InvLogit(t *testing.T) {
	x := autodiff.NewDual(0, 1)
	y := x.InvLogit()
	if y.Value() != 0.5 || float64(y.Tangent) != 0.25 {
		t.Errorf("InvLogit(0) = (%v, %v), want (0.5, 0.25)", y.Value(), y.Tangent)
	}

	big := autodiff.NewDual(800, 1).InvLogit()
	if big.Value() != 1 || float64(big.Tangent) != 0 {
		t.Errorf("InvLogit(800) = (%v, %v), want (1, 0)", big.Value(), big.Tangent)
	}
	small := autodiff.NewDual(-800, 1).InvLogit()
	if small.Value() != 0 || float64(small.Tangent) != 0 {
		t.Errorf("InvLogit(-800) = (%v, %v), want (0, 0)", small.Value(), small.Tangent)
	}
}

// TestDual_BinaryLogLoss tests the cross-entropy primitive for both
// outcomes.
func TestDual_BinaryLogLoss(t *testing.T) {
	p := autodiff.NewDual(0.8, 1)

	y1 := p.BinaryLogLoss(1)
	// -log(0.8), derivative -1/p = -1.25
	if got, want := y1.Value(), -math.Log(0.8); got != want {
		t.Errorf("loss(1, 0.8) = %v, want %v", got, want)
	}
	if got := float64(y1.Tangent); math.Abs(got+1.25) > 1e-15 {
		t.Errorf("dloss(1, 0.8)/dp = %v, want -1.25", got)
	}

	y0 := p.BinaryLogLoss(0)
	// -log(0.2), derivative 1/(1-p) = 5
	if got, want := y0.Value(), -math.Log1p(-0.8); got != want {
		t.Errorf("loss(0, 0.8) = %v, want %v", got, want)
	}
	if got := float64(y0.Tangent); math.Abs(got-5) > 1e-12 {
		t.Errorf("dloss(0, 0.8)/dp = %v, want 5", got)
	}

	// The free function routes through the same method.
	if got := autodiff.BinaryLogLoss(1, p); got != y1 {
		t.Errorf("BinaryLogLoss(1, p) = %v, want %v", got, y1)
	}
}

// TestDual_Lift tests constant promotion.
func TestDual_Lift(t *testing.T) {
	x := autodiff.NewDual(2.0, 1)
	c := x.Lift(10)
	if c.Value() != 10 || float64(c.Tangent) != 0 {
		t.Errorf("Lift(10) = (%v, %v), want (10, 0)", c.Value(), c.Tangent)
	}
	y := x.Mul(x).Add(c)
	// d(x²+10)/dx = 2x = 4
	if got := float64(y.Tangent); got != 4 {
		t.Errorf("d(x²+10)/dx = %v, want 4", got)
	}
}

// TestDual_Nested tests hyper-dual second derivatives: a dual number
// whose components are themselves dual numbers.
func TestDual_Nested(t *testing.T) {
	one := autodiff.NewDual(1.0, 0)

	at := func(v float64) hyper {
		return hyper{Val: autodiff.NewDual(v, 1), Tangent: one}
	}

	// f(x) = x³: f'(x) = 3x², f''(x) = 6x.
	x := at(1.3)
	y := x.Mul(x).Mul(x)
	if got, want := y.Value(), 1.3*1.3*1.3; math.Abs(got-want) > 1e-15 {
		t.Errorf("x³ = %v, want %v", got, want)
	}
	if got, want := float64(y.Val.Tangent), 3*1.3*1.3; math.Abs(got-want) > 1e-14 {
		t.Errorf("first derivative = %v, want %v", got, want)
	}
	if got, want := float64(y.Tangent.Tangent), 6*1.3; math.Abs(got-want) > 1e-14 {
		t.Errorf("second derivative = %v, want %v", got, want)
	}

	// f(x) = sin(x): f''(x) = -sin(x).
	s := at(0.6).Sin()
	if got, want := float64(s.Tangent.Tangent), -math.Sin(0.6); math.Abs(got-want) > 1e-14 {
		t.Errorf("sin second derivative = %v, want %v", got, want)
	}

	// f(x) = log(x): f''(x) = -1/x².
	l := at(2.0).Log()
	if got, want := float64(l.Tangent.Tangent), -0.25; math.Abs(got-want) > 1e-14 {
		t.Errorf("log second derivative = %v, want %v", got, want)
	}
}

// TestReal_Numeric tests that plain Real arithmetic matches math.
func TestReal_Numeric(t *testing.T) {
	x := autodiff.Real(0.3)
	if got := x.Exp().Log(); math.Abs(float64(got)-0.3) > 1e-15 {
		t.Errorf("log(exp(0.3)) = %v, want 0.3", got)
	}
	if got := x.Lift(7); float64(got) != 7 {
		t.Errorf("Lift(7) = %v, want 7", got)
	}
	if got := autodiff.Real(-2).Abs(); float64(got) != 2 {
		t.Errorf("Abs(-2) = %v, want 2", got)
	}
	if got := x.BinaryLogLoss(1); float64(got) != -math.Log(0.3) {
		t.Errorf("loss(1, 0.3) = %v, want %v", got, -math.Log(0.3))
	}
	if got := autodiff.Real(2).Fmax(autodiff.Real(3)); float64(got) != 3 {
		t.Errorf("Fmax(2, 3) = %v, want 3", got)
	}
}
