package autodiff

import (
	"gonum.org/v1/gonum/mat"

	"github.com/edhearn84/stan/internal/parallel"
)

// Settings tunes the forward-mode drivers.
type Settings struct {
	// Concurrent evaluates seed directions in parallel goroutines. Each
	// direction is an independent episode sharing nothing, so the only
	// requirement is that f itself is safe to call concurrently.
	Concurrent bool
}

// Gradient evaluates f at x in reverse mode: one forward sweep recording
// the computation on t, one backward sweep for the whole gradient. This
// is the driver for the many-inputs one-output case, one call per
// sampler transition.
//
// The episode runs on t, which is Reset on entry and may be reused
// across calls to keep the arena warm; a nil t allocates a fresh tape.
// The gradient is written into dst (allocated when nil) and returned
// with the function value. On error dst is unspecified.
func Gradient(t *Tape, dst []float64, f func([]Var) (Var, error), x []float64) (float64, []float64, error) {
	if t == nil {
		t = NewTape()
	}
	t.Reset()
	dst = sized(dst, len(x), "autodiff: gradient")

	xs := make([]Var, len(x))
	for i, v := range x {
		xs[i] = t.Var(v)
	}
	y, err := f(xs)
	if err != nil {
		return 0, dst, err
	}
	t.Backward(y)
	for i, v := range xs {
		dst[i] = v.Adjoint()
	}
	return y.Value(), dst, nil
}

// ForwardGradient evaluates f at x in forward mode: one evaluation per
// input dimension with that dimension's tangent seeded to 1. O(n)
// evaluations, preferred only for small n or when forward evaluation is
// much cheaper than taping.
func ForwardGradient(dst []float64, f func([]Dual[Real]) (Dual[Real], error), x []float64, s *Settings) (float64, []float64, error) {
	n := len(x)
	dst = sized(dst, n, "autodiff: gradient")
	if n == 0 {
		y, err := f(nil)
		if err != nil {
			return 0, dst, err
		}
		return y.Value(), dst, nil
	}

	eval := func(i int) (float64, error) {
		xs := seeds(x, i)
		y, err := f(xs)
		if err != nil {
			return 0, err
		}
		dst[i] = y.Tangent.Value()
		return y.Val.Value(), nil
	}

	if s != nil && s.Concurrent {
		vals := make([]float64, n)
		errs := make([]error, n)
		parallel.For(n, func(i int) {
			vals[i], errs[i] = eval(i)
		}, parallel.DefaultConfig())
		for _, err := range errs {
			if err != nil {
				return 0, dst, err
			}
		}
		return vals[0], dst, nil
	}

	var val float64
	for i := 0; i < n; i++ {
		v, err := eval(i)
		if err != nil {
			return 0, dst, err
		}
		val = v
	}
	return val, dst, nil
}

// Jacobian fills dst with the m×n Jacobian of a vector-valued f at x,
// one forward-mode evaluation per input dimension producing one column.
// dst must be non-nil with n columns and one row per output of f.
func Jacobian(dst *mat.Dense, f func([]Dual[Real]) ([]Dual[Real], error), x []float64, s *Settings) error {
	if dst == nil {
		panic("autodiff: nil Jacobian destination")
	}
	n := len(x)
	r, c := dst.Dims()
	if c != n {
		panic("autodiff: Jacobian destination dimension mismatch")
	}
	if n == 0 {
		return nil
	}

	eval := func(i int) error {
		ys, err := f(seeds(x, i))
		if err != nil {
			return err
		}
		if len(ys) != r {
			panic("autodiff: Jacobian destination dimension mismatch")
		}
		for j, y := range ys {
			dst.Set(j, i, y.Tangent.Value())
		}
		return nil
	}

	if s != nil && s.Concurrent {
		errs := make([]error, n)
		parallel.For(n, func(i int) {
			errs[i] = eval(i)
		}, parallel.DefaultConfig())
		for _, err := range errs {
			if err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; i < n; i++ {
		if err := eval(i); err != nil {
			return err
		}
	}
	return nil
}

// HessianVector computes the Hessian-vector product H(x)·v of f in one
// forward-over-reverse episode: inputs are Dual[Var] values whose primal
// slots are tape leaves and whose tangents are seeded with v, so the
// output's tangent component is the directional derivative ∇f·v recorded
// on the tape; sweeping backward from it yields its gradient, which is
// H·v. No second-order rules are involved anywhere.
//
// The product is written into dst (allocated when nil) and returned with
// the function value.
func HessianVector(t *Tape, dst []float64, f func([]Dual[Var]) (Dual[Var], error), x, v []float64) (float64, []float64, error) {
	n := len(x)
	if len(v) != n {
		panic("autodiff: direction length mismatch")
	}
	if t == nil {
		t = NewTape()
	}
	t.Reset()
	dst = sized(dst, n, "autodiff: Hessian-vector product")

	xs := make([]Dual[Var], n)
	for i := range x {
		xs[i] = Dual[Var]{Val: t.Var(x[i]), Tangent: t.Const(v[i])}
	}
	y, err := f(xs)
	if err != nil {
		return 0, dst, err
	}
	t.Backward(y.Tangent)
	for i := range xs {
		dst[i] = xs[i].Val.Adjoint()
	}
	return y.Value(), dst, nil
}

// Hessian fills dst with the full Hessian of f at x using n
// forward-over-reverse episodes, one unit seed direction per row. The
// value of f is returned; when grad is non-nil the gradient falls out of
// the first episode's extra sweep over the value component. dst must be
// non-nil and n×n.
func Hessian(t *Tape, dst *mat.SymDense, grad []float64, f func([]Dual[Var]) (Dual[Var], error), x []float64) (float64, error) {
	if dst == nil {
		panic("autodiff: nil Hessian destination")
	}
	n := len(x)
	if r, _ := dst.Dims(); r != n {
		panic("autodiff: Hessian destination dimension mismatch")
	}
	if grad != nil && len(grad) != n {
		panic("autodiff: gradient destination length mismatch")
	}
	if t == nil {
		t = NewTape()
	}

	if n == 0 {
		t.Reset()
		y, err := f(nil)
		if err != nil {
			return 0, err
		}
		return y.Value(), nil
	}

	var val float64
	for i := 0; i < n; i++ {
		t.Reset()
		xs := make([]Dual[Var], n)
		for j := range x {
			seed := 0.0
			if j == i {
				seed = 1
			}
			xs[j] = Dual[Var]{Val: t.Var(x[j]), Tangent: t.Const(seed)}
		}
		y, err := f(xs)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			val = y.Value()
			if grad != nil {
				t.Backward(y.Val)
				for j := range xs {
					grad[j] = xs[j].Val.Adjoint()
				}
			}
		}
		t.Backward(y.Tangent)
		for j := i; j < n; j++ {
			dst.SetSym(i, j, xs[j].Val.Adjoint())
		}
	}
	return val, nil
}

// seeds builds forward-mode inputs for x with direction i's tangent set
// to 1.
func seeds(x []float64, i int) []Dual[Real] {
	xs := make([]Dual[Real], len(x))
	for j, v := range x {
		xs[j] = NewDual(v, 0)
	}
	xs[i].Tangent = 1
	return xs
}

// sized returns dst, allocating it at length n when nil.
func sized(dst []float64, n int, what string) []float64 {
	if dst == nil {
		return make([]float64, n)
	}
	if len(dst) != n {
		panic(what + " destination length mismatch")
	}
	return dst
}
