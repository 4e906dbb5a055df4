// Package linalg provides differentiable dense-matrix operations on
// top of gonum: SPD inversion and log determinants with their forward
// and reverse derivative rules, plus shape plumbing like column
// concatenation. Matrix primitives validate their inputs up front and
// report violations as DomainErrors; only after validation do they
// touch the tape, so a rejected matrix never leaves partial nodes
// behind.
package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/edhearn84/stan/internal/autodiff"
)

// Dense is a row-major dense matrix of differentiable scalars, generic
// over the arithmetic mode. A Dense[autodiff.Var] carries tape handles,
// a Dense[autodiff.Dual[autodiff.Real]] carries value/tangent pairs,
// and a Dense[autodiff.Real] is plain numbers.
type Dense[T autodiff.Numeric[T]] struct {
	rows, cols int
	data       []T
}

// NewDense allocates an r×c matrix of zero-valued entries. For the Var
// mode prefer VarDense or ConstDense: a zero Var is not a usable handle
// until Set replaces it.
func NewDense[T autodiff.Numeric[T]](r, c int) *Dense[T] {
	if r <= 0 || c <= 0 {
		panic("linalg: non-positive matrix dimension")
	}
	return &Dense[T]{rows: r, cols: c, data: make([]T, r*c)}
}

// VarDense records every entry of a as an input leaf on t, for matrices
// of parameters the backward sweep should produce adjoints for.
func VarDense(t *autodiff.Tape, a mat.Matrix) *Dense[autodiff.Var] {
	r, c := a.Dims()
	m := NewDense[autodiff.Var](r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, t.Var(a.At(i, j)))
		}
	}
	return m
}

// ConstDense records every entry of a as a constant on t, for data
// matrices that never need adjoints and cost no edges downstream.
func ConstDense(t *autodiff.Tape, a mat.Matrix) *Dense[autodiff.Var] {
	r, c := a.Dims()
	m := NewDense[autodiff.Var](r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, t.Const(a.At(i, j)))
		}
	}
	return m
}

// DualDense pairs values with tangents entry-wise. A nil tangents
// matrix seeds every tangent to zero.
func DualDense(values, tangents mat.Matrix) *Dense[autodiff.Dual[autodiff.Real]] {
	r, c := values.Dims()
	if tangents != nil {
		tr, tc := tangents.Dims()
		if tr != r || tc != c {
			panic("linalg: tangent matrix dimension mismatch")
		}
	}
	m := NewDense[autodiff.Dual[autodiff.Real]](r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := autodiff.NewDual(values.At(i, j), 0)
			if tangents != nil {
				d.Tangent = autodiff.Real(tangents.At(i, j))
			}
			m.Set(i, j, d)
		}
	}
	return m
}

// RealDense copies a into the plain-number mode.
func RealDense(a mat.Matrix) *Dense[autodiff.Real] {
	r, c := a.Dims()
	m := NewDense[autodiff.Real](r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, autodiff.Real(a.At(i, j)))
		}
	}
	return m
}

// Dims returns the row and column counts.
func (m *Dense[T]) Dims() (r, c int) {
	return m.rows, m.cols
}

// At returns the entry at row i, column j.
func (m *Dense[T]) At(i, j int) T {
	return m.data[m.index(i, j)]
}

// Set stores v at row i, column j.
func (m *Dense[T]) Set(i, j int, v T) {
	m.data[m.index(i, j)] = v
}

func (m *Dense[T]) index(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("linalg: matrix index out of range")
	}
	return i*m.cols + j
}

// Values extracts the primal entries into dst, allocating it when nil.
func (m *Dense[T]) Values(dst *mat.Dense) *mat.Dense {
	if dst == nil {
		dst = mat.NewDense(m.rows, m.cols, nil)
	} else if r, c := dst.Dims(); r != m.rows || c != m.cols {
		panic("linalg: destination dimension mismatch")
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			dst.Set(i, j, m.At(i, j).Value())
		}
	}
	return dst
}

// tangentsOf extracts the tangent entries of a forward-mode matrix.
func tangentsOf(m *Dense[autodiff.Dual[autodiff.Real]]) *mat.Dense {
	dst := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			dst.Set(i, j, float64(m.At(i, j).Tangent))
		}
	}
	return dst
}
