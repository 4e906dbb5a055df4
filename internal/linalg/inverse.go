package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/edhearn84/stan/internal/autodiff"
)

// spdFactor validates and factors the primal matrix of an SPD
// operation: square, symmetric within tolerance, then Cholesky of the
// symmetrized 0.5(M+Mᵀ). A failed factorization means the matrix is
// not positive definite.
func spdFactor(fn string, vals *mat.Dense) (*mat.Cholesky, error) {
	r, c := vals.Dims()
	if err := checkSquare(fn, "m", r, c); err != nil {
		return nil, err
	}
	if err := checkSymmetric(fn, "m", vals); err != nil {
		return nil, err
	}
	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, 0.5*(vals.At(i, j)+vals.At(j, i)))
		}
	}
	var ch mat.Cholesky
	if !ch.Factorize(sym) {
		return nil, domainErrf(fn, "m", "matrix is not positive definite")
	}
	return &ch, nil
}

// spdInverse runs the shared primal path: factor, then invert through
// the factorization.
func spdInverse(fn string, vals *mat.Dense) (*mat.SymDense, error) {
	ch, err := spdFactor(fn, vals)
	if err != nil {
		return nil, err
	}
	var inv mat.SymDense
	if err := ch.InverseTo(&inv); err != nil {
		return nil, domainErrf(fn, "m", "matrix is numerically singular")
	}
	return &inv, nil
}

// InverseSPD inverts a symmetric positive-definite matrix of tape
// handles, recording for every output entry one node whose n² edges
// carry the reverse rule
//
//	∂B_ij/∂M_kl = −B_ik·B_lj,  B = M⁻¹.
//
// All validation precedes the first append: a rejected matrix returns a
// DomainError and leaves the tape untouched.
func InverseSPD(m *Dense[autodiff.Var]) (*Dense[autodiff.Var], error) {
	b, err := spdInverse("InverseSPD", m.Values(nil))
	if err != nil {
		return nil, err
	}

	n := m.rows
	t := m.data[0].Tape()
	out := NewDense[autodiff.Var](n, n)
	partials := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					partials[k*n+l] = -b.At(i, k) * b.At(l, j)
				}
			}
			out.Set(i, j, t.Record(autodiff.OpInverseSPD, b.At(i, j), m.data, partials))
		}
	}
	return out, nil
}

// InverseSPDDual inverts in forward mode, pairing the primal inverse
// with the tangent matrix −B·Ṁ·B.
func InverseSPDDual(m *Dense[autodiff.Dual[autodiff.Real]]) (*Dense[autodiff.Dual[autodiff.Real]], error) {
	b, err := spdInverse("InverseSPDDual", m.Values(nil))
	if err != nil {
		return nil, err
	}

	n := m.rows
	var tmp, db mat.Dense
	tmp.Mul(b, tangentsOf(m))
	db.Mul(&tmp, b)

	out := NewDense[autodiff.Dual[autodiff.Real]](n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, autodiff.Dual[autodiff.Real]{
				Val: autodiff.Real(b.At(i, j)),
				Tangent: autodiff.Real(-db.At(i, j)),
			})
		}
	}
	return out, nil
}
