package linalg

import "github.com/edhearn84/stan/internal/autodiff"

// AppendCol returns the horizontal concatenation [a b], generic over
// the arithmetic mode. Entries are copied by handle, so in the Var mode
// no nodes are recorded; the result shares the operands' derivative
// structure. Operands whose row counts disagree are rejected with a
// DomainError.
func AppendCol[T autodiff.Numeric[T]](a, b *Dense[T]) (*Dense[T], error) {
	if err := checkSameRows("AppendCol", "b", a.rows, b.rows); err != nil {
		return nil, err
	}
	out := NewDense[T](a.rows, a.cols+b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			out.Set(i, j, a.At(i, j))
		}
		for j := 0; j < b.cols; j++ {
			out.Set(i, a.cols+j, b.At(i, j))
		}
	}
	return out, nil
}
