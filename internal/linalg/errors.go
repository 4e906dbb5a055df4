package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// symTol is the relative tolerance used when deciding whether a matrix
// is symmetric enough to be treated as SPD input.
const symTol = 1e-8

// DomainError reports an argument outside an operation's mathematical
// domain: a non-square or asymmetric matrix, a factorization that fails
// positive definiteness, a size mismatch. Domain errors are recoverable
// data conditions, returned rather than panicked, so a sampler can
// reject the proposal that produced them and move on.
type DomainError struct {
	Func string // operation that rejected the argument
	Arg  string // name of the offending argument
	Msg  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("linalg: %s: argument %s: %s", e.Func, e.Arg, e.Msg)
}

func domainErrf(fn, arg, format string, args ...any) *DomainError {
	return &DomainError{Func: fn, Arg: arg, Msg: fmt.Sprintf(format, args...)}
}

// checkSquare rejects non-square dimensions.
func checkSquare(fn, arg string, r, c int) error {
	if r != c {
		return domainErrf(fn, arg, "matrix is %d×%d, not square", r, c)
	}
	return nil
}

// checkSymmetric rejects matrices whose mirror entries differ by more
// than symTol relative to their magnitude.
func checkSymmetric(fn, arg string, a *mat.Dense) error {
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			x, y := a.At(i, j), a.At(j, i)
			scale := 1.0
			if ax := math.Abs(x); ax > scale {
				scale = ax
			}
			if ay := math.Abs(y); ay > scale {
				scale = ay
			}
			if d := math.Abs(x - y); d > symTol*scale || math.IsNaN(d) {
				return domainErrf(fn, arg, "matrix is not symmetric: [%d,%d] = %g but [%d,%d] = %g", i, j, x, j, i, y)
			}
		}
	}
	return nil
}

// checkSameRows rejects operands whose row counts disagree.
func checkSameRows(fn, arg string, want, got int) error {
	if want != got {
		return domainErrf(fn, arg, "has %d rows, expected %d", got, want)
	}
	return nil
}
