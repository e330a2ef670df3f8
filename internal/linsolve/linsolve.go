// Package linsolve wraps the sparse direct solver behind a single
// factorize-and-solve entry point.
package linsolve

import (
	"fmt"

	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
)

// Direct solves a*x = b with a sparse direct factorization. The
// underlying solver signals singular or otherwise unusable systems by
// panicking; that is converted into an error here so callers see a
// normal failure.
func Direct(a *spmat.Matrix, b la.Vector) (x la.Vector, err error) {
	m, n := a.Dims()
	if m != n {
		return nil, fmt.Errorf("linsolve: matrix must be square, got %dx%d", m, n)
	}
	if len(b) != m {
		return nil, fmt.Errorf("linsolve: rhs length %d does not match %dx%d matrix", len(b), m, n)
	}
	defer func() {
		if r := recover(); r != nil {
			x = nil
			err = fmt.Errorf("linsolve: direct solve failed: %v", r)
		}
	}()
	x = la.SpSolve(a.Triplet(), b)
	return x, nil
}
