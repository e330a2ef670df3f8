// Package spmat provides a coordinate-format sparse matrix used to
// accumulate discretization contributions before they are handed to the
// direct solver. Duplicate (i, j) entries are additive, so elementwise
// sums of assembled operators reduce to appending entry lists.
package spmat

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/la"
)

// ErrDims indicates an elementwise operation between matrices (or a
// matrix and a vector) of incompatible dimensions.
var ErrDims = errors.New("spmat: dimension mismatch")

// Matrix is a sparse matrix in coordinate (triplet) format.
type Matrix struct {
	m, n int
	ri   []int
	ci   []int
	v    []float64
}

// New returns an empty m-by-n matrix.
func New(m, n int) *Matrix {
	if m <= 0 || n <= 0 {
		panic(fmt.Sprintf("spmat: invalid dimensions %dx%d", m, n))
	}
	return &Matrix{m: m, n: n}
}

// Dims returns the number of rows and columns.
func (a *Matrix) Dims() (m, n int) { return a.m, a.n }

// Nnz returns the number of stored entries, duplicates included.
func (a *Matrix) Nnz() int { return len(a.v) }

// Put appends the entry (i, j, x). Entries at the same position
// accumulate. Indices outside the matrix are a programming error.
func (a *Matrix) Put(i, j int, x float64) {
	if i < 0 || i >= a.m || j < 0 || j >= a.n {
		panic(fmt.Sprintf("spmat: entry (%d,%d) outside %dx%d matrix", i, j, a.m, a.n))
	}
	a.ri = append(a.ri, i)
	a.ci = append(a.ci, j)
	a.v = append(a.v, x)
}

// Clone returns a deep copy.
func (a *Matrix) Clone() *Matrix {
	b := &Matrix{
		m:  a.m,
		n:  a.n,
		ri: make([]int, len(a.ri)),
		ci: make([]int, len(a.ci)),
		v:  make([]float64, len(a.v)),
	}
	copy(b.ri, a.ri)
	copy(b.ci, a.ci)
	copy(b.v, a.v)
	return b
}

// Add accumulates b into a.
func (a *Matrix) Add(b *Matrix) error {
	return a.AddScaled(1, b)
}

// AddScaled accumulates alpha*b into a.
func (a *Matrix) AddScaled(alpha float64, b *Matrix) error {
	if a.m != b.m || a.n != b.n {
		return fmt.Errorf("%w: %dx%d += %dx%d", ErrDims, a.m, a.n, b.m, b.n)
	}
	for k := range b.v {
		a.ri = append(a.ri, b.ri[k])
		a.ci = append(a.ci, b.ci[k])
		a.v = append(a.v, alpha*b.v[k])
	}
	return nil
}

// Scale multiplies every entry by alpha.
func (a *Matrix) Scale(alpha float64) {
	for k := range a.v {
		a.v[k] *= alpha
	}
}

// Sum returns alpha*a + beta*b as a new matrix.
func Sum(alpha float64, a *Matrix, beta float64, b *Matrix) (*Matrix, error) {
	c := a.Clone()
	c.Scale(alpha)
	if err := c.AddScaled(beta, b); err != nil {
		return nil, err
	}
	return c, nil
}

// MulVec returns the product a*x.
func (a *Matrix) MulVec(x la.Vector) (la.Vector, error) {
	if len(x) != a.n {
		return nil, fmt.Errorf("%w: %dx%d * vector of length %d", ErrDims, a.m, a.n, len(x))
	}
	y := la.NewVector(a.m)
	for k := range a.v {
		y[a.ri[k]] += a.v[k] * x[a.ci[k]]
	}
	return y, nil
}

// Triplet converts the matrix to the solver's triplet representation.
func (a *Matrix) Triplet() *la.Triplet {
	nnz := len(a.v)
	if nnz == 0 {
		nnz = 1
	}
	t := la.NewTriplet(a.m, a.n, nnz)
	for k := range a.v {
		t.Put(a.ri[k], a.ci[k], a.v[k])
	}
	return t
}
