package transient

import (
	"fmt"

	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
)

// assemble sums the (matrix, rhs) pairs of an ordered term sequence.
// Accumulation is in place, starting from the first term's output.
// Dimension mismatches between terms are configuration errors of the
// collaborator and are propagated unchanged.
func assemble(terms []Term, dom Domain, data Store) (*spmat.Matrix, la.Vector, error) {
	if len(terms) == 0 {
		return nil, nil, ErrNoTerms
	}
	if dom.Kind == Aggregate {
		// Aggregates carry per-grid data internally.
		data = nil
	}
	lhs, rhs, err := terms[0].MatrixRHS(dom.Grid, data)
	if err != nil {
		return nil, nil, err
	}
	for _, tm := range terms[1:] {
		lhsN, rhsN, err := tm.MatrixRHS(dom.Grid, data)
		if err != nil {
			return nil, nil, err
		}
		if err := lhs.Add(lhsN); err != nil {
			return nil, nil, err
		}
		if len(rhsN) != len(rhs) {
			return nil, nil, fmt.Errorf("%w: rhs lengths %d and %d", spmat.ErrDims, len(rhs), len(rhsN))
		}
		la.VecAdd(rhs, 1, rhs, 1, rhsN)
	}
	return lhs, rhs, nil
}

// checkLens verifies every vector has length n.
func checkLens(n int, vs ...la.Vector) error {
	for _, v := range vs {
		if len(v) != n {
			return fmt.Errorf("%w: vector lengths %d and %d", spmat.ErrDims, n, len(v))
		}
	}
	return nil
}

// sumVecs returns the elementwise sum of vs as a new vector.
func sumVecs(vs ...la.Vector) (la.Vector, error) {
	n := len(vs[0])
	if err := checkLens(n, vs[1:]...); err != nil {
		return nil, err
	}
	out := la.NewVector(n)
	for _, v := range vs {
		for i := range v {
			out[i] += v[i]
		}
	}
	return out, nil
}
