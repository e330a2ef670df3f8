package transient

import (
	"github.com/mkvern/pdestep/internal/spmat"
)

// Implicit is the first-order backward Euler scheme:
//
//	(M + A) p_new = M p0 + b_A + b_M
//
// Unconditionally stable for well-posed spatial operators.
type Implicit struct {
	driver
}

var _ Scheme = (*Implicit)(nil)

func NewImplicit(p Problem, opts Options) (*Implicit, error) {
	s := new(Implicit)
	if err := s.init(p, opts); err != nil {
		return nil, err
	}
	s.recordLag = s.dt
	return s, nil
}

func (s *Implicit) Solve() (*Result, error) { return s.runImplicit(s) }

func (s *Implicit) Reassemble() error {
	lhsFlux, rhsFlux, err := assemble(s.spaceDisc, s.dom, s.data)
	if err != nil {
		return err
	}
	lhsTime, rhsTime, err := assemble(s.timeDisc, s.dom, s.data)
	if err != nil {
		return err
	}

	mp, err := lhsTime.MulVec(s.p0)
	if err != nil {
		return err
	}
	s.lhs, err = spmat.Sum(1, lhsTime, 1, lhsFlux)
	if err != nil {
		return err
	}
	s.rhs, err = sumVecs(mp, rhsFlux, rhsTime)
	return err
}
