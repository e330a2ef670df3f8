package transient

import (
	"github.com/mkvern/pdestep/internal/spmat"
)

// Explicit is the forward Euler scheme:
//
//	M p_new = (M - A) p0 + b_A + b_M
//
// The new state depends only on known history, so the stepping loop
// stops one step earlier than the implicit family. Stability is the
// collaborator's responsibility through its choice of step size.
type Explicit struct {
	driver
}

var _ Scheme = (*Explicit)(nil)

func NewExplicit(p Problem, opts Options) (*Explicit, error) {
	s := new(Explicit)
	if err := s.init(p, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Explicit) Solve() (*Result, error) { return s.runExplicit(s) }

func (s *Explicit) Reassemble() error {
	lhsFlux, rhsFlux, err := assemble(s.spaceDisc, s.dom, s.data)
	if err != nil {
		return err
	}
	lhsTime, rhsTime, err := assemble(s.timeDisc, s.dom, s.data)
	if err != nil {
		return err
	}

	diff, err := spmat.Sum(1, lhsTime, -1, lhsFlux)
	if err != nil {
		return err
	}
	mp, err := diff.MulVec(s.p0)
	if err != nil {
		return err
	}
	s.lhs = lhsTime
	s.rhs, err = sumVecs(mp, rhsFlux, rhsTime)
	return err
}
