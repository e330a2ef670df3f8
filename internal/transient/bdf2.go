package transient

import (
	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
)

// BDF2 is the second-order backward-difference scheme. Past the first
// step it solves
//
//	(M + 2/3 A) p_new = 4/3 M p0 - 1/3 M p1 + 2/3 b_A + b_M
//
// where p1 is the solution two steps back. The very first step has no
// such history and falls back to the backward Euler formula.
type BDF2 struct {
	driver
	p1      la.Vector
	updates int // completed Update calls; <= 1 means bootstrap
}

var _ Scheme = (*BDF2)(nil)

func NewBDF2(p Problem, opts Options) (*BDF2, error) {
	s := new(BDF2)
	if err := s.init(p, opts); err != nil {
		return nil, err
	}
	s.recordLag = s.dt
	s.p1 = s.p0
	return s, nil
}

func (s *BDF2) Solve() (*Result, error) { return s.runImplicit(s) }

// Update rolls the two-step history window before the one-step window
// advances, then counts the completed update. The bootstrap/steady
// decision is taken from this counter, not from the clock.
func (s *BDF2) Update(t float64) {
	s.p1 = s.p0
	s.driver.Update(t)
	s.updates++
}

func (s *BDF2) bootstrap() bool { return s.updates <= 1 }

func (s *BDF2) Reassemble() error {
	lhsFlux, rhsFlux, err := assemble(s.spaceDisc, s.dom, s.data)
	if err != nil {
		return err
	}
	lhsTime, rhsTime, err := assemble(s.timeDisc, s.dom, s.data)
	if err != nil {
		return err
	}

	if s.bootstrap() {
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

	mp0, err := lhsTime.MulVec(s.p0)
	if err != nil {
		return err
	}
	mp1, err := lhsTime.MulVec(s.p1)
	if err != nil {
		return err
	}
	s.lhs, err = spmat.Sum(1, lhsTime, 2.0/3.0, lhsFlux)
	if err != nil {
		return err
	}
	if err := checkLens(len(mp0), rhsFlux, rhsTime); err != nil {
		return err
	}
	s.rhs = la.NewVector(len(mp0))
	for i := range s.rhs {
		s.rhs[i] = 4.0/3.0*mp0[i] - 1.0/3.0*mp1[i] + 2.0/3.0*rhsFlux[i] + rhsTime[i]
	}
	return nil
}
