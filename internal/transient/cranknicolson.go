package transient

import (
	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
)

// CrankNicolson is the trapezoidal scheme, averaging the spatial
// operator over two consecutive time levels:
//
//	(M + 1/2 A) p_new = (M - 1/2 A0) p0 + 1/2 (b_A + b_M) + 1/2 (b_A0 + b_M0)
//
// where the 0-suffixed pairs are the previous step's assembled
// contributions. They are primed from the initial state at
// construction and rolled forward after every update.
type CrankNicolson struct {
	driver

	lhsFlux *spmat.Matrix
	rhsFlux la.Vector
	lhsTime *spmat.Matrix
	rhsTime la.Vector

	lhsFlux0 *spmat.Matrix
	rhsFlux0 la.Vector
	lhsTime0 *spmat.Matrix
	rhsTime0 la.Vector
}

var _ Scheme = (*CrankNicolson)(nil)

func NewCrankNicolson(p Problem, opts Options) (*CrankNicolson, error) {
	s := new(CrankNicolson)
	if err := s.init(p, opts); err != nil {
		return nil, err
	}
	s.recordLag = s.dt

	// Prime the previous-step cache from the initial state.
	var err error
	s.lhsFlux, s.rhsFlux, err = assemble(s.spaceDisc, s.dom, s.data)
	if err != nil {
		return nil, err
	}
	s.lhsTime, s.rhsTime, err = assemble(s.timeDisc, s.dom, s.data)
	if err != nil {
		return nil, err
	}
	s.rollCache()
	return s, nil
}

func (s *CrankNicolson) Solve() (*Result, error) { return s.runImplicit(s) }

// Update advances the shared state, then the just-used current-step
// pairs become the previous-step cache for the next iteration.
func (s *CrankNicolson) Update(t float64) {
	s.driver.Update(t)
	s.rollCache()
}

func (s *CrankNicolson) rollCache() {
	s.lhsFlux0 = s.lhsFlux
	s.rhsFlux0 = s.rhsFlux
	s.lhsTime0 = s.lhsTime
	s.rhsTime0 = s.rhsTime
}

func (s *CrankNicolson) Reassemble() error {
	var err error
	s.lhsFlux, s.rhsFlux, err = assemble(s.spaceDisc, s.dom, s.data)
	if err != nil {
		return err
	}
	s.lhsTime, s.rhsTime, err = assemble(s.timeDisc, s.dom, s.data)
	if err != nil {
		return err
	}

	s.lhs, err = spmat.Sum(1, s.lhsTime, 0.5, s.lhsFlux)
	if err != nil {
		return err
	}
	w, err := spmat.Sum(1, s.lhsTime, -0.5, s.lhsFlux0)
	if err != nil {
		return err
	}
	mp, err := w.MulVec(s.p0)
	if err != nil {
		return err
	}
	if err := checkLens(len(mp), s.rhsFlux, s.rhsTime, s.rhsFlux0, s.rhsTime0); err != nil {
		return err
	}
	s.rhs = la.NewVector(len(mp))
	for i := range s.rhs {
		s.rhs[i] = mp[i] + 0.5*(s.rhsFlux[i]+s.rhsTime[i]) + 0.5*(s.rhsFlux0[i]+s.rhsTime0[i])
	}
	return nil
}
