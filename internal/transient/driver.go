package transient

import (
	"fmt"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/linsolve"
	"github.com/mkvern/pdestep/internal/spmat"
)

// timeEps absorbs accumulated step-size rounding when deciding whether
// one more step fits before the end time.
const timeEps = 1e-14

// driver holds the state shared by all schemes and runs the stepping
// loops. Schemes embed it and contribute Reassemble (plus, where the
// update formula needs extra history, an Update override).
type driver struct {
	problem   Problem
	dom       Domain
	data      Store
	dt        float64
	tEnd      float64
	spaceDisc []Term
	timeDisc  []Term

	p  la.Vector // accepted solution of the most recent step
	p0 la.Vector // solution of the step before that

	lhs *spmat.Matrix
	rhs la.Vector

	opts Options
	res  *Result

	// recordLag shifts the time stamp attached to a recorded state.
	// The implicit family records the state accepted one step before
	// the update time; the explicit scheme records at the update time
	// itself.
	recordLag float64
}

func (d *driver) init(p Problem, opts Options) error {
	if p == nil {
		return ErrNilProblem
	}
	dt := p.TimeStep()
	if dt <= 0 {
		return fmt.Errorf("transient: time step must be positive, got %g", dt)
	}
	tEnd := p.EndTime()
	if tEnd <= 0 {
		return fmt.Errorf("transient: end time must be positive, got %g", tEnd)
	}
	ic := p.InitialCondition()
	if len(ic) == 0 {
		return ErrNoInitial
	}
	if len(p.SpaceDisc()) == 0 || len(p.TimeDisc()) == 0 {
		return ErrNoTerms
	}

	d.problem = p
	d.dom = p.Domain()
	d.data = p.Data()
	d.dt = dt
	d.tEnd = tEnd
	d.spaceDisc = p.SpaceDisc()
	d.timeDisc = p.TimeDisc()
	d.p0 = ic.GetCopy()
	d.p = ic.GetCopy()
	d.opts = opts
	d.res = &Result{}
	return nil
}

// Step solves the assembled system and accepts the new state.
// Reassemble must have run first.
func (d *driver) Step() (la.Vector, error) {
	x, err := linsolve.Direct(d.lhs, d.rhs)
	if err != nil {
		return nil, err
	}
	d.p = x
	return x, nil
}

// Update refreshes time-dependent parameters for time t and rolls the
// previous-state window forward. The state accepted by the last Step is
// recorded here, so it is never mutated after recording.
func (d *driver) Update(t float64) {
	d.problem.Update(t)
	d.p0 = d.p
	tRec := t - d.recordLag
	if d.opts.StoreResults {
		d.res.States = append(d.res.States, d.p.GetCopy())
		d.res.Times = append(d.res.Times, tRec)
	}
	if d.opts.Observer != nil {
		d.opts.Observer(tRec, d.p)
	}
}

// runImplicit drives the implicit-family loop from t = dt through
// t = tEnd inclusive, then posts one final update to flush the last
// accepted state into the history.
func (d *driver) runImplicit(s Scheme) (*Result, error) {
	t := d.dt
	for t < d.tEnd+timeEps {
		if d.opts.Verbose {
			io.Pf("solving time step: %v\n", t)
		}
		s.Update(t)
		if err := s.Reassemble(); err != nil {
			return nil, err
		}
		if _, err := s.Step(); err != nil {
			return nil, err
		}
		t += d.dt
	}
	s.Update(t)
	return d.res, nil
}

// runExplicit drives the forward loop from t = 0 while t < tEnd - dt.
// The explicit update only uses already-known history, so the loop
// stops one step earlier than the implicit family and posts no final
// update.
func (d *driver) runExplicit(s Scheme) (*Result, error) {
	t := 0.0
	for t < d.tEnd-d.dt+timeEps {
		if d.opts.Verbose {
			io.Pf("solving time step: %v\n", t)
		}
		s.Update(t)
		if err := s.Reassemble(); err != nil {
			return nil, err
		}
		if _, err := s.Step(); err != nil {
			return nil, err
		}
		t += d.dt
	}
	return d.res, nil
}

// State returns the most recently accepted solution.
func (d *driver) State() la.Vector { return d.p }
