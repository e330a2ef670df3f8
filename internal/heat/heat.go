// Package heat provides a built-in spatial discretization for the
// transient engine: cell-centered finite volumes for the 1D diffusion
// equation phi dp/dt = div(k grad p) + q with Dirichlet ends. It is the
// stock collaborator used by the CLI and serves as the reference
// implementation of the Problem and Term contracts.
package heat

import (
	"fmt"

	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
	"github.com/mkvern/pdestep/internal/transient"
)

// Data store keys recognized by the terms.
const (
	KeyConductivity = "conductivity"
	KeyPorosity     = "porosity"
	KeyTimeStep     = "time_step"
	KeyBCLeft       = "bc_left"
	KeyBCRight      = "bc_right"
	KeySource       = "source"
)

// Grid is a uniform 1D cell grid.
type Grid struct {
	Cells  int
	Length float64
}

func NewGrid(cells int, length float64) *Grid {
	return &Grid{Cells: cells, Length: length}
}

func (g *Grid) NumDOF() int { return g.Cells }

// Dx returns the cell width.
func (g *Grid) Dx() float64 { return g.Length / float64(g.Cells) }

func fparam(data transient.Store, key string) (float64, error) {
	v, ok := data[key]
	if !ok {
		return 0, fmt.Errorf("heat: parameter %q missing from data store", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("heat: parameter %q has type %T, want float64", key, v)
	}
	return f, nil
}

// massInto accumulates the accumulation (mass) block of g into a at row
// and column offset off.
func massInto(a *spmat.Matrix, g *Grid, data transient.Store, off int) error {
	phi, err := fparam(data, KeyPorosity)
	if err != nil {
		return err
	}
	dt, err := fparam(data, KeyTimeStep)
	if err != nil {
		return err
	}
	c := phi * g.Dx() / dt
	for i := 0; i < g.Cells; i++ {
		a.Put(off+i, off+i, c)
	}
	return nil
}

// fluxInto accumulates the two-point-flux stiffness block of g into
// (a, rhs) at offset off. dirLeft/dirRight select which ends carry a
// Dirichlet condition; an end without one is left for an interface
// coupling to close.
func fluxInto(a *spmat.Matrix, rhs la.Vector, g *Grid, data transient.Store, off int, dirLeft, dirRight bool) error {
	k, err := fparam(data, KeyConductivity)
	if err != nil {
		return err
	}
	dx := g.Dx()
	trans := k / dx
	for i := 1; i < g.Cells; i++ {
		a.Put(off+i-1, off+i-1, trans)
		a.Put(off+i, off+i, trans)
		a.Put(off+i-1, off+i, -trans)
		a.Put(off+i, off+i-1, -trans)
	}
	// Dirichlet ends via half-cell transmissibility.
	bTrans := 2 * k / dx
	if dirLeft {
		bc, err := fparam(data, KeyBCLeft)
		if err != nil {
			return err
		}
		a.Put(off, off, bTrans)
		rhs[off] += bTrans * bc
	}
	if dirRight {
		bc, err := fparam(data, KeyBCRight)
		if err != nil {
			return err
		}
		last := off + g.Cells - 1
		a.Put(last, last, bTrans)
		rhs[last] += bTrans * bc
	}
	if q, ok := data[KeySource].(la.Vector); ok {
		if len(q) != g.Cells {
			return fmt.Errorf("heat: source has %d entries for %d cells", len(q), g.Cells)
		}
		for i := range q {
			rhs[off+i] += q[i] * dx
		}
	}
	return nil
}

// MassTerm is the time/accumulation discretization of a single grid.
type MassTerm struct{}

func (MassTerm) MatrixRHS(g transient.Grid, data transient.Store) (*spmat.Matrix, la.Vector, error) {
	gr, ok := g.(*Grid)
	if !ok {
		return nil, nil, fmt.Errorf("heat: MassTerm needs a *heat.Grid, got %T", g)
	}
	a := spmat.New(gr.Cells, gr.Cells)
	if err := massInto(a, gr, data, 0); err != nil {
		return nil, nil, err
	}
	return a, la.NewVector(gr.Cells), nil
}

// FluxTerm is the spatial (diffusive flux) discretization of a single
// grid with Dirichlet conditions at both ends.
type FluxTerm struct{}

func (FluxTerm) MatrixRHS(g transient.Grid, data transient.Store) (*spmat.Matrix, la.Vector, error) {
	gr, ok := g.(*Grid)
	if !ok {
		return nil, nil, fmt.Errorf("heat: FluxTerm needs a *heat.Grid, got %T", g)
	}
	a := spmat.New(gr.Cells, gr.Cells)
	rhs := la.NewVector(gr.Cells)
	if err := fluxInto(a, rhs, gr, data, 0, true, true); err != nil {
		return nil, nil, err
	}
	return a, rhs, nil
}

// BoundaryFunc gives the Dirichlet value at time t.
type BoundaryFunc func(t float64) float64

// Constant returns a boundary function fixed at v.
func Constant(v float64) BoundaryFunc {
	return func(float64) float64 { return v }
}

// Problem is a single-grid diffusion problem.
type Problem struct {
	grid    *Grid
	data    transient.Store
	dt      float64
	endTime float64
	initial la.Vector
	bcLeft  BoundaryFunc
	bcRight BoundaryFunc
}

// NewProblem builds a diffusion problem with zero initial state and
// homogeneous boundary values.
func NewProblem(g *Grid, conductivity, porosity, dt, endTime float64) *Problem {
	return &Problem{
		grid: g,
		data: transient.Store{
			KeyConductivity: conductivity,
			KeyPorosity:     porosity,
			KeyTimeStep:     dt,
			KeyBCLeft:       0.0,
			KeyBCRight:      0.0,
		},
		dt:      dt,
		endTime: endTime,
		initial: la.NewVector(g.Cells),
		bcLeft:  Constant(0),
		bcRight: Constant(0),
	}
}

// SetInitial fills the initial state with the constant v.
func (p *Problem) SetInitial(v float64) {
	for i := range p.initial {
		p.initial[i] = v
	}
}

// SetInitialVector replaces the initial state.
func (p *Problem) SetInitialVector(v la.Vector) { p.initial = v.GetCopy() }

// SetBoundary installs time-dependent Dirichlet values for both ends.
func (p *Problem) SetBoundary(left, right BoundaryFunc) {
	p.bcLeft, p.bcRight = left, right
	p.data[KeyBCLeft] = left(0)
	p.data[KeyBCRight] = right(0)
}

// SetSource installs a per-cell source density.
func (p *Problem) SetSource(q la.Vector) { p.data[KeySource] = q.GetCopy() }

func (p *Problem) Domain() transient.Domain {
	return transient.Domain{Kind: transient.SingleGrid, Grid: p.grid}
}

func (p *Problem) Data() transient.Store       { return p.data }
func (p *Problem) SpaceDisc() []transient.Term { return transient.Terms(FluxTerm{}) }
func (p *Problem) TimeDisc() []transient.Term  { return transient.Terms(MassTerm{}) }
func (p *Problem) TimeStep() float64           { return p.dt }
func (p *Problem) EndTime() float64            { return p.endTime }
func (p *Problem) InitialCondition() la.Vector { return p.initial }

// Update refreshes the time-dependent boundary values.
func (p *Problem) Update(t float64) {
	p.data[KeyBCLeft] = p.bcLeft(t)
	p.data[KeyBCRight] = p.bcRight(t)
}
