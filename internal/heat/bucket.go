package heat

import (
	"fmt"

	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
	"github.com/mkvern/pdestep/internal/transient"
)

// Bucket is a two-grid aggregate: grids A and B joined end to end
// (last cell of A against first cell of B) through an interface with
// its own transmissibility. Each grid keeps its own data store, so the
// aggregate terms never consult an external one.
type Bucket struct {
	A, B         *Grid
	DataA, DataB transient.Store
	// Coupling is the interface transmissibility between the two
	// touching cells.
	Coupling float64
}

func NewBucket(a, b *Grid, coupling float64) *Bucket {
	return &Bucket{
		A:        a,
		B:        b,
		DataA:    transient.Store{},
		DataB:    transient.Store{},
		Coupling: coupling,
	}
}

func (b *Bucket) NumDOF() int { return b.A.Cells + b.B.Cells }

func asBucket(g transient.Grid) (*Bucket, error) {
	bk, ok := g.(*Bucket)
	if !ok {
		return nil, fmt.Errorf("heat: aggregate term needs a *heat.Bucket, got %T", g)
	}
	return bk, nil
}

// CoupledMassTerm is the block-diagonal accumulation operator of a
// bucket.
type CoupledMassTerm struct{}

func (CoupledMassTerm) MatrixRHS(g transient.Grid, _ transient.Store) (*spmat.Matrix, la.Vector, error) {
	bk, err := asBucket(g)
	if err != nil {
		return nil, nil, err
	}
	n := bk.NumDOF()
	a := spmat.New(n, n)
	if err := massInto(a, bk.A, bk.DataA, 0); err != nil {
		return nil, nil, err
	}
	if err := massInto(a, bk.B, bk.DataB, bk.A.Cells); err != nil {
		return nil, nil, err
	}
	return a, la.NewVector(n), nil
}

// CoupledFluxTerm assembles both grid blocks plus the interface
// exchange. Dirichlet conditions sit only on the outer ends; the inner
// ends are closed by the coupling flux.
type CoupledFluxTerm struct{}

func (CoupledFluxTerm) MatrixRHS(g transient.Grid, _ transient.Store) (*spmat.Matrix, la.Vector, error) {
	bk, err := asBucket(g)
	if err != nil {
		return nil, nil, err
	}
	n := bk.NumDOF()
	a := spmat.New(n, n)
	rhs := la.NewVector(n)
	if err := fluxInto(a, rhs, bk.A, bk.DataA, 0, true, false); err != nil {
		return nil, nil, err
	}
	if err := fluxInto(a, rhs, bk.B, bk.DataB, bk.A.Cells, false, true); err != nil {
		return nil, nil, err
	}
	ia := bk.A.Cells - 1 // interface cell in A
	ib := bk.A.Cells     // interface cell in B
	c := bk.Coupling
	a.Put(ia, ia, c)
	a.Put(ib, ib, c)
	a.Put(ia, ib, -c)
	a.Put(ib, ia, -c)
	return a, rhs, nil
}

// BucketProblem is a diffusion problem over a two-grid aggregate.
type BucketProblem struct {
	bucket  *Bucket
	data    transient.Store
	dt      float64
	endTime float64
	initial la.Vector
	bcLeft  BoundaryFunc // outer end of A
	bcRight BoundaryFunc // outer end of B
}

// NewBucketProblem builds an aggregate problem; each grid gets the
// given conductivity and porosity in its own store.
func NewBucketProblem(bk *Bucket, conductivity, porosity, dt, endTime float64) *BucketProblem {
	for _, data := range []transient.Store{bk.DataA, bk.DataB} {
		data[KeyConductivity] = conductivity
		data[KeyPorosity] = porosity
		data[KeyTimeStep] = dt
		data[KeyBCLeft] = 0.0
		data[KeyBCRight] = 0.0
	}
	return &BucketProblem{
		bucket:  bk,
		data:    transient.Store{},
		dt:      dt,
		endTime: endTime,
		initial: la.NewVector(bk.NumDOF()),
		bcLeft:  Constant(0),
		bcRight: Constant(0),
	}
}

// SetInitial fills the initial state with the constant v.
func (p *BucketProblem) SetInitial(v float64) {
	for i := range p.initial {
		p.initial[i] = v
	}
}

// SetBoundary installs Dirichlet values on the two outer ends.
func (p *BucketProblem) SetBoundary(left, right BoundaryFunc) {
	p.bcLeft, p.bcRight = left, right
	p.bucket.DataA[KeyBCLeft] = left(0)
	p.bucket.DataB[KeyBCRight] = right(0)
}

func (p *BucketProblem) Domain() transient.Domain {
	return transient.Domain{Kind: transient.Aggregate, Grid: p.bucket}
}

func (p *BucketProblem) Data() transient.Store       { return p.data }
func (p *BucketProblem) SpaceDisc() []transient.Term { return transient.Terms(CoupledFluxTerm{}) }
func (p *BucketProblem) TimeDisc() []transient.Term  { return transient.Terms(CoupledMassTerm{}) }
func (p *BucketProblem) TimeStep() float64           { return p.dt }
func (p *BucketProblem) EndTime() float64            { return p.endTime }
func (p *BucketProblem) InitialCondition() la.Vector { return p.initial }

func (p *BucketProblem) Update(t float64) {
	p.bucket.DataA[KeyBCLeft] = p.bcLeft(t)
	p.bucket.DataB[KeyBCRight] = p.bcRight(t)
}
