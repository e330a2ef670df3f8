// Package transient is a time-integration engine for evolution problems
// discretized in space by an external collaborator. Each step it sums
// the collaborator's discretization terms into one sparse linear system
// and advances the state through a direct solve. Four schemes are
// provided: backward Euler, BDF2, forward Euler and Crank-Nicolson.
package transient

import (
	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
)

// Store is the collaborator's mutable container of boundary conditions,
// material parameters and auxiliary fields. The engine never interprets
// its contents; it only forwards the store to terms and lets the
// problem's Update hook mutate it between steps.
type Store map[string]any

// Grid is an opaque handle to the spatial domain a term assembles over.
// It may be a single mesh or an aggregate of coupled meshes; the engine
// only needs the total number of degrees of freedom.
type Grid interface {
	NumDOF() int
}

// DomainKind tags the two spatial-domain shapes a problem may expose.
type DomainKind int

const (
	// SingleGrid marks a plain mesh whose parameters live in the
	// problem's data store.
	SingleGrid DomainKind = iota
	// Aggregate marks a mixed-dimensional collection of coupled
	// meshes that carries its per-grid data internally.
	Aggregate
)

// Domain pairs a grid handle with its kind. The assembly combinator
// dispatches on the tag: single-grid terms receive the external data
// store, aggregate terms receive nil and use the data the aggregate
// holds itself.
type Domain struct {
	Kind DomainKind
	Grid Grid
}

// Term assembles the (matrix, rhs) contribution of one discretization
// operator for the current state. For aggregate domains data is nil.
// Implementations must not retain or mutate the arguments.
type Term interface {
	MatrixRHS(g Grid, data Store) (*spmat.Matrix, la.Vector, error)
}

// Terms wraps one or more terms into the ordered sequence the engine
// works with everywhere.
func Terms(ts ...Term) []Term { return ts }

// Problem describes a transient problem to the engine. Update is called
// once per step, before reassembly, so time-dependent parameters
// (boundary values, sources) can be refreshed in the data store.
type Problem interface {
	Domain() Domain
	Data() Store
	SpaceDisc() []Term
	TimeDisc() []Term
	TimeStep() float64
	EndTime() float64
	InitialCondition() la.Vector
	Update(t float64)
}

// Options configures a scheme instance. The zero value keeps the
// defaults: no history, no progress output.
type Options struct {
	// StoreResults appends a (state, time) snapshot to the result
	// history at every accepted step.
	StoreResults bool
	// Verbose prints per-step progress. It has no effect on the
	// computed solution.
	Verbose bool
	// Observer, when set, is invoked with every accepted (time,
	// state) pair, including the initial condition.
	Observer func(t float64, state la.Vector)
}

// Result is the append-only stepping history. States and Times grow in
// lockstep and are never rewritten.
type Result struct {
	States []la.Vector
	Times  []float64
}

// Scheme is the common contract of the four time-integration schemes.
// Solve runs the full stepping loop; Step, Update and Reassemble expose
// the per-step phases for callers that drive stepping themselves; State
// is the most recently accepted solution. A scheme instance is
// single-use and must not be shared across goroutines.
type Scheme interface {
	Solve() (*Result, error)
	Step() (la.Vector, error)
	Update(t float64)
	Reassemble() error
	State() la.Vector
}
