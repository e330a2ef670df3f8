package transient

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
)

// diagTerm assembles diag(v) with rhs filled with r.
type diagTerm struct {
	v, r float64
	n    int
}

func (d diagTerm) MatrixRHS(g Grid, data Store) (*spmat.Matrix, la.Vector, error) {
	a := spmat.New(d.n, d.n)
	for i := 0; i < d.n; i++ {
		a.Put(i, i, d.v)
	}
	rhs := la.NewVector(d.n)
	for i := range rhs {
		rhs[i] = d.r
	}
	return a, rhs, nil
}

type wantsData struct {
	t    *testing.T
	want bool
	diagTerm
}

func (w wantsData) MatrixRHS(g Grid, data Store) (*spmat.Matrix, la.Vector, error) {
	if w.want && data == nil {
		w.t.Error("single-grid term received nil data store")
	}
	if !w.want && data != nil {
		w.t.Error("aggregate term received the external data store")
	}
	return w.diagTerm.MatrixRHS(g, data)
}

type failingTerm struct{ err error }

func (f failingTerm) MatrixRHS(g Grid, data Store) (*spmat.Matrix, la.Vector, error) {
	return nil, nil, f.err
}

func TestAssembleSumsTerms(t *testing.T) {
	dom := Domain{Kind: SingleGrid, Grid: dofGrid{2}}
	terms := Terms(diagTerm{v: 1, r: 2, n: 2}, diagTerm{v: 3, r: 4, n: 2}, diagTerm{v: 0.5, r: 0, n: 2})

	lhs, rhs, err := assemble(terms, dom, Store{})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	y, err := lhs.MulVec(la.Vector{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	chk.Array(t, "lhs", 1e-15, y, []float64{4.5, 4.5})
	chk.Array(t, "rhs", 1e-15, rhs, []float64{6, 6})
}

func TestAssembleDataDispatch(t *testing.T) {
	single := Domain{Kind: SingleGrid, Grid: dofGrid{1}}
	if _, _, err := assemble(Terms(wantsData{t, true, diagTerm{1, 0, 1}}), single, Store{}); err != nil {
		t.Fatal(err)
	}

	agg := Domain{Kind: Aggregate, Grid: dofGrid{1}}
	if _, _, err := assemble(Terms(wantsData{t, false, diagTerm{1, 0, 1}}), agg, Store{}); err != nil {
		t.Fatal(err)
	}
}

func TestAssembleEmptyAndErrors(t *testing.T) {
	dom := Domain{Kind: SingleGrid, Grid: dofGrid{1}}
	if _, _, err := assemble(nil, dom, Store{}); !errors.Is(err, ErrNoTerms) {
		t.Errorf("expected ErrNoTerms, got %v", err)
	}

	boom := errors.New("no discretization matrix for parameter field")
	if _, _, err := assemble(Terms(failingTerm{boom}), dom, Store{}); !errors.Is(err, boom) {
		t.Errorf("term error not propagated unchanged: %v", err)
	}

	mixed := Terms(diagTerm{1, 0, 2}, diagTerm{1, 0, 3})
	if _, _, err := assemble(mixed, dom, Store{}); !errors.Is(err, spmat.ErrDims) {
		t.Errorf("expected ErrDims for mismatched terms, got %v", err)
	}
}
