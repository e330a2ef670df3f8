package linsolve

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/spmat"
)

func TestDirectSmallSystem(t *testing.T) {
	// [2 1; 1 3] x = [3; 5]  ->  x = [0.8; 1.4]
	a := spmat.New(2, 2)
	a.Put(0, 0, 2)
	a.Put(0, 1, 1)
	a.Put(1, 0, 1)
	a.Put(1, 1, 3)

	x, err := Direct(a, la.Vector{3, 5})
	if err != nil {
		t.Fatalf("Direct: %v", err)
	}
	chk.Array(t, "x", 1e-14, x, []float64{0.8, 1.4})
}

func TestDirectShapeErrors(t *testing.T) {
	rect := spmat.New(2, 3)
	if _, err := Direct(rect, la.Vector{1, 2}); err == nil {
		t.Error("expected error for non-square matrix")
	}

	sq := spmat.New(2, 2)
	sq.Put(0, 0, 1)
	sq.Put(1, 1, 1)
	if _, err := Direct(sq, la.Vector{1}); err == nil {
		t.Error("expected error for rhs length mismatch")
	}
}

func TestDirectSingular(t *testing.T) {
	// Second row is empty: structurally singular.
	a := spmat.New(2, 2)
	a.Put(0, 0, 1)
	if _, err := Direct(a, la.Vector{1, 1}); err == nil {
		t.Error("expected error for singular system")
	}
}
