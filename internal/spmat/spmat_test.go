package spmat

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

func TestPutAccumulates(t *testing.T) {
	a := New(2, 2)
	a.Put(0, 0, 1.5)
	a.Put(0, 0, 2.5)
	a.Put(1, 1, 1.0)

	y, err := a.MulVec(la.Vector{1, 1})
	if err != nil {
		t.Fatalf("MulVec: %v", err)
	}
	chk.Array(t, "y", 1e-15, y, []float64{4, 1})
}

func TestAddScaled(t *testing.T) {
	a := New(2, 2)
	a.Put(0, 1, 2)
	b := New(2, 2)
	b.Put(0, 1, 3)
	b.Put(1, 0, 6)

	if err := a.AddScaled(0.5, b); err != nil {
		t.Fatalf("AddScaled: %v", err)
	}
	y, err := a.MulVec(la.Vector{1, 1})
	if err != nil {
		t.Fatalf("MulVec: %v", err)
	}
	chk.Array(t, "y", 1e-15, y, []float64{3.5, 3})
}

func TestSumLeavesInputsAlone(t *testing.T) {
	a := New(1, 1)
	a.Put(0, 0, 1)
	b := New(1, 1)
	b.Put(0, 0, 10)

	c, err := Sum(2, a, 3, b)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	cy, _ := c.MulVec(la.Vector{1})
	ay, _ := a.MulVec(la.Vector{1})
	by, _ := b.MulVec(la.Vector{1})
	chk.Float64(t, "c", 1e-15, cy[0], 32)
	chk.Float64(t, "a unchanged", 1e-15, ay[0], 1)
	chk.Float64(t, "b unchanged", 1e-15, by[0], 10)
}

func TestDimensionMismatch(t *testing.T) {
	a := New(2, 2)
	b := New(3, 3)
	if err := a.Add(b); !errors.Is(err, ErrDims) {
		t.Errorf("Add: expected ErrDims, got %v", err)
	}
	if _, err := a.MulVec(la.Vector{1, 2, 3}); !errors.Is(err, ErrDims) {
		t.Errorf("MulVec: expected ErrDims, got %v", err)
	}
}

func TestTripletRoundTrip(t *testing.T) {
	a := New(2, 3)
	a.Put(0, 0, 1)
	a.Put(1, 2, -4)
	a.Put(1, 2, 1)

	trip := a.Triplet()
	d := trip.ToDense()
	chk.Float64(t, "d00", 1e-15, d.Get(0, 0), 1)
	chk.Float64(t, "d12", 1e-15, d.Get(1, 2), -3)
	chk.Float64(t, "d01", 1e-15, d.Get(0, 1), 0)
}
