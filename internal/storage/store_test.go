package storage

import (
	"testing"

	"github.com/cpmech/gosl/la"

	"github.com/mkvern/pdestep/internal/transient"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	res := &transient.Result{
		States: []la.Vector{{1, 2}, {3, 4}, {5, 6}},
		Times:  []float64{0, 0.5, 1.0},
	}
	id, err := s.Save("implicit", 0.5, 1.0, res)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, got, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Scheme != "implicit" || meta.Records != 3 || meta.DOFs != 2 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if len(got.States) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got.States))
	}
	for k := range res.States {
		if got.Times[k] != res.Times[k] {
			t.Errorf("time %d: got %v, want %v", k, got.Times[k], res.Times[k])
		}
		for i := range res.States[k] {
			if got.States[k][i] != res.States[k][i] {
				t.Errorf("state %d[%d]: got %v, want %v", k, i, got.States[k][i], res.States[k][i])
			}
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	empty := &transient.Result{}
	if _, err := s.Save("implicit", 0.1, 1.0, empty); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("bdf2", 0.1, 1.0, empty); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("runs not sorted newest first")
	}
}

func TestListMissingDir(t *testing.T) {
	s := New("/nonexistent/pdestep-test")
	runs, err := s.List()
	if err != nil || runs != nil {
		t.Errorf("expected empty result for missing dir, got %v, %v", runs, err)
	}
}
