// Package storage persists stepping runs: one directory per run with
// metadata.json and the recorded (state, time) history in states.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/mkvern/pdestep/internal/transient"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Scheme    string    `json:"scheme"`
	Timestamp time.Time `json:"timestamp"`
	Dt        float64   `json:"dt"`
	EndTime   float64   `json:"end_time"`
	DOFs      int       `json:"dofs"`
	Records   int       `json:"records"`
}

// Save writes a run directory and returns its id.
func (s *Store) Save(scheme string, dt, endTime float64, res *transient.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scheme, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	dofs := 0
	if len(res.States) > 0 {
		dofs = len(res.States[0])
	}
	meta := RunMetadata{
		ID:        runID,
		Scheme:    scheme,
		Timestamp: time.Now(),
		Dt:        dt,
		EndTime:   endTime,
		DOFs:      dofs,
		Records:   len(res.States),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(res.States) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 0; i < dofs; i++ {
		header = append(header, fmt.Sprintf("p%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for k, st := range res.States {
		row := make([]string, 0, dofs+1)
		row = append(row, strconv.FormatFloat(res.Times[k], 'g', -1, 64))
		for _, v := range st {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// List returns the metadata of all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.readMeta(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) readMeta(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// Load reads a run's history back.
func (s *Store) Load(runID string) (RunMetadata, *transient.Result, error) {
	meta, err := s.readMeta(runID)
	if err != nil {
		return meta, nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return meta, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return meta, nil, err
	}

	res := &transient.Result{}
	if len(rows) < 2 {
		return meta, res, nil
	}
	for _, row := range rows[1:] {
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return meta, nil, fmt.Errorf("storage: bad time in %s: %w", runID, err)
		}
		st := make([]float64, len(row)-1)
		for i, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return meta, nil, fmt.Errorf("storage: bad state in %s: %w", runID, err)
			}
			st[i] = v
		}
		res.Times = append(res.Times, t)
		res.States = append(res.States, st)
	}
	return meta, res, nil
}
