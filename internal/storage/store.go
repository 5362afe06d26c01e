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

	"github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/config"
	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/solver"
	"github.com/san-kum/emsolve/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	sweepFile    = "sweep.csv"
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

// Run is one analysis to persist. Sweep is nil for single-frequency runs.
type Run struct {
	Kind       string
	Geometry   config.GeometryConfig
	Solver     solver.Params
	Conductors []string
	Result     *rlgc.Parameters
	Comparison *analytic.Comparison
	Metrics    map[string]float64
	Sweep      []sweep.Point
}

type RunMetadata struct {
	ID          string                `json:"id"`
	Kind        string                `json:"kind"`
	Timestamp   time.Time             `json:"timestamp"`
	Geometry    config.GeometryConfig `json:"geometry"`
	Solver      solver.Params         `json:"solver"`
	Conductors  []string              `json:"conductors"`
	Result      *rlgc.Parameters      `json:"result,omitempty"`
	Comparison  *analytic.Comparison  `json:"analytical_comparison,omitempty"`
	Metrics     map[string]float64    `json:"metrics,omitempty"`
	SweepPoints int                   `json:"sweep_points,omitempty"`
}

// Save writes metadata.json and, for sweeps, sweep.csv into a new run
// directory and returns the run ID.
func (s *Store) Save(run Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Kind, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Kind:        run.Kind,
		Timestamp:   now,
		Geometry:    run.Geometry,
		Solver:      run.Solver,
		Conductors:  run.Conductors,
		Result:      run.Result,
		Comparison:  run.Comparison,
		Metrics:     run.Metrics,
		SweepPoints: len(run.Sweep),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if len(run.Sweep) == 0 {
		return runID, nil
	}
	if err := writeSweep(filepath.Join(runDir, sweepFile), run.Sweep); err != nil {
		return "", err
	}
	return runID, nil
}

var sweepHeader = []string{
	"frequency_hz", "R_ohm_per_m", "L_h_per_m", "G_s_per_m", "C_f_per_m",
	"Z0_ohm", "alpha_np_per_m", "beta_rad_per_m", "v_phase_m_per_s", "epsilon_eff",
}

func writeSweep(path string, points []sweep.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sweepHeader); err != nil {
		return err
	}
	for _, pt := range points {
		p := pt.Params
		vals := []float64{p.Frequency, p.R, p.L, p.G, p.C, p.Z0, p.Alpha, p.Beta, p.VPhase, p.EpsilonEff}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Directories without
// valid metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSweep reads the sweep table of a run. Rows that do not parse are
// skipped.
func (s *Store) LoadSweep(runID string) ([]*rlgc.Parameters, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, sweepFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []*rlgc.Parameters{}, nil
	}

	out := make([]*rlgc.Parameters, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(sweepHeader) {
			continue
		}
		vals := make([]float64, len(record))
		ok := true
		for i, field := range record {
			if vals[i], err = strconv.ParseFloat(field, 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		p := &rlgc.Parameters{
			Frequency: vals[0], R: vals[1], L: vals[2], G: vals[3], C: vals[4],
			Z0: vals[5], Alpha: vals[6], Beta: vals[7], VPhase: vals[8], EpsilonEff: vals[9],
		}
		p.Gamma = complex(p.Alpha, p.Beta)
		out = append(out, p)
	}
	return out, nil
}
