package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder()

	r.ObserveSolve("band-cholesky", 9604, 20*time.Millisecond)
	r.ObserveSolve("band-cholesky", 9604, 30*time.Millisecond)
	r.ObserveSolve("dense-lu", 9, time.Millisecond)
	r.IncInductanceBranch("air-filled")
	r.IncSweepPoint()

	if got := testutil.ToFloat64(r.solves.WithLabelValues("band-cholesky")); got != 2 {
		t.Errorf("band-cholesky solves = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.unknowns); got != 9 {
		t.Errorf("last unknowns = %v, want 9", got)
	}
	if got := testutil.ToFloat64(r.inductance.WithLabelValues("air-filled")); got != 1 {
		t.Errorf("air-filled branch = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.solveSeconds); got != 1 {
		t.Errorf("histogram series = %d, want 1", got)
	}
}

func TestRecorder_WriteFile(t *testing.T) {
	r := NewRecorder()
	r.IncSweepPoint()

	path := filepath.Join(t.TempDir(), "emsolve.prom")
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "emsolve_sweep_points_total 1") {
		t.Errorf("missing sweep counter in:\n%s", data)
	}
}
