package solver

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/logging"
)

// CapacitanceMatrix holds C[j][i], the charge on conductor Names[j] when
// conductor Names[i] is at 1 V and every other named conductor at 0 V.
type CapacitanceMatrix struct {
	Names  []string    `json:"names"`
	Values [][]float64 `json:"values"`
}

func (m *CapacitanceMatrix) Size() int { return len(m.Names) }

func (m *CapacitanceMatrix) At(j, i int) float64 { return m.Values[j][i] }

// Asymmetry returns the largest |C[i][j]-C[j][i]| relative to the largest
// diagonal magnitude. The matrix itself is left as extracted.
func (m *CapacitanceMatrix) Asymmetry() float64 {
	var diag, worst float64
	for i := range m.Values {
		diag = math.Max(diag, math.Abs(m.Values[i][i]))
		for j := i + 1; j < len(m.Values); j++ {
			worst = math.Max(worst, math.Abs(m.Values[i][j]-m.Values[j][i]))
		}
	}
	if diag == 0 {
		return 0
	}
	return worst / diag
}

// IsSymmetric reports whether Asymmetry is within tol.
func (m *CapacitanceMatrix) IsSymmetric(tol float64) bool {
	return m.Asymmetry() <= tol
}

// ComputeCapacitance builds the capacitance matrix of g.
//
// With a single distinct conductor name the conductor is driven at 1 V
// against the grounded boundary and the result is returned as the 2x2
// signal/ground matrix [[C, -C], [-C, C]] with C = |Q|. With several names
// each one is driven in turn and the excitations are solved in parallel.
func ComputeCapacitance(ctx context.Context, g *geometry.Geometry, p Params) (*CapacitanceMatrix, error) {
	names := g.ConductorNames()
	if len(names) == 0 {
		return nil, ErrNoConductors
	}

	s, err := New(g, p)
	if err != nil {
		return nil, err
	}
	return s.Capacitance(ctx, names)
}

// Capacitance extracts the matrix for the given conductor names.
func (s *Solver) Capacitance(ctx context.Context, names []string) (*CapacitanceMatrix, error) {
	if len(names) == 0 {
		return nil, ErrNoConductors
	}
	log := logging.FromContext(ctx)

	if len(names) == 1 {
		sol, err := s.Solve(ctx, Excitation{names[0]: 1})
		if err != nil {
			return nil, err
		}
		c := math.Abs(ConductorCharge(sol, names[0]))
		log.V(logging.DEBUG).Info("single conductor capacitance", "conductor", names[0], "c", c)
		return &CapacitanceMatrix{
			Names:  []string{names[0], geometry.GroundName},
			Values: [][]float64{{c, -c}, {-c, c}},
		}, nil
	}

	n := len(names)
	values := make([][]float64, n)
	for j := range values {
		values[j] = make([]float64, n)
	}

	eg, ctx := errgroup.WithContext(ctx)
	for i := range names {
		i := i
		eg.Go(func() error {
			exc := make(Excitation, n)
			for _, name := range names {
				exc[name] = 0
			}
			exc[names[i]] = 1

			sol, err := s.Solve(ctx, exc)
			if err != nil {
				return fmt.Errorf("excite %s: %w", names[i], err)
			}
			for j, other := range names {
				values[j][i] = ConductorCharge(sol, other)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	m := &CapacitanceMatrix{Names: append([]string(nil), names...), Values: values}
	log.V(logging.DEBUG).Info("capacitance matrix extracted", "conductors", names, "asymmetry", m.Asymmetry())
	return m, nil
}
