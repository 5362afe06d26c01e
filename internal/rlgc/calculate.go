package rlgc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/solver"
)

var ErrInvalidFrequency = errors.New("rlgc: frequency must be positive")

// DefaultConductors is the conductor pair used when none is given.
var DefaultConductors = []string{"signal", geometry.GroundName}

// Calculate runs the full pipeline for one frequency: capacitance matrix,
// inductance from the air-filled copy, skin-effect resistance and
// dielectric conductance. names selects the conductors that contribute
// to R and names[0] is the signal conductor; nil means DefaultConductors.
func Calculate(ctx context.Context, g *geometry.Geometry, p solver.Params, f float64, names []string) (*Parameters, error) {
	if err := check(g, p, f); err != nil {
		return nil, &StageError{Stage: StageGeometry, Err: err}
	}
	if len(names) == 0 {
		names = DefaultConductors
	}
	log := logging.FromContext(ctx)
	start := time.Now()

	m, err := solver.ComputeCapacitance(ctx, g, p)
	if err != nil {
		return nil, &StageError{Stage: StageSolve, Err: err}
	}
	c := LineCapacitance(m, names[0])

	ind, err := Inductance(ctx, g, p, c, names[0])
	if err != nil {
		return nil, &StageError{Stage: StageSolve, Err: err}
	}

	r := Resistance(g, f, names)

	gc, err := Conductance(ctx, g, p, c, f)
	if err != nil {
		return nil, &StageError{Stage: StageSolve, Err: err}
	}

	params := NewParameters(r, ind.Value, gc, c, f)
	params.InductanceBranch = ind.Branch
	if err := params.check(); err != nil {
		return nil, &StageError{Stage: StageRLGC, Err: err}
	}

	log.V(logging.DEBUG).Info("rlgc computed",
		"frequency", f, "z0", params.Z0, "eps_eff", params.EpsilonEff, "elapsed", time.Since(start))
	return params, nil
}

func check(g *geometry.Geometry, p solver.Params, f float64) error {
	if g == nil {
		return fmt.Errorf("%w: nil geometry", geometry.ErrInvalidDimension)
	}
	if f <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidFrequency, f)
	}
	return p.Validate()
}

var errNotFinite = errors.New("rlgc: non-finite parameter")

func (p *Parameters) check() error {
	for name, v := range map[string]float64{"R": p.R, "L": p.L, "G": p.G, "C": p.C, "Z0": p.Z0} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %g", errNotFinite, name, v)
		}
	}
	return nil
}
