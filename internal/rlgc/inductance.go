package rlgc

import (
	"context"
	"math"

	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/metrics"
	"github.com/san-kum/emsolve/internal/solver"
)

// Branch names the step of the inductance chain that produced L.
type Branch string

const (
	BranchAirFilled   Branch = "air-filled"
	BranchAnalytic    Branch = "analytic"
	BranchCapacitance Branch = "capacitance"
	BranchClamped     Branch = "sanity-clamp"
)

const (
	// MinCapacitance replaces a divisor whose magnitude is below
	// capacitanceFloor.
	MinCapacitance   = 1e-12
	capacitanceFloor = 1e-20

	// LMin and LMax bound inductances accepted without the clamp.
	LMin = 1e-12
	LMax = 1e-3
)

type InductanceEstimate struct {
	Value  float64
	CAir   float64
	Branch Branch
}

// Inductance derives L from the TEM relation L*C_air = mu0*eps0, where
// C_air belongs to a copy of g with every dielectric replaced by air.
//
// If the air-filled solve fails, C_air comes from a closed-form estimate
// of the first conductor and, without conductors, from c itself. A result
// outside [LMin, LMax] is replaced by mu0*H/w of the first conductor.
func Inductance(ctx context.Context, g *geometry.Geometry, p solver.Params, c float64, signal string) (InductanceEstimate, error) {
	log := logging.FromContext(ctx)

	est, err := airFilled(ctx, g, p, signal)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return InductanceEstimate{}, ctxErr
		}
		log.Info("air-filled solve failed, using fallback", "error", err.Error())
		var ok bool
		if est, ok = analytic(g); !ok {
			est = capacitance(c)
		}
	}

	est.Value = temInductance(est.CAir)
	if l, ok := sanityClamp(g, est.Value); ok {
		log.V(logging.DEBUG).Info("inductance clamped", "computed", est.Value, "replacement", l)
		est.Value = l
		est.Branch = BranchClamped
	}
	metrics.IncInductanceBranch(string(est.Branch))
	log.V(logging.DEBUG).Info("inductance", "branch", est.Branch, "c_air", est.CAir, "l", est.Value)
	return est, nil
}

func airFilled(ctx context.Context, g *geometry.Geometry, p solver.Params, signal string) (InductanceEstimate, error) {
	m, err := solver.ComputeCapacitance(ctx, g.AirFilled(), p)
	if err != nil {
		return InductanceEstimate{}, err
	}
	return InductanceEstimate{CAir: LineCapacitance(m, signal), Branch: BranchAirFilled}, nil
}

// analytic approximates the air-filled capacitance from the first
// conductor width w and the geometry height H: eps0*w/H when w/H > 1,
// eps0*pi/ln(4H/w) otherwise.
func analytic(g *geometry.Geometry) (InductanceEstimate, bool) {
	cs := g.ConductorRegions()
	if len(cs) == 0 {
		return InductanceEstimate{}, false
	}
	w := cs[0].Width()
	cAir := Eps0 * math.Pi / math.Log(4*g.Height/w)
	if w/g.Height > 1 {
		cAir = Eps0 * w / g.Height
	}
	return InductanceEstimate{CAir: cAir, Branch: BranchAnalytic}, true
}

func capacitance(c float64) InductanceEstimate {
	return InductanceEstimate{CAir: c, Branch: BranchCapacitance}
}

func temInductance(cAir float64) float64 {
	if math.Abs(cAir) < capacitanceFloor {
		cAir = MinCapacitance
	}
	return Mu0 * Eps0 / cAir
}

// sanityClamp returns a geometric estimate and true when l is outside
// [LMin, LMax] and a conductor exists to size it from.
func sanityClamp(g *geometry.Geometry, l float64) (float64, bool) {
	if l >= LMin && l <= LMax {
		return l, false
	}
	cs := g.ConductorRegions()
	if len(cs) == 0 {
		return l, false
	}
	return Mu0 * g.Height / cs[0].Width(), true
}
