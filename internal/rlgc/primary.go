package rlgc

import (
	"context"
	"math"

	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/solver"
)

// LineCapacitance reduces a capacitance matrix to a per-unit-length line
// capacitance: C11-C12 for two conductors, C11 otherwise. Conductor 1 is
// signal when the matrix names it and the first listed conductor
// otherwise.
func LineCapacitance(m *solver.CapacitanceMatrix, signal string) float64 {
	s := 0
	for i, n := range m.Names {
		if n == signal {
			s = i
			break
		}
	}
	if m.Size() == 2 {
		return m.At(s, s) - m.At(s, 1-s)
	}
	return m.At(s, s)
}

// SkinDepth is sqrt(2/(omega*mu0*sigma)).
func SkinDepth(f, sigma float64) float64 {
	return math.Sqrt(2 / (2 * math.Pi * f * Mu0 * sigma))
}

// Resistance sums Rs/perimeter over conductor regions whose material is
// named in names, with Rs = 1/(sigma*delta) and the perimeter taken from
// the region's bounding box.
func Resistance(g *geometry.Geometry, f float64, names []string) float64 {
	var r float64
	for _, c := range g.ConductorRegions() {
		if !contains(names, c.Material.Name) {
			continue
		}
		sigma := c.Material.Sigma
		rs := 1 / (sigma * SkinDepth(f, sigma))
		r += rs / (2 * (c.Width() + c.Height()))
	}
	return r
}

// Nominal excitation used for the dielectric loss integral.
var conductanceExcitation = solver.Excitation{"signal": 1, geometry.GroundName: 0}

// Conductance solves once with signal at 1 V and ground at 0 V and returns
// omega*C times the field-energy weighted loss tangent of the dielectric
// nodes. The excitation names are fixed and do not follow the caller's
// conductor pair.
func Conductance(ctx context.Context, g *geometry.Geometry, p solver.Params, c, f float64) (float64, error) {
	s, err := solver.New(g, p)
	if err != nil {
		return 0, err
	}
	sol, err := s.Solve(ctx, conductanceExcitation)
	if err != nil {
		return 0, err
	}
	omega := 2 * math.Pi * f
	return omega * c * LossTangent(sol, f), nil
}

// LossTangent averages sigma/(omega*eps) over non-conductor nodes,
// weighted by the electric energy density. It is 0 when the field carries
// no energy.
func LossTangent(sol *solver.Solution, f float64) float64 {
	gr := sol.Grid
	omega := 2 * math.Pi * f
	var weighted, total float64
	for j := 0; j < gr.NY; j++ {
		for i := 0; i < gr.NX; i++ {
			k := gr.Index(i, j)
			if gr.Conductor[k] {
				continue
			}
			ex, ey := sol.Ex[j][i], sol.Ey[j][i]
			w := 0.5 * Eps0 * gr.EpsilonR[k] * (ex*ex + ey*ey)
			var tan float64
			if eps := Eps0 * gr.EpsilonR[k]; omega*eps > 0 {
				tan = gr.Sigma[k] / (omega * eps)
			}
			weighted += tan * w
			total += w
		}
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
