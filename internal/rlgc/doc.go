// Package rlgc derives per-unit-length transmission line parameters from
// electrostatic field solutions.
//
// C comes from the capacitance matrix. L follows from the TEM identity
// L*C_air = mu0*eps0, where C_air is the capacitance of the same
// conductors in air. R is a skin-effect estimate over the conductor
// perimeters and G weights each dielectric's loss tangent by field energy.
//
//	p, err := rlgc.Calculate(ctx, g, solver.DefaultParams(), 1e9, nil)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Z0 = %.1f ohm, eps_eff = %.2f\n", p.Z0, p.EpsilonEff)
package rlgc
