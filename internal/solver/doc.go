// Package solver is the finite-difference electrostatic field solver.
//
// A [Grid] samples a geometry on a uniform node lattice. [Assemble] turns
// the grid and an [Excitation] into a sparse linear system, [Solver.Solve]
// factorizes it and differentiates the potential into a [Solution], and
// [ConductorCharge] integrates the normal displacement around a conductor.
// [ComputeCapacitance] drives every named conductor in turn to produce a
// [CapacitanceMatrix].
//
// Nothing is cached between calls. Two solves with identical inputs give
// bit-identical results, including the parallel multi-conductor path.
package solver
