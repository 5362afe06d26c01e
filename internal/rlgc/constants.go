package rlgc

import (
	"math"

	"github.com/san-kum/emsolve/internal/solver"
)

// Physical constants in SI units.
const (
	Mu0  = 4 * math.Pi * 1e-7
	Eps0 = solver.Eps0
)

// CLight is the speed of light implied by Mu0 and Eps0.
var CLight = 1 / math.Sqrt(Mu0*Eps0)
