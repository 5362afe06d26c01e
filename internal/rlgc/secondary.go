package rlgc

import (
	"math"
	"math/cmplx"
)

// Secondary holds the quantities derived from R, L, G and C at one
// frequency.
type Secondary struct {
	Z0         float64
	Gamma      complex128
	Alpha      float64
	Beta       float64
	VPhase     float64
	EpsilonEff float64
}

// SecondaryParameters evaluates Z = R+jwL and Y = G+jwC and derives
// Z0 = Re sqrt(Z/Y) and gamma = sqrt(ZY).
func SecondaryParameters(r, l, g, c, f float64) Secondary {
	omega := 2 * math.Pi * f
	z := complex(r, omega*l)
	y := complex(g, omega*c)

	gamma := cmplx.Sqrt(z * y)
	s := Secondary{
		Z0:         real(cmplx.Sqrt(z / y)),
		Gamma:      gamma,
		Alpha:      real(gamma),
		Beta:       imag(gamma),
		EpsilonEff: 1,
	}
	if s.Beta != 0 {
		s.VPhase = omega / s.Beta
	}
	if k0 := omega / CLight; k0 != 0 {
		s.EpsilonEff = (s.Beta / k0) * (s.Beta / k0)
	}
	return s
}
