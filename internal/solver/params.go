package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates solver parameters that cannot describe a grid.
	ErrInvalidParams = errors.New("solver: invalid parameters")

	// ErrNoConductors indicates a geometry without any conductor region.
	ErrNoConductors = errors.New("solver: no conductors found in geometry")
)

const (
	DefaultNX            = 100
	DefaultNY            = 100
	DefaultFrequency     = 1e9
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 1000
)

// Params configures the field solver. Tolerance and MaxIterations are
// carried for iterative solvers; the direct solve ignores them.
type Params struct {
	NX            int     `yaml:"nx" json:"nx"`
	NY            int     `yaml:"ny" json:"ny"`
	Frequency     float64 `yaml:"frequency" json:"frequency"`
	Tolerance     float64 `yaml:"tolerance" json:"tolerance"`
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
}

func DefaultParams() Params {
	return Params{
		NX:            DefaultNX,
		NY:            DefaultNY,
		Frequency:     DefaultFrequency,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

func (p Params) Validate() error {
	switch {
	case p.NX < 2 || p.NY < 2:
		return fmt.Errorf("%w: grid %dx%d, need at least 2x2", ErrInvalidParams, p.NX, p.NY)
	case !(p.Frequency > 0):
		return fmt.Errorf("%w: frequency %g", ErrInvalidParams, p.Frequency)
	case p.Tolerance < 0 || p.MaxIterations < 0:
		return fmt.Errorf("%w: tolerance %g, max iterations %d", ErrInvalidParams, p.Tolerance, p.MaxIterations)
	}
	return nil
}
