package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/solver"
)

const (
	DefaultSubstrateWidth  = 5e-3
	DefaultSubstrateHeight = 1.6e-3
	DefaultTraceWidth      = 3e-3
	DefaultTraceThickness  = 35e-6
	DefaultEpsilonR        = 4.6
	DefaultSweepStart      = 1e8
	DefaultSweepStop       = 1e10
	DefaultSweepPoints     = 21
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Line      string         `yaml:"line"`
	Geometry  GeometryConfig `yaml:"geometry"`
	Solver    SolverConfig   `yaml:"solver"`
	Frequency float64        `yaml:"frequency"`
	Sweep     SweepConfig    `yaml:"sweep"`
	Output    OutputConfig   `yaml:"output"`
}

// GeometryConfig describes a microstrip or stripline stackup in meters.
type GeometryConfig struct {
	SubstrateWidth  float64 `yaml:"substrate_width" json:"substrate_width"`
	SubstrateHeight float64 `yaml:"substrate_height" json:"substrate_height"`
	TraceWidth      float64 `yaml:"trace_width" json:"trace_width"`
	TraceThickness  float64 `yaml:"trace_thickness" json:"trace_thickness"`
	EpsilonR        float64 `yaml:"epsilon_r" json:"epsilon_r"`
	GroundThickness float64 `yaml:"ground_thickness,omitempty" json:"ground_thickness,omitempty"`
	Conductor       string  `yaml:"conductor,omitempty" json:"conductor,omitempty"`
}

type SolverConfig struct {
	NX            int     `yaml:"nx" json:"nx"`
	NY            int     `yaml:"ny" json:"ny"`
	Tolerance     float64 `yaml:"tolerance" json:"tolerance"`
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
}

type SweepConfig struct {
	Start  float64 `yaml:"start"`
	Stop   float64 `yaml:"stop"`
	Points int     `yaml:"points"`
	Log    bool    `yaml:"log"`
}

type OutputConfig struct {
	JSON              string `yaml:"json,omitempty"`
	SavePlots         bool   `yaml:"save_plots"`
	CompareAnalytical bool   `yaml:"compare_analytical"`
}

func DefaultConfig() *Config {
	return &Config{
		Line: analytic.Microstrip,
		Geometry: GeometryConfig{
			SubstrateWidth:  DefaultSubstrateWidth,
			SubstrateHeight: DefaultSubstrateHeight,
			TraceWidth:      DefaultTraceWidth,
			TraceThickness:  DefaultTraceThickness,
			EpsilonR:        DefaultEpsilonR,
		},
		Solver: SolverConfig{
			NX:            solver.DefaultNX,
			NY:            solver.DefaultNY,
			Tolerance:     solver.DefaultTolerance,
			MaxIterations: solver.DefaultMaxIterations,
		},
		Frequency: solver.DefaultFrequency,
		Sweep: SweepConfig{
			Start:  DefaultSweepStart,
			Stop:   DefaultSweepStop,
			Points: DefaultSweepPoints,
			Log:    true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) SolverParams() solver.Params {
	return solver.Params{
		NX:            c.Solver.NX,
		NY:            c.Solver.NY,
		Frequency:     c.Frequency,
		Tolerance:     c.Solver.Tolerance,
		MaxIterations: c.Solver.MaxIterations,
	}
}

// Conductor returns the signal conductor name, falling back to the
// builder default for the line kind. Microstrip defaults to "signal" so the
// trace is the one Conductance drives.
func (c *Config) Conductor() string {
	if c.Geometry.Conductor != "" {
		return c.Geometry.Conductor
	}
	if c.Line == analytic.Stripline {
		return "copper"
	}
	return "signal"
}

// ConductorPair is the signal conductor followed by ground.
func (c *Config) ConductorPair() []string {
	return []string{c.Conductor(), geometry.GroundName}
}

func (c *Config) BuildGeometry() (*geometry.Geometry, error) {
	gc := c.Geometry
	switch c.Line {
	case analytic.Microstrip:
		return geometry.Microstrip(geometry.MicrostripSpec{
			SubstrateWidth:  gc.SubstrateWidth,
			SubstrateHeight: gc.SubstrateHeight,
			TraceWidth:      gc.TraceWidth,
			TraceThickness:  gc.TraceThickness,
			EpsilonR:        gc.EpsilonR,
			ConductorName:   c.Conductor(),
			GroundThickness: gc.GroundThickness,
		})
	case analytic.Stripline:
		return geometry.Stripline(geometry.StriplineSpec{
			SubstrateWidth:  gc.SubstrateWidth,
			SubstrateHeight: gc.SubstrateHeight,
			TraceWidth:      gc.TraceWidth,
			TraceThickness:  gc.TraceThickness,
			EpsilonR:        gc.EpsilonR,
			ConductorName:   c.Conductor(),
		})
	}
	return nil, fmt.Errorf("%w: line %q", analytic.ErrUnknownKind, c.Line)
}

// AnalyticZ0 evaluates the closed-form impedance for the configured line.
func (c *Config) AnalyticZ0() (float64, error) {
	return analytic.Z0(c.Line, c.Geometry.TraceWidth, c.Geometry.SubstrateHeight, c.Geometry.EpsilonR)
}

func (c *Config) Validate() error {
	if _, err := c.BuildGeometry(); err != nil {
		return err
	}
	if err := c.SolverParams().Validate(); err != nil {
		return err
	}
	s := c.Sweep
	if s.Points < 0 || (s.Points > 0 && !(s.Start > 0 && s.Stop >= s.Start)) {
		return fmt.Errorf("%w: sweep %g..%g with %d points", ErrInvalidConfig, s.Start, s.Stop, s.Points)
	}
	return nil
}
