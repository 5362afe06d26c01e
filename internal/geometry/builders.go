package geometry

import "fmt"

// CopperConductivity is the conductivity of annealed copper in S/m.
const CopperConductivity = 5.8e7

// GroundName is the material name of generated ground planes.
const GroundName = "ground"

type MicrostripSpec struct {
	SubstrateWidth  float64
	SubstrateHeight float64
	TraceWidth      float64
	TraceThickness  float64
	EpsilonR        float64
	ConductorName   string
	// GroundThickness defaults to TraceThickness when zero.
	GroundThickness float64
}

type StriplineSpec struct {
	SubstrateWidth  float64
	SubstrateHeight float64
	TraceWidth      float64
	TraceThickness  float64
	EpsilonR        float64
	ConductorName   string
}

// Microstrip builds, bottom to top, a full-width ground plane, the
// substrate, a centered trace and an air layer as tall as the substrate.
func Microstrip(s MicrostripSpec) (*Geometry, error) {
	if s.EpsilonR == 0 {
		s.EpsilonR = 4.6
	}
	if s.ConductorName == "" {
		s.ConductorName = "signal"
	}
	if s.GroundThickness == 0 {
		s.GroundThickness = s.TraceThickness
	}
	if err := checkTrace(s.SubstrateWidth, s.SubstrateHeight, s.TraceWidth, s.TraceThickness, s.EpsilonR); err != nil {
		return nil, err
	}
	if s.GroundThickness < 0 {
		return nil, fmt.Errorf("%w: ground thickness %g", ErrInvalidDimension, s.GroundThickness)
	}

	gt := s.GroundThickness
	total := gt + s.SubstrateHeight + s.TraceThickness + s.SubstrateHeight
	g, err := New(s.SubstrateWidth, total, Air())
	if err != nil {
		return nil, err
	}

	cx := s.SubstrateWidth / 2
	top := gt + s.SubstrateHeight
	regions := []Region{
		{XMin: 0, XMax: s.SubstrateWidth, YMin: 0, YMax: gt, Material: NewConductor(GroundName, CopperConductivity)},
		{XMin: 0, XMax: s.SubstrateWidth, YMin: gt, YMax: top, Material: NewMaterial("substrate", s.EpsilonR)},
		{
			XMin: cx - s.TraceWidth/2, XMax: cx + s.TraceWidth/2,
			YMin: top, YMax: top + s.TraceThickness,
			Material: NewConductor(s.ConductorName, CopperConductivity),
		},
	}
	for _, r := range regions {
		if err := g.AddRegion(r); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Stripline builds a substrate-filled box holding one trace centered in
// both axes. The grounded outer boundary acts as the reference planes.
func Stripline(s StriplineSpec) (*Geometry, error) {
	if s.EpsilonR == 0 {
		s.EpsilonR = 4.6
	}
	if s.ConductorName == "" {
		s.ConductorName = "copper"
	}
	if err := checkTrace(s.SubstrateWidth, s.SubstrateHeight, s.TraceWidth, s.TraceThickness, s.EpsilonR); err != nil {
		return nil, err
	}
	if s.TraceThickness > s.SubstrateHeight {
		return nil, fmt.Errorf("%w: trace thickness %g exceeds substrate height %g",
			ErrInvalidDimension, s.TraceThickness, s.SubstrateHeight)
	}

	g, err := New(s.SubstrateWidth, s.SubstrateHeight, NewMaterial("substrate", s.EpsilonR))
	if err != nil {
		return nil, err
	}

	cx, cy := s.SubstrateWidth/2, s.SubstrateHeight/2
	trace := Region{
		XMin: cx - s.TraceWidth/2, XMax: cx + s.TraceWidth/2,
		YMin: cy - s.TraceThickness/2, YMax: cy + s.TraceThickness/2,
		Material: NewConductor(s.ConductorName, CopperConductivity),
	}
	if err := g.AddRegion(trace); err != nil {
		return nil, err
	}
	return g, nil
}

func checkTrace(width, height, traceWidth, traceThickness, er float64) error {
	switch {
	case !(width > 0) || !(height > 0):
		return fmt.Errorf("%w: substrate %gx%g", ErrInvalidDimension, width, height)
	case !(traceWidth > 0) || !(traceThickness > 0):
		return fmt.Errorf("%w: trace %gx%g", ErrInvalidDimension, traceWidth, traceThickness)
	case traceWidth > width:
		return fmt.Errorf("%w: trace width %g exceeds substrate width %g", ErrInvalidDimension, traceWidth, width)
	case !(er > 0):
		return fmt.Errorf("%w: epsilon_r %g", ErrInvalidDimension, er)
	}
	return nil
}
