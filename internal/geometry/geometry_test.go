package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestMaterial_IsConductor(t *testing.T) {
	tests := []struct {
		name string
		m    Material
		want bool
	}{
		{"air", Air(), false},
		{"copper", NewConductor("cu", CopperConductivity), true},
		{"threshold", Material{Name: "edge", EpsilonR: 1, Sigma: ConductorThreshold}, false},
		{"lossy dielectric", Material{Name: "fr4", EpsilonR: 4.4, Sigma: 1e-3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsConductor(); got != tt.want {
				t.Errorf("IsConductor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddRegion_RejectsOutOfBounds(t *testing.T) {
	g, err := New(1.0, 1.0, Air())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	bad := []Region{
		{XMin: 0, XMax: 1.5, YMin: 0, YMax: 0.5, Material: Air()},
		{XMin: -0.1, XMax: 0.5, YMin: 0, YMax: 0.5, Material: Air()},
		{XMin: 0, XMax: 0.5, YMin: 0, YMax: 1.01, Material: Air()},
		{XMin: 0.6, XMax: 0.5, YMin: 0, YMax: 0.5, Material: Air()},
	}
	for _, r := range bad {
		if err := g.AddRegion(r); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("AddRegion(%+v) error = %v, want ErrOutOfBounds", r, err)
		}
	}

	if n := len(g.Regions()); n != 0 {
		t.Errorf("expected no regions after rejections, got %d", n)
	}

	if err := g.AddRegion(Region{XMin: 0, XMax: 1, YMin: 0, YMax: 1, Material: Air()}); err != nil {
		t.Errorf("full-box region rejected: %v", err)
	}
}

func TestMaterialAt_LaterRegionsShadowEarlier(t *testing.T) {
	g, _ := New(2.0, 2.0, NewMaterial("default", 1))
	low := NewMaterial("low", 2)
	high := NewMaterial("high", 3)
	_ = g.AddRegion(Region{XMin: 0, XMax: 2, YMin: 0, YMax: 1, Material: low})
	_ = g.AddRegion(Region{XMin: 0.5, XMax: 1.5, YMin: 0.5, YMax: 1.5, Material: high})

	tests := []struct {
		x, y float64
		want string
	}{
		{0.1, 0.1, "low"},
		{1.0, 0.75, "high"},
		{1.0, 1.25, "high"},
		{0.1, 1.9, "default"},
		{0.5, 0.5, "high"},
	}
	for _, tt := range tests {
		if got := g.MaterialAt(tt.x, tt.y).Name; got != tt.want {
			t.Errorf("MaterialAt(%g, %g) = %s, want %s", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestConductorNames_FirstAppearanceOrder(t *testing.T) {
	g, _ := New(3, 3, Air())
	_ = g.AddRegion(Region{XMin: 0, XMax: 1, YMin: 0, YMax: 1, Material: NewConductor("b", 1e7)})
	_ = g.AddRegion(Region{XMin: 1, XMax: 2, YMin: 0, YMax: 1, Material: NewMaterial("diel", 4)})
	_ = g.AddRegion(Region{XMin: 2, XMax: 3, YMin: 0, YMax: 1, Material: NewConductor("a", 1e7)})
	_ = g.AddRegion(Region{XMin: 0, XMax: 1, YMin: 2, YMax: 3, Material: NewConductor("b", 1e7)})

	names := g.ConductorNames()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Errorf("ConductorNames() = %v, want [b a]", names)
	}
	if n := len(g.ConductorRegions()); n != 3 {
		t.Errorf("expected 3 conductor regions, got %d", n)
	}
}

func TestAirFilled(t *testing.T) {
	g, err := Microstrip(MicrostripSpec{
		SubstrateWidth: 5e-3, SubstrateHeight: 1.6e-3,
		TraceWidth: 3e-3, TraceThickness: 35e-6, EpsilonR: 4.6,
	})
	if err != nil {
		t.Fatalf("microstrip failed: %v", err)
	}

	air := g.AirFilled()
	if air.Width != g.Width || air.Height != g.Height {
		t.Errorf("bounding box changed: %gx%g vs %gx%g", air.Width, air.Height, g.Width, g.Height)
	}
	if air.Default.EpsilonR != 1 {
		t.Errorf("expected air default, got %+v", air.Default)
	}
	for _, r := range air.Regions() {
		if !r.Material.IsConductor() {
			t.Errorf("dielectric region %s survived", r.Material.Name)
		}
	}
	if len(air.Regions()) != 2 {
		t.Errorf("expected 2 conductor regions, got %d", len(air.Regions()))
	}
	if len(g.Regions()) != 3 {
		t.Errorf("source geometry mutated: %d regions", len(g.Regions()))
	}
}

func TestMicrostrip_Layout(t *testing.T) {
	g, err := Microstrip(MicrostripSpec{
		SubstrateWidth: 5e-3, SubstrateHeight: 1.6e-3,
		TraceWidth: 3e-3, TraceThickness: 35e-6, EpsilonR: 4.6,
	})
	if err != nil {
		t.Fatalf("microstrip failed: %v", err)
	}

	wantHeight := 35e-6 + 1.6e-3 + 35e-6 + 1.6e-3
	if math.Abs(g.Height-wantHeight) > 1e-15 {
		t.Errorf("height = %g, want %g", g.Height, wantHeight)
	}

	names := g.ConductorNames()
	if len(names) != 2 || names[0] != GroundName || names[1] != "signal" {
		t.Errorf("conductor names = %v, want [ground signal]", names)
	}

	if got := g.MaterialAt(2.5e-3, 1e-3).Name; got != "substrate" {
		t.Errorf("substrate probe = %s", got)
	}
	if got := g.MaterialAt(2.5e-3, 35e-6+1.6e-3+10e-6).Name; got != "signal" {
		t.Errorf("trace probe = %s", got)
	}
	if got := g.MaterialAt(0.1e-3, 3e-3).Name; got != "air" {
		t.Errorf("air probe = %s", got)
	}
}

func TestStripline_Layout(t *testing.T) {
	g, err := Stripline(StriplineSpec{
		SubstrateWidth: 4e-3, SubstrateHeight: 1e-3,
		TraceWidth: 0.5e-3, TraceThickness: 50e-6, EpsilonR: 4.2,
	})
	if err != nil {
		t.Fatalf("stripline failed: %v", err)
	}
	if g.Default.Name != "substrate" || g.Default.EpsilonR != 4.2 {
		t.Errorf("default material = %+v", g.Default)
	}
	if names := g.ConductorNames(); len(names) != 1 || names[0] != "copper" {
		t.Errorf("conductor names = %v", names)
	}
	if got := g.MaterialAt(2e-3, 0.5e-3).Name; got != "copper" {
		t.Errorf("center probe = %s", got)
	}
}

func TestBuilders_RejectBadDimensions(t *testing.T) {
	if _, err := Microstrip(MicrostripSpec{SubstrateWidth: 1e-3, SubstrateHeight: 1e-3, TraceWidth: 2e-3, TraceThickness: 1e-5}); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("wide trace: err = %v", err)
	}
	if _, err := Stripline(StriplineSpec{SubstrateWidth: 1e-3, SubstrateHeight: 0, TraceWidth: 1e-4, TraceThickness: 1e-5}); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero height: err = %v", err)
	}
	if _, err := New(0, 1, Air()); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero width: err = %v", err)
	}
}
