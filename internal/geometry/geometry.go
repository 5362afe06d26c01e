package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds indicates a region that does not fit inside the bounding box.
	ErrOutOfBounds = errors.New("geometry: region extends outside geometry bounds")

	// ErrInvalidDimension indicates a non-positive or otherwise unusable size.
	ErrInvalidDimension = errors.New("geometry: invalid dimension")
)

// ConductorThreshold is the conductivity (S/m) above which a material is
// treated as a perfect conductor by the field solver.
const ConductorThreshold = 1e6

type Material struct {
	Name     string  `yaml:"name" json:"name"`
	EpsilonR float64 `yaml:"epsilon_r" json:"epsilon_r"`
	MuR      float64 `yaml:"mu_r" json:"mu_r"`
	Sigma    float64 `yaml:"sigma" json:"sigma"`
}

// NewMaterial returns a lossless, non-magnetic material.
func NewMaterial(name string, epsilonR float64) Material {
	return Material{Name: name, EpsilonR: epsilonR, MuR: 1}
}

// NewConductor returns a material with the given conductivity and unit permittivity.
func NewConductor(name string, sigma float64) Material {
	return Material{Name: name, EpsilonR: 1, MuR: 1, Sigma: sigma}
}

func (m Material) IsConductor() bool {
	return m.Sigma > ConductorThreshold
}

// Air is the default fill of open geometries.
func Air() Material {
	return NewMaterial("air", 1.0)
}

type Region struct {
	XMin     float64  `json:"x_min"`
	XMax     float64  `json:"x_max"`
	YMin     float64  `json:"y_min"`
	YMax     float64  `json:"y_max"`
	Material Material `json:"material"`
}

// Contains reports whether (x, y) lies in the closed rectangle.
func (r Region) Contains(x, y float64) bool {
	return r.XMin <= x && x <= r.XMax && r.YMin <= y && y <= r.YMax
}

func (r Region) Width() float64  { return r.XMax - r.XMin }
func (r Region) Height() float64 { return r.YMax - r.YMin }
func (r Region) Area() float64   { return r.Width() * r.Height() }

type Geometry struct {
	Width   float64
	Height  float64
	Default Material
	regions []Region
}

func New(width, height float64, def Material) (*Geometry, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: bounding box %gx%g", ErrInvalidDimension, width, height)
	}
	return &Geometry{Width: width, Height: height, Default: def}, nil
}

// AddRegion appends r after checking that it lies inside the bounding box.
// A rejected region leaves the geometry unchanged.
func (g *Geometry) AddRegion(r Region) error {
	if r.XMin > r.XMax || r.YMin > r.YMax {
		return fmt.Errorf("%w: inverted rectangle [%g,%g]x[%g,%g]", ErrOutOfBounds, r.XMin, r.XMax, r.YMin, r.YMax)
	}
	if r.XMin < 0 || r.XMax > g.Width || r.YMin < 0 || r.YMax > g.Height {
		return fmt.Errorf("%w: [%g,%g]x[%g,%g] not within %gx%g",
			ErrOutOfBounds, r.XMin, r.XMax, r.YMin, r.YMax, g.Width, g.Height)
	}
	g.regions = append(g.regions, r)
	return nil
}

// MaterialAt returns the material of the most recently added region
// containing (x, y), or the default material. Cost is O(regions).
func (g *Geometry) MaterialAt(x, y float64) Material {
	for k := len(g.regions) - 1; k >= 0; k-- {
		if g.regions[k].Contains(x, y) {
			return g.regions[k].Material
		}
	}
	return g.Default
}

func (g *Geometry) Regions() []Region {
	out := make([]Region, len(g.regions))
	copy(out, g.regions)
	return out
}

func (g *Geometry) ConductorRegions() []Region {
	var out []Region
	for _, r := range g.regions {
		if r.Material.IsConductor() {
			out = append(out, r)
		}
	}
	return out
}

// ConductorNames lists distinct conductor material names in order of
// first appearance among the conductor regions.
func (g *Geometry) ConductorNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range g.ConductorRegions() {
		if seen[r.Material.Name] {
			continue
		}
		seen[r.Material.Name] = true
		names = append(names, r.Material.Name)
	}
	return names
}

// AirFilled returns a copy of g with every dielectric replaced by air.
// Only conductor regions are carried over, in their original order.
func (g *Geometry) AirFilled() *Geometry {
	air := &Geometry{Width: g.Width, Height: g.Height, Default: Air()}
	air.regions = g.ConductorRegions()
	return air
}
