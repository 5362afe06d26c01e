package solver

import (
	"github.com/san-kum/emsolve/internal/geometry"
)

// Grid holds the material sampled at every node of a uniform nx×ny grid
// covering the geometry bounding box, edges included. Node (i, j) sits at
// (X[i], Y[j]) and is stored at index j*NX+i.
type Grid struct {
	NX, NY    int
	DX, DY    float64
	X, Y      []float64
	EpsilonR  []float64
	Sigma     []float64
	Conductor []bool
	Material  []string
}

func NewGrid(g *geometry.Geometry, p Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	nx, ny := p.NX, p.NY
	gr := &Grid{
		NX:        nx,
		NY:        ny,
		DX:        g.Width / float64(nx-1),
		DY:        g.Height / float64(ny-1),
		X:         linspace(0, g.Width, nx),
		Y:         linspace(0, g.Height, ny),
		EpsilonR:  make([]float64, nx*ny),
		Sigma:     make([]float64, nx*ny),
		Conductor: make([]bool, nx*ny),
		Material:  make([]string, nx*ny),
	}

	parallelFor(ny, 8, func(start, end int) {
		for j := start; j < end; j++ {
			for i := 0; i < nx; i++ {
				m := g.MaterialAt(gr.X[i], gr.Y[j])
				k := j*nx + i
				gr.EpsilonR[k] = m.EpsilonR
				gr.Sigma[k] = m.Sigma
				gr.Conductor[k] = m.IsConductor()
				gr.Material[k] = m.Name
			}
		}
	})

	return gr, nil
}

func (gr *Grid) Index(i, j int) int { return j*gr.NX + i }

// OnBoundary reports whether (i, j) lies on the outer edge of the grid.
func (gr *Grid) OnBoundary(i, j int) bool {
	return i == 0 || j == 0 || i == gr.NX-1 || j == gr.NY-1
}

// Nodes counts the grid nodes whose material is named name.
func (gr *Grid) Nodes(name string) int {
	n := 0
	for _, m := range gr.Material {
		if m == name {
			n++
		}
	}
	return n
}

// linspace matches numpy.linspace: endpoints are exact and interior
// points are start + k*step.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for k := range out {
		out[k] = start + float64(k)*step
	}
	out[n-1] = stop
	return out
}
