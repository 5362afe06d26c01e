package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/linalg"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/metrics"
)

// Solver owns the sampled material grid for one geometry and parameter
// set. Solve may be called concurrently; it only reads the grid.
type Solver struct {
	geom   *geometry.Geometry
	params Params
	grid   *Grid
}

func New(g *geometry.Geometry, p Params) (*Solver, error) {
	gr, err := NewGrid(g, p)
	if err != nil {
		return nil, err
	}
	return &Solver{geom: g, params: p, grid: gr}, nil
}

func (s *Solver) Grid() *Grid { return s.grid }

// Solve computes the potential and field for one conductor excitation.
// A failed linear solve is returned as is; no partial result is produced.
func (s *Solver) Solve(ctx context.Context, exc Excitation) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	gr := s.grid
	start := time.Now()

	a, b := Assemble(gr, exc)
	x, st, err := linalg.Solve(a, b)
	if err != nil {
		return nil, fmt.Errorf("solve %dx%d grid: %w", gr.NX, gr.NY, err)
	}
	elapsed := time.Since(start)
	metrics.ObserveSolve(string(st.Method), st.Unknowns, elapsed)
	log.V(logging.DEBUG).Info("electrostatic solve finished",
		"nx", gr.NX, "ny", gr.NY, "unknowns", st.Unknowns, "bandwidth", st.Bandwidth,
		"method", st.Method, "elapsed", elapsed)

	v := makeGrid(gr.NX, gr.NY)
	for j := range v {
		copy(v[j], x[j*gr.NX:(j+1)*gr.NX])
	}
	ex, ey := ElectricField(v, gr.DX, gr.DY)

	return &Solution{
		Potential: v,
		Ex:        ex,
		Ey:        ey,
		X:         gr.X,
		Y:         gr.Y,
		Geometry:  s.geom,
		Params:    s.params,
		Grid:      gr,
	}, nil
}
