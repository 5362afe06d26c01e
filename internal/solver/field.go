package solver

import (
	"math"

	"github.com/san-kum/emsolve/internal/geometry"
)

// Solution is the electrostatic field on a grid. Arrays are indexed
// [j][i] (row = y, column = x). A Solution is never modified after Solve
// returns it.
type Solution struct {
	Potential [][]float64
	Ex        [][]float64
	Ey        [][]float64
	X         []float64
	Y         []float64
	Geometry  *geometry.Geometry
	Params    Params
	Grid      *Grid
}

// FieldMagnitude returns |E| at every node.
func (s *Solution) FieldMagnitude() [][]float64 {
	out := make([][]float64, len(s.Ex))
	for j := range s.Ex {
		out[j] = make([]float64, len(s.Ex[j]))
		for i := range s.Ex[j] {
			out[j][i] = math.Hypot(s.Ex[j][i], s.Ey[j][i])
		}
	}
	return out
}

// ElectricField returns E = -grad V. Ex uses one-sided differences on
// the first and last columns and central differences elsewhere; Ey does
// the same on the first and last rows.
func ElectricField(v [][]float64, dx, dy float64) (ex, ey [][]float64) {
	ny := len(v)
	nx := len(v[0])
	ex = makeGrid(nx, ny)
	ey = makeGrid(nx, ny)

	for j := 0; j < ny; j++ {
		ex[j][0] = -(v[j][1] - v[j][0]) / dx
		ex[j][nx-1] = -(v[j][nx-1] - v[j][nx-2]) / dx
		for i := 1; i < nx-1; i++ {
			ex[j][i] = -(v[j][i+1] - v[j][i-1]) / (2 * dx)
		}
	}

	for i := 0; i < nx; i++ {
		ey[0][i] = -(v[1][i] - v[0][i]) / dy
		ey[ny-1][i] = -(v[ny-1][i] - v[ny-2][i]) / dy
		for j := 1; j < ny-1; j++ {
			ey[j][i] = -(v[j+1][i] - v[j-1][i]) / (2 * dy)
		}
	}

	return ex, ey
}

func makeGrid(nx, ny int) [][]float64 {
	backing := make([]float64, nx*ny)
	out := make([][]float64, ny)
	for j := range out {
		out[j] = backing[j*nx : (j+1)*nx : (j+1)*nx]
	}
	return out
}
