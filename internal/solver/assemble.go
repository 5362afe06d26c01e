package solver

import "github.com/san-kum/emsolve/internal/linalg"

// Excitation maps conductor material names to voltages. Conductors that
// are not listed are held at 0 V.
type Excitation map[string]float64

// Assemble builds the finite-difference system for div(eps grad V) = 0 on
// gr. Conductor nodes are fixed at their excitation voltage, the remaining
// outer boundary is grounded, and interior dielectric nodes get a 5-point
// stencil with harmonic-mean permittivity on each face. Node values stand
// in for the face values, which is exact only inside uniform material.
func Assemble(gr *Grid, exc Excitation) (*linalg.CSR, []float64) {
	nx, ny := gr.NX, gr.NY
	n := nx * ny
	b := make([]float64, n)
	bld := linalg.NewBuilder(n, n)
	bld.Grow(5 * n)

	dx2 := gr.DX * gr.DX
	dy2 := gr.DY * gr.DY
	eps := gr.EpsilonR

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			k := j*nx + i

			if gr.Conductor[k] {
				bld.Add(k, k, 1)
				b[k] = exc[gr.Material[k]]
				continue
			}

			if gr.OnBoundary(i, j) {
				bld.Add(k, k, 1)
				continue
			}

			east := harmonic(eps[k], eps[k+1])
			west := harmonic(eps[k], eps[k-1])
			north := harmonic(eps[k], eps[k+nx])
			south := harmonic(eps[k], eps[k-nx])

			bld.Add(k, k, -(east+west)/dx2-(north+south)/dy2)
			bld.Add(k, k+1, east/dx2)
			bld.Add(k, k-1, west/dx2)
			bld.Add(k, k+nx, north/dy2)
			bld.Add(k, k-nx, south/dy2)
		}
	}

	return bld.CSR(), b
}

func harmonic(a, b float64) float64 {
	return 2 * a * b / (a + b)
}
