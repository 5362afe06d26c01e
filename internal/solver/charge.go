package solver

// Eps0 is the vacuum permittivity in F/m.
const Eps0 = 8.854e-12

// ConductorCharge estimates the charge per unit length on the conductor
// named name with a discrete Gauss's law sum. For every interior node of
// the conductor and every in-bounds dielectric neighbor, the field normal
// to the shared face is averaged over the node pair and multiplied by the
// neighbor's permittivity and the face length.
func ConductorCharge(sol *Solution, name string) float64 {
	gr := sol.Grid
	nx, ny := gr.NX, gr.NY

	neighbors := [4]struct {
		di, dj int
	}{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	var q float64
	for j := 1; j < ny-1; j++ {
		for i := 1; i < nx-1; i++ {
			if gr.Material[gr.Index(i, j)] != name {
				continue
			}
			for _, nb := range neighbors {
				ni, nj := i+nb.di, j+nb.dj
				if ni < 0 || ni >= nx || nj < 0 || nj >= ny {
					continue
				}
				k := gr.Index(ni, nj)
				if gr.Conductor[k] {
					continue
				}

				var en, ds float64
				if nb.di != 0 {
					en = float64(nb.di) * (sol.Ex[j][i] + sol.Ex[nj][ni]) / 2
					ds = gr.DY
				} else {
					en = float64(nb.dj) * (sol.Ey[j][i] + sol.Ey[nj][ni]) / 2
					ds = gr.DX
				}
				q += Eps0 * gr.EpsilonR[k] * en * ds
			}
		}
	}
	return q
}

// Energy returns the electric energy per unit length, the sum of
// 1/2 eps |E|^2 dx dy over dielectric nodes.
func (s *Solution) Energy() float64 {
	gr := s.Grid
	var w float64
	for j := 0; j < gr.NY; j++ {
		for i := 0; i < gr.NX; i++ {
			k := gr.Index(i, j)
			if gr.Conductor[k] {
				continue
			}
			e2 := s.Ex[j][i]*s.Ex[j][i] + s.Ey[j][i]*s.Ey[j][i]
			w += 0.5 * Eps0 * gr.EpsilonR[k] * e2
		}
	}
	return w * gr.DX * gr.DY
}

// MaxField returns the largest |E| on the grid and where it occurs.
func (s *Solution) MaxField() (e, x, y float64) {
	mag := s.FieldMagnitude()
	for j := range mag {
		for i := range mag[j] {
			if mag[j][i] > e {
				e, x, y = mag[j][i], s.X[i], s.Y[j]
			}
		}
	}
	return e, x, y
}
