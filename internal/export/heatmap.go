package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/emsolve/internal/solver"
)

// fieldGrid adapts a [j][i] node array to plotter.GridXYZ.
type fieldGrid struct {
	x, y []float64
	z    [][]float64
}

func (f fieldGrid) Dims() (c, r int)   { return len(f.x), len(f.y) }
func (f fieldGrid) Z(c, r int) float64 { return f.z[r][c] }
func (f fieldGrid) X(c int) float64    { return f.x[c] * 1e3 }
func (f fieldGrid) Y(r int) float64    { return f.y[r] * 1e3 }

// HeatMap renders z over the solution grid. The format follows the file
// extension of path (png, svg, pdf, ...).
func HeatMap(sol *solver.Solution, z [][]float64, title, path string) error {
	grid := fieldGrid{x: sol.X, y: sol.Y, z: z}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(1)
	h := plotter.NewHeatMap(grid, cm.Palette(255))
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}
	h.NaN = color.Transparent

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"
	p.Add(h)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// SaveFieldPlots writes the potential and |E| maps plus the geometry
// outline next to prefix and returns the written paths.
func SaveFieldPlots(sol *solver.Solution, prefix, ext string) ([]string, error) {
	if ext == "" {
		ext = "png"
	}
	plots := []struct {
		name  string
		title string
		z     [][]float64
	}{
		{"potential", "Electric potential (V)", sol.Potential},
		{"field", "Electric field magnitude (V/m)", sol.FieldMagnitude()},
	}

	var paths []string
	for _, pl := range plots {
		path := fmt.Sprintf("%s_%s.%s", prefix, pl.name, ext)
		if err := HeatMap(sol, pl.z, pl.title, path); err != nil {
			return paths, fmt.Errorf("plot %s: %w", pl.name, err)
		}
		paths = append(paths, path)
	}

	path := prefix + "_geometry.svg"
	if err := writeFile(path, GeometrySVG(sol.Geometry, 800)); err != nil {
		return paths, err
	}
	return append(paths, path), nil
}
