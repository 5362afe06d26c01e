package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/solver"
	"github.com/san-kum/emsolve/internal/sweep"
)

var shades = []rune(" .:-=+*#%@")

// PotentialMap samples the potential onto a w x h character map, top row
// first. Conductor nodes are drawn as '█'.
func PotentialMap(sol *solver.Solution, w, h int) string {
	ny, nx := len(sol.Potential), len(sol.Potential[0])
	lo, hi := sol.Potential[0][0], sol.Potential[0][0]
	for _, row := range sol.Potential {
		for _, v := range row {
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for r := 0; r < h; r++ {
		j := (ny - 1) - r*(ny-1)/max(h-1, 1)
		for c := 0; c < w; c++ {
			i := c * (nx - 1) / max(w-1, 1)
			if sol.Grid != nil && sol.Grid.Conductor[sol.Grid.Index(i, j)] {
				b.WriteRune('█')
				continue
			}
			idx := int((sol.Potential[j][i] - lo) / rng * float64(len(shades)-1))
			b.WriteRune(shades[min(max(idx, 0), len(shades)-1)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// SweepPlot charts one quantity across sweep points.
func SweepPlot(points []sweep.Point, get func(*rlgc.Parameters) float64, caption string) string {
	data := sweep.Series(points, get)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
