package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/emsolve/internal/geometry"
)

var materialColors = []string{"#1f6f8b", "#99a8b2", "#e6d5b8", "#6a8caf", "#a3c4bc"}

const (
	conductorColor = "#c87533"
	backgroundFill = "#0a0a0a"
)

// GeometrySVG draws the cross-section of g, y up, scaled to width pixels.
// Conductors are copper colored; dielectrics cycle through a palette by
// first appearance.
func GeometrySVG(g *geometry.Geometry, width int) string {
	if g == nil || g.Width <= 0 || width <= 0 {
		return ""
	}
	scale := float64(width) / g.Width
	height := int(g.Height*scale + 0.5)
	colors := map[string]string{}
	bg := fillFor(g.Default, colors)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg))

	for _, r := range g.Regions() {
		fill := fillFor(r.Material, colors)
		x := r.XMin * scale
		y := (g.Height - r.YMax) * scale
		sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"><title>%s</title></rect>
`, x, y, r.Width()*scale, r.Height()*scale, fill, r.Material.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func fillFor(m geometry.Material, seen map[string]string) string {
	if m.IsConductor() {
		return conductorColor
	}
	if m.Name == "air" {
		return backgroundFill
	}
	if c, ok := seen[m.Name]; ok {
		return c
	}
	c := materialColors[len(seen)%len(materialColors)]
	seen[m.Name] = c
	return c
}

// CurveSVG plots ys against xs as a single polyline. It returns "" for
// fewer than two points.
func CurveSVG(xs, ys []float64, width, height int, strokeColor string) string {
	n := min(len(xs), len(ys))
	if n < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 0; i < n; i++ {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, backgroundFill, strokeColor))

	for i := 0; i < n; i++ {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
