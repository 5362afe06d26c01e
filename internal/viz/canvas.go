package viz

import (
	"strings"

	"github.com/san-kum/emsolve/internal/geometry"
)

const brailleBlank = 0x2800

// Braille dot bits, indexed [subY][subX]. Each cell is 2x4 dots.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid of Width x Height cells, or
// (2*Width) x (4*Height) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) DrawRect(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

// FillRect sets every dot in the rectangle.
func (c *Canvas) FillRect(x0, y0, x1, y1 int) {
	for y := min(y0, y1); y <= max(y0, y1); y++ {
		for x := min(x0, x1); x <= max(x0, x1); x++ {
			c.Set(x, y)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// GeometryOutline draws every region of g on a w x h cell canvas with y
// pointing up. Conductors are filled, dielectrics outlined.
func GeometryOutline(g *geometry.Geometry, w, h int) *Canvas {
	c := NewCanvas(w, h)
	dotsX, dotsY := float64(2*w-1), float64(4*h-1)
	px := func(x float64) int { return int(x / g.Width * dotsX) }
	py := func(y float64) int { return int((1 - y/g.Height) * dotsY) }

	c.DrawRect(0, 0, int(dotsX), int(dotsY))
	for _, r := range g.Regions() {
		x0, y0, x1, y1 := px(r.XMin), py(r.YMax), px(r.XMax), py(r.YMin)
		if r.Material.IsConductor() {
			c.FillRect(x0, y0, x1, y1)
		} else {
			c.DrawRect(x0, y0, x1, y1)
		}
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
