package viz

import (
	"math"
	"strings"

	"github.com/san-kum/pendsim/internal/analysis"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

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
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set turns on the dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// DrawLine draws a line using Bresenham's algorithm
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Plot maps (x, y) from the data window [minX, maxX]×[minY, maxY] onto the
// sub-pixel grid, with y pointing up.
func (c *Canvas) Plot(x, y, minX, maxX, minY, maxY float64) {
	if maxX <= minX || maxY <= minY || math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	w, h := c.Width*2, c.Height*4
	px := int((x - minX) / (maxX - minX) * float64(w-1))
	py := h - 1 - int((y-minY)/(maxY-minY)*float64(h-1))
	c.Set(px, py)
}

// PhaseCanvas draws every series as a Braille phase portrait of width×height
// cells. Bounds are symmetric about the origin so closed orbits stay round.
func PhaseCanvas(series []analysis.PhaseSeries, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	bound := 0.0
	for _, s := range series {
		for _, p := range s.Points {
			if math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				continue
			}
			bound = math.Max(bound, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
	}
	if bound == 0 {
		bound = 1
	}
	bound *= 1.05

	c := NewCanvas(width, height)
	for px := 0; px < width*2; px++ {
		c.Set(px, height*2)
	}
	for py := 0; py < height*4; py++ {
		c.Set(width, py)
	}
	for _, s := range series {
		for _, p := range s.Points {
			c.Plot(p.X, p.Y, -bound, bound, -bound, bound)
		}
	}
	return c.String()
}
