package graphic

import (
	termbox "github.com/nsf/termbox-go"

	"github.com/katvel/shapewave/theme"
)

// Braille cells pack a 2x4 dot grid, so the drawable resolution is twice
// the terminal width and four times its height.
const (
	dotsPerCellX = 2
	dotsPerCellY = 4

	brailleBase = 0x2800
)

// dotBits maps a dot position within a cell to its bit in the braille
// codepoint.
var dotBits = [dotsPerCellY][dotsPerCellX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// canvas rasterizes vertex geometry into braille dot cells. It holds no
// terminal state, so it can be drawn to headlessly.
type canvas struct {
	cols, rows int
	dots       []uint8
	colors     []termbox.Attribute

	fg termbox.Attribute
}

func (c *canvas) resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols = cols
	c.rows = rows
	c.dots = make([]uint8, cols*rows)
	c.colors = make([]termbox.Attribute, cols*rows)
}

func (c *canvas) clear() {
	for i := range c.dots {
		c.dots[i] = 0
		c.colors[i] = 0
	}
}

// bounds reports the dot-space extents.
func (c *canvas) bounds() (w, h float64) {
	return float64(c.cols * dotsPerCellX), float64(c.rows * dotsPerCellY)
}

func (c *canvas) plot(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / dotsPerCellX
	row := y / dotsPerCellY
	if col >= c.cols || row >= c.rows {
		return
	}

	idx := row*c.cols + col
	c.dots[idx] |= dotBits[y%dotsPerCellY][x%dotsPerCellX]
	c.colors[idx] = c.fg
}

// line draws with Bresenham in dot space.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		c.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// fillTriangle rasterizes with edge functions over the bounding box. The
// triangles themes emit are small, so the scan stays cheap.
func (c *canvas) fillTriangle(ax, ay, bx, by, cx, cy int) {
	minX, maxX := min3(ax, bx, cx), max3(ax, bx, cx)
	minY, maxY := min3(ay, by, cy), max3(ay, by, cy)

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	w, h := c.cols*dotsPerCellX, c.rows*dotsPerCellY
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}

	area := edge(ax, ay, bx, by, cx, cy)
	if area == 0 {
		c.line(minX, minY, maxX, maxY)
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edge(bx, by, cx, cy, x, y)
			w1 := edge(cx, cy, ax, ay, x, y)
			w2 := edge(ax, ay, bx, by, x, y)

			if area > 0 {
				if w0 >= 0 && w1 >= 0 && w2 >= 0 {
					c.plot(x, y)
				}
			} else {
				if w0 <= 0 && w1 <= 0 && w2 <= 0 {
					c.plot(x, y)
				}
			}
		}
	}
}

func edge(ax, ay, bx, by, px, py int) int {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

// Geometry entry points shared by Display.

func (c *canvas) drawLines(pts []theme.Vertex) {
	for i := 0; i+1 < len(pts); i += 2 {
		c.line(round(pts[i].X), round(pts[i].Y), round(pts[i+1].X), round(pts[i+1].Y))
	}
}

func (c *canvas) drawLineStrip(pts []theme.Vertex) {
	for i := 0; i+1 < len(pts); i++ {
		c.line(round(pts[i].X), round(pts[i].Y), round(pts[i+1].X), round(pts[i+1].Y))
	}
}

func (c *canvas) drawTriangles(pts []theme.Vertex) {
	for i := 0; i+2 < len(pts); i += 3 {
		c.fillTriangle(
			round(pts[i].X), round(pts[i].Y),
			round(pts[i+1].X), round(pts[i+1].Y),
			round(pts[i+2].X), round(pts[i+2].Y),
		)
	}
}
