package plot

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var dotMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// canvas is a grid of braille cells addressed in dot coordinates.
// The dot size is (cols*2) x (rows*4), origin top left.
type canvas struct {
	cols, rows int
	grid       [][]rune
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, grid: make([][]rune, rows)}
	for i := range c.grid {
		c.grid[i] = make([]rune, cols)
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBlank
		}
	}
	return c
}

func (c *canvas) dotHeight() int { return c.rows * 4 }

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.grid[row][col] |= dotMap[y%4][x%2]
}

// line draws a segment with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int) {
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
		c.set(x0, y0)
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

// cells returns the grid with untouched cells as plain spaces.
func (c *canvas) cells() [][]rune {
	out := make([][]rune, c.rows)
	for i, row := range c.grid {
		out[i] = make([]rune, len(row))
		for j, r := range row {
			if r == brailleBlank {
				r = ' '
			}
			out[i][j] = r
		}
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
