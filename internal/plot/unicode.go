package plot

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	yTickEvery = 4
	xTickGap   = 3
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Unicode draws charts with box drawing axes. Filled charts use eighth
// blocks, line charts use a braille dot canvas.
type Unicode struct{}

func (Unicode) Render(samples []Sample, cfg Config) []string {
	w, h := max(cfg.Width, 1), max(cfg.Height, 1)
	xl, yl := cfg.XLabel, cfg.YLabel
	if xl == nil {
		xl = Fixed(3, 0)
	}
	if yl == nil {
		yl = Fixed(3, 6)
	}

	plotRows, withXAxis := h-2, true
	if plotRows < 1 {
		plotRows, withXAxis = h, false
	}

	rng := resolveRange(cfg.YRange, samples)
	labels, gutter := yTicks(rng, plotRows, yl)
	cols := max(w-gutter-1, 1)

	values := Bucket(samples, cols, cfg.Aggregate)
	var cells [][]rune
	if cfg.Style == Line {
		cells = drawLine(values, rng, plotRows, cols)
	} else {
		cells = drawFilled(values, rng, plotRows, cols)
	}

	lines := make([]string, 0, h)
	for r := 0; r < plotRows; r++ {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", gutter-runewidth.StringWidth(labels[r])))
		b.WriteString(labels[r])
		if labels[r] != "" {
			b.WriteRune('┤')
		} else {
			b.WriteRune('│')
		}
		b.WriteString(string(cells[r]))
		lines = append(lines, b.String())
	}
	if withXAxis {
		axis, ticks := xAxis(samples, cols, gutter, xl)
		lines = append(lines, axis, ticks)
	}

	out, _ := Normalize(lines, w, h)
	return out
}

// yTicks labels every yTickEvery-th row plus the bottom one. It returns the
// per-row labels and the widest label.
func yTicks(rng Range, rows int, f Formatter) ([]string, int) {
	labels := make([]string, rows)
	gutter := 0
	for r := 0; r < rows; r++ {
		if r%yTickEvery != 0 && r != rows-1 {
			continue
		}
		v := rng.Max
		if rows > 1 {
			v = rng.Max - float64(r)/float64(rows-1)*rng.Span()
		}
		labels[r] = f(v)
		gutter = max(gutter, runewidth.StringWidth(labels[r]))
	}
	return labels, gutter
}

func drawFilled(values []float64, rng Range, rows, cols int) [][]rune {
	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(" ", cols))
	}
	for c, v := range values {
		if math.IsNaN(v) {
			continue
		}
		eighths := int(math.Round(clamp01(rng.Norm(v)) * float64(rows*8)))
		for r := 0; r < rows; r++ {
			fill := eighths - (rows-1-r)*8
			if fill <= 0 {
				continue
			}
			if fill > 8 {
				fill = 8
			}
			cells[r][c] = blocks[fill-1]
		}
	}
	return cells
}

func drawLine(values []float64, rng Range, rows, cols int) [][]rune {
	cv := newCanvas(cols, rows)
	top := cv.dotHeight() - 1
	prevX, prevY, havePrev := 0, 0, false
	for c, v := range values {
		if math.IsNaN(v) {
			havePrev = false
			continue
		}
		x := c * 2
		y := int(math.Round((1 - clamp01(rng.Norm(v))) * float64(top)))
		if havePrev {
			cv.line(prevX, prevY, x, y)
		}
		cv.set(x, y)
		cv.set(x+1, y)
		prevX, prevY, havePrev = x+1, y, true
	}
	return cv.cells()
}

// xAxis returns the axis row with tick marks and the row of tick labels.
func xAxis(samples []Sample, cols, gutter int, f Formatter) (string, string) {
	axis := []rune(strings.Repeat(" ", gutter) + "└" + strings.Repeat("─", cols))
	ticks := []rune(strings.Repeat(" ", gutter+1+cols))
	if len(samples) == 0 {
		return string(axis), strings.TrimRight(string(ticks), " ")
	}

	lo, hi := samples[0].X, samples[0].X
	for _, s := range samples[1:] {
		lo = math.Min(lo, s.X)
		hi = math.Max(hi, s.X)
	}

	next := 0
	for c := 0; c < cols; c++ {
		if c < next {
			continue
		}
		label := []rune(f(lo + float64(c)/float64(cols)*(hi-lo)))
		if c+len(label) > cols {
			break
		}
		axis[gutter+1+c] = '┬'
		copy(ticks[gutter+1+c:], label)
		next = c + len(label) + xTickGap
	}
	return string(axis), strings.TrimRight(string(ticks), " ")
}
