package plot

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Bucket spreads samples over columns by x position and combines the samples
// of each column with agg. Columns that receive no finite sample are NaN.
func Bucket(samples []Sample, columns int, agg Aggregate) []float64 {
	if columns <= 0 {
		return nil
	}
	out := make([]float64, columns)
	for i := range out {
		out[i] = math.NaN()
	}
	if len(samples) == 0 {
		return out
	}

	lo, hi := samples[0].X, samples[0].X
	for _, s := range samples[1:] {
		lo = math.Min(lo, s.X)
		hi = math.Max(hi, s.X)
	}
	span := hi - lo

	counts := make([]int, columns)
	for _, s := range samples {
		if math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
			continue
		}
		col := 0
		if span > 0 {
			col = int((s.X - lo) / span * float64(columns))
		}
		if col >= columns {
			col = columns - 1
		}
		if col < 0 {
			col = 0
		}

		n := counts[col]
		switch {
		case n == 0:
			out[col] = s.Y
		case agg == Average:
			out[col] += (s.Y - out[col]) / float64(n+1)
		case agg == Min:
			out[col] = math.Min(out[col], s.Y)
		case agg == Max:
			out[col] = math.Max(out[col], s.Y)
		case agg == Last:
			out[col] = s.Y
		}
		counts[col]++
	}
	return out
}

// Normalize forces renderer output to exactly height rows of at most width
// columns. The second result reports whether the input had to be changed.
func Normalize(lines []string, width, height int) ([]string, bool) {
	if height < 1 || width < 1 {
		return []string{}, len(lines) > 0
	}
	changed := len(lines) != height
	out := make([]string, height)
	copy(out, lines)
	for i, l := range out {
		if runewidth.StringWidth(l) > width {
			out[i] = runewidth.Truncate(l, width, "")
			changed = true
		}
	}
	return out, changed
}
