package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const asciigraphOffset = 2

// ASCIIGraph delegates drawing to asciigraph. asciigraph has no fill mode,
// so both styles render as a line.
type ASCIIGraph struct{}

func (ASCIIGraph) Render(samples []Sample, cfg Config) []string {
	w, h := max(cfg.Width, 1), max(cfg.Height, 1)
	rng := resolveRange(cfg.YRange, samples)

	labelWidth := max(
		len(fmt.Sprintf("%.3f", rng.Min)),
		len(fmt.Sprintf("%.3f", rng.Max)),
	)
	cols := max(w-labelWidth-asciigraphOffset-1, 1)

	values := fillGaps(Bucket(samples, cols, cfg.Aggregate))
	if values == nil {
		out, _ := Normalize(nil, w, h)
		return out
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(max(h-1, 1)),
		asciigraph.Width(cols),
		asciigraph.LowerBound(rng.Min),
		asciigraph.UpperBound(rng.Max),
		asciigraph.Precision(3),
		asciigraph.Offset(asciigraphOffset),
	)
	out, _ := Normalize(strings.Split(graph, "\n"), w, h)
	return out
}

// fillGaps carries the last finite value into NaN columns. It returns nil
// when no column holds a value.
func fillGaps(values []float64) []float64 {
	first := -1
	for i, v := range values {
		if !math.IsNaN(v) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}
	last := values[first]
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = last
			continue
		}
		last = v
	}
	return values
}
