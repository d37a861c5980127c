package plot

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownEngine    = errors.New("plot: unknown render engine")
	ErrUnknownAggregate = errors.New("plot: unknown aggregate")
	ErrUnknownStyle     = errors.New("plot: unknown style")
)

// Sample is one (x, y) point handed to a renderer.
type Sample struct {
	X, Y float64
}

// Range is a closed vertical interval. The zero Range means "scale to data".
type Range struct {
	Min, Max float64
}

func (r Range) Span() float64 { return r.Max - r.Min }

func (r Range) IsZero() bool { return r.Min == 0 && r.Max == 0 }

// Norm maps v into [0, 1] relative to the range, without clamping.
func (r Range) Norm(v float64) float64 {
	span := r.Span()
	if span == 0 {
		return 0.5
	}
	return (v - r.Min) / span
}

// Formatter renders an axis value as tick text.
type Formatter func(float64) string

// Fixed returns a formatter printing prec decimals, right aligned to width.
func Fixed(prec, width int) Formatter {
	return func(v float64) string {
		return fmt.Sprintf("%*.*f", width, prec, v)
	}
}

// Aggregate selects how several samples landing in one column combine.
type Aggregate int

const (
	Average Aggregate = iota
	Min
	Max
	First
	Last
)

var aggregateNames = [...]string{"average", "min", "max", "first", "last"}

func (a Aggregate) String() string {
	if a < 0 || int(a) >= len(aggregateNames) {
		return fmt.Sprintf("aggregate(%d)", int(a))
	}
	return aggregateNames[a]
}

func ParseAggregate(s string) (Aggregate, error) {
	for i, name := range aggregateNames {
		if name == s {
			return Aggregate(i), nil
		}
	}
	return Average, fmt.Errorf("%w: %q", ErrUnknownAggregate, s)
}

// Style is the chart drawing mode.
type Style int

const (
	Filled Style = iota
	Line
)

func (s Style) String() string {
	switch s {
	case Filled:
		return "filled"
	case Line:
		return "line"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

func ParseStyle(s string) (Style, error) {
	switch s {
	case "filled":
		return Filled, nil
	case "line":
		return Line, nil
	}
	return Filled, fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// Config is passed to a Renderer with every frame.
type Config struct {
	YRange    Range
	XLabel    Formatter
	YLabel    Formatter
	Width     int
	Height    int
	Aggregate Aggregate
	Style     Style
}

// Renderer turns samples into Height rows of at most Width columns.
type Renderer interface {
	Render(samples []Sample, cfg Config) []string
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(samples []Sample, cfg Config) []string

func (f RendererFunc) Render(samples []Sample, cfg Config) []string { return f(samples, cfg) }

// resolveRange returns cfg's range, or the data extent when it is unset.
func resolveRange(r Range, samples []Sample) Range {
	if !r.IsZero() && r.Span() > 0 {
		return r
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		if math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
			continue
		}
		lo = math.Min(lo, s.Y)
		hi = math.Max(hi, s.Y)
	}
	if math.IsInf(lo, 1) {
		return Range{Min: -1, Max: 1}
	}
	if hi == lo {
		return Range{Min: lo - 1, Max: hi + 1}
	}
	return Range{Min: lo, Max: hi}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
