// Package sampler produces the per-frame sample buffer for the animation.
//
// Time is wall clock milliseconds. Every period the sampler moves on to the
// next palette function, and within a period the first half is drawn filled
// and the second half as a line. A frame always spans one full period of the
// function, starting at a phase that advances with time.
package sampler

import (
	"math"

	"github.com/san-kum/plotanim/internal/palette"
	"github.com/san-kum/plotanim/internal/plot"
)

const (
	DefaultPeriod  int64 = 5000
	DefaultDensity       = 3
)

const tau = 2 * math.Pi

// Frame is the sampled data for one tick.
type Frame struct {
	Index   int
	Entry   palette.Entry
	Style   plot.Style
	Samples []plot.Sample
}

type Sampler struct {
	palette *palette.Palette
	period  int64
	density int
	pinned  int
}

// New returns a sampler over p. Non-positive period or density fall back to
// the defaults.
func New(p *palette.Palette, period int64, density int) *Sampler {
	if period <= 0 {
		period = DefaultPeriod
	}
	if density <= 0 {
		density = DefaultDensity
	}
	return &Sampler{palette: p, period: period, density: density, pinned: -1}
}

// Pin fixes the selection to the named function. An empty name unpins.
func (s *Sampler) Pin(name string) error {
	if name == "" {
		s.pinned = -1
		return nil
	}
	_, i, err := s.palette.Lookup(name)
	if err != nil {
		return err
	}
	s.pinned = i
	return nil
}

func (s *Sampler) Period() int64 { return s.period }

func (s *Sampler) Palette() *palette.Palette { return s.palette }

// Index is floor(t/period) mod N, or the pinned entry.
func (s *Sampler) Index(t int64) int {
	if s.pinned >= 0 {
		return s.pinned
	}
	n := int64(s.palette.Len())
	q := t / s.period
	if t%s.period < 0 {
		q--
	}
	idx := q % n
	if idx < 0 {
		idx += n
	}
	return int(idx)
}

// StyleAt is Filled for the first half of each period and Line after.
func (s *Sampler) StyleAt(t int64) plot.Style {
	m := t % s.period
	if m < 0 {
		m += s.period
	}
	if m*2 >= s.period {
		return plot.Line
	}
	return plot.Filled
}

// Sample returns density*width samples covering one period of the selected
// function. x increases strictly; the function sees x mod 2π.
func (s *Sampler) Sample(t int64, width int) Frame {
	idx := s.Index(t)
	entry := s.palette.At(idx)

	n := 0
	if width > 0 {
		n = width * s.density
	}
	samples := make([]plot.Sample, n)
	phase := float64(t) / float64(s.period) * tau
	for i := range samples {
		x := phase + tau*(float64(i)/float64(n))
		samples[i] = plot.Sample{X: x, Y: entry.Transform(wrap(x))}
	}

	return Frame{
		Index:   idx,
		Entry:   entry,
		Style:   s.StyleAt(t),
		Samples: samples,
	}
}

func wrap(x float64) float64 {
	x = math.Mod(x, tau)
	if x < 0 {
		x += tau
	}
	return x
}
