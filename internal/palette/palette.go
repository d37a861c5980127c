// Package palette holds the fixed set of periodic functions the animation
// cycles through.
package palette

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/plotanim/internal/plot"
)

var (
	ErrUnknownFunction = errors.New("palette: unknown function")
	ErrEmptyPalette    = errors.New("palette: no functions selected")
)

// Entry is one function with the vertical range it is displayed in.
type Entry struct {
	Name      string
	Transform func(float64) float64
	YRange    plot.Range
}

// Palette is an ordered, read-only list of entries.
type Palette struct {
	entries []Entry
	index   map[string]int
}

func newPalette(entries []Entry) *Palette {
	p := &Palette{
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		p.index[e.Name] = i
	}
	return p
}

// Default returns the built-in palette.
func Default() *Palette {
	return newPalette([]Entry{
		{"sine", math.Sin, plot.Range{Min: -1.5, Max: 1.5}},
		{"sine-2x", func(x float64) float64 { return math.Sin(x * 2) }, plot.Range{Min: -1.5, Max: 1.5}},
		{"rectified", func(x float64) float64 { return math.Max(math.Sin(x), 0) }, plot.Range{Min: 0, Max: 1}},
		{"sine-squared", func(x float64) float64 { return math.Pow(math.Sin(x), 2) }, plot.Range{Min: 0, Max: 1}},
		{"sine-down", func(x float64) float64 { return math.Sin(x) - 2 }, plot.Range{Min: -3, Max: 0}},
		{"sine-up", func(x float64) float64 { return math.Sin(x) + 2 }, plot.Range{Min: 0, Max: 3}},
		{"composite", composite, plot.Range{Min: -1, Max: 1}},
	})
}

func composite(x float64) float64 {
	return math.Sin(x*17)*0.5 +
		math.Cos(x*13)*0.1 +
		math.Sin(x*math.Pi*2)*0.3 +
		math.Sin(x*x*5)*0.2
}

func (p *Palette) Len() int { return len(p.entries) }

// At returns entry i. It panics when i is out of range, like a slice index.
func (p *Palette) At(i int) Entry { return p.entries[i] }

func (p *Palette) Lookup(name string) (Entry, int, error) {
	i, ok := p.index[name]
	if !ok {
		return Entry{}, -1, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return p.entries[i], i, nil
}

func (p *Palette) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.Name
	}
	return names
}

// Select returns a new palette holding the named entries in the given order.
func (p *Palette) Select(names ...string) (*Palette, error) {
	if len(names) == 0 {
		return nil, ErrEmptyPalette
	}
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e, _, err := p.Lookup(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return newPalette(entries), nil
}
