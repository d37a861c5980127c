package driver

import (
	"strings"

	"github.com/san-kum/plotanim/internal/frame"
	"github.com/san-kum/plotanim/internal/plot"
	"github.com/san-kum/plotanim/internal/sampler"
	"github.com/san-kum/plotanim/internal/terminal"
)

var (
	xLabel = plot.Fixed(3, 0)
	yLabel = plot.Fixed(3, 6)
)

// Screen is one fully composed frame.
type Screen struct {
	Frame   sampler.Frame
	Config  plot.Config
	Box     frame.Box
	Caption string
	// Clamped is set when the renderer output did not match the requested size.
	Clamped bool
}

// String is the box followed by the caption line.
func (s Screen) String() string {
	var b strings.Builder
	for _, l := range s.Box.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(s.Caption)
	return b.String()
}

// Composer builds screens from the sampler, a renderer and the framing
// settings. It holds no per-frame state.
type Composer struct {
	Sampler   *sampler.Sampler
	Renderer  plot.Renderer
	Theme     frame.Theme
	Caption   string
	Aggregate plot.Aggregate
	Margin    terminal.Dims
}

// Compose renders the frame for time t (ms) on a terminal of the given size.
func (c *Composer) Compose(t int64, size terminal.Dims) Screen {
	f := c.Sampler.Sample(t, size.Cols)
	cfg := plot.Config{
		YRange:    f.Entry.YRange,
		XLabel:    xLabel,
		YLabel:    yLabel,
		Width:     max(size.Cols-c.Margin.Cols, 1),
		Height:    max(size.Rows-c.Margin.Rows, 1),
		Aggregate: c.Aggregate,
		Style:     f.Style,
	}

	lines, clamped := plot.Normalize(c.Renderer.Render(f.Samples, cfg), cfg.Width, cfg.Height)
	box := frame.NewBox(lines, c.Theme)

	return Screen{
		Frame:   f,
		Config:  cfg,
		Box:     box,
		Caption: frame.Caption(c.Caption, box.Width, c.Theme),
		Clamped: clamped,
	}
}
