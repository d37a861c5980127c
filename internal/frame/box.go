// Package frame wraps rendered chart rows in a border and centers captions
// beneath it.
package frame

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	topLeft     = "┌"
	topRight    = "┐"
	bottomLeft  = "└"
	bottomRight = "┘"
	horizontal  = "─"
	vertical    = "│"
)

// Box is a bordered block of lines. Width is the visual width of every line.
type Box struct {
	Lines []string
	Width int
}

func (b Box) String() string { return strings.Join(b.Lines, "\n") }

// Measure returns the widest visual width among lines.
func Measure(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	return w
}

// NewBox borders lines, padding each with trailing spaces to the widest one
// so the right edge lines up. Widths are measured before theme styling.
func NewBox(lines []string, theme Theme) Box {
	inner := Measure(lines)
	edge := strings.Repeat(horizontal, inner)

	out := make([]string, 0, len(lines)+2)
	out = append(out, theme.border(topLeft+edge+topRight))
	for _, l := range lines {
		pad := strings.Repeat(" ", inner-runewidth.StringWidth(l))
		out = append(out, theme.border(vertical)+theme.body(l+pad)+theme.border(vertical))
	}
	out = append(out, theme.border(bottomLeft+edge+bottomRight))

	return Box{Lines: out, Width: inner + 2}
}

// CaptionPad is the left padding that centers a caption of width c under a
// box of width b, never negative.
func CaptionPad(b, c int) int {
	if b <= c {
		return 0
	}
	return (b - c) / 2
}

// Caption centers text under a box of the given width.
func Caption(text string, boxWidth int, theme Theme) string {
	pad := CaptionPad(boxWidth, runewidth.StringWidth(text))
	return strings.Repeat(" ", pad) + theme.caption(text)
}
