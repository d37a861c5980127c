// Package terminal holds the raw control sequences, size lookup and signal
// handling the animation needs from the terminal it runs in.
package terminal

import (
	"io"

	"github.com/charmbracelet/x/term"
)

const (
	HideCursor  = "\033[?25l"
	ShowCursor  = "\033[?25h"
	HomeClear   = "\033[1;1H\033[2J"
	DefaultCols = 80
	DefaultRows = 40
)

// Dims is a terminal size in character cells.
type Dims struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

var Fallback = Dims{Cols: DefaultCols, Rows: DefaultRows}

type fder interface {
	Fd() uintptr
}

// Size reports the size of the terminal behind w. Writers that are not a
// terminal, or a failing query, give the fallback. Zero fields of fallback
// are replaced by 80x40.
func Size(w io.Writer, fallback Dims) Dims {
	if fallback.Cols <= 0 {
		fallback.Cols = DefaultCols
	}
	if fallback.Rows <= 0 {
		fallback.Rows = DefaultRows
	}

	f, ok := w.(fder)
	if !ok || !term.IsTerminal(f.Fd()) {
		return fallback
	}
	cols, rows, err := term.GetSize(f.Fd())
	if err != nil {
		return fallback
	}
	if cols <= 0 {
		cols = fallback.Cols
	}
	if rows <= 0 {
		rows = fallback.Rows
	}
	return Dims{Cols: cols, Rows: rows}
}

// SizeFunc adapts Size to a zero argument lookup bound to w.
func SizeFunc(w io.Writer, fallback Dims) func() Dims {
	return func() Dims { return Size(w, fallback) }
}
