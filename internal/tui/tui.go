// Package tui runs the animation as a Bubble Tea program. It shares the
// composer with the raw terminal driver; Bubble Tea owns the screen, cursor
// and input.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/plotanim/internal/driver"
	"github.com/san-kum/plotanim/internal/terminal"
)

const Caption = "q quit · space pause · n/p next/prev function"

var (
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

type TickMsg time.Time

// Model is the Bubble Tea model around a driver.Composer.
type Model struct {
	composer *driver.Composer
	interval time.Duration
	size     terminal.Dims
	now      int64
	offset   int64
	paused   bool
}

func NewModel(c *driver.Composer, fps int, size terminal.Dims, now time.Time) Model {
	if fps <= 0 {
		fps = driver.DefaultFPS
	}
	return Model{
		composer: c,
		interval: time.Second / time.Duration(fps),
		size:     size,
		now:      now.UnixMilli(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input, resizes and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "n":
			m.offset += m.composer.Sampler.Period()
		case "p":
			m.offset -= m.composer.Sampler.Period()
		}
	case tea.WindowSizeMsg:
		m.size = terminal.Dims{Cols: msg.Width, Rows: msg.Height}
	case TickMsg:
		if !m.paused {
			m.now = time.Time(msg).UnixMilli()
		}
		return m, m.tick()
	}
	return m, nil
}

// At is the animation time currently on screen, in milliseconds.
func (m Model) At() int64 { return m.now + m.offset }

func (m Model) View() string {
	screen := m.composer.Compose(m.At(), m.size)
	status := nameStyle.Render(screen.Frame.Entry.Name)
	if m.paused {
		status += " " + pausedStyle.Render("PAUSED")
	}
	return screen.String() + "\n" + status
}

// Run blocks until the user quits or ctx is done.
func Run(ctx context.Context, c *driver.Composer, fps int, size terminal.Dims) error {
	p := tea.NewProgram(NewModel(c, fps, size, time.Now()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
