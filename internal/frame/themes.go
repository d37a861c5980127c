package frame

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownTheme = errors.New("frame: unknown theme")

// Theme defines the colors applied to the border, chart body and caption.
// The plain theme writes no escape sequences at all.
type Theme struct {
	Name    string
	Border  lipgloss.Color
	Body    lipgloss.Color
	Caption lipgloss.Color
}

var (
	ThemePlain = Theme{Name: "plain"}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Border:  lipgloss.Color("#ff00ff"), // Magenta
		Body:    lipgloss.Color("#00ffff"), // Cyan
		Caption: lipgloss.Color("#ffff00"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Border:  lipgloss.Color("#00cc00"),
		Body:    lipgloss.Color("#00ff00"), // Green phosphor
		Caption: lipgloss.Color("#88ff88"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Border:  lipgloss.Color("#888888"),
		Body:    lipgloss.Color("#ffffff"),
		Caption: lipgloss.Color("#0088ff"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Border:  lipgloss.Color("#4488aa"),
		Body:    lipgloss.Color("#00a8cc"),
		Caption: lipgloss.Color("#ffd700"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Border:  lipgloss.Color("#8b6b8c"),
		Body:    lipgloss.Color("#ff6b6b"), // Coral
		Caption: lipgloss.Color("#feca57"),
	}

	Themes = []Theme{
		ThemePlain,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name.
func GetTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return ThemePlain, fmt.Errorf("%w: %s (available: %v)", ErrUnknownTheme, name, ThemeNames())
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) border(s string) string  { return paint(t.Border, s) }
func (t Theme) body(s string) string    { return paint(t.Body, s) }
func (t Theme) caption(s string) string { return paint(t.Caption, s) }

func paint(c lipgloss.Color, s string) string {
	if c == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(c).Render(s)
}
