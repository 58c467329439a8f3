package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme assigns colors to the interface and to each plotted scheme.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Series  []lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#666688"),
		Series: []lipgloss.Color{
			lipgloss.Color("#ff4444"), // explicit
			lipgloss.Color("#00ccff"), // implicit
			lipgloss.Color("#00ff88"), // symplectic
			lipgloss.Color("#ff00ff"),
			lipgloss.Color("#ffff00"),
		},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Series: []lipgloss.Color{
			lipgloss.Color("#ffffff"),
			lipgloss.Color("#aaaaaa"),
			lipgloss.Color("#0088ff"),
		},
	}

	Themes = []Theme{ThemeCyberpunk, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SeriesStyle colors the i-th scheme, cycling through the palette.
func (t Theme) SeriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Series[i%len(t.Series)])
}

// seriesColors are the asciigraph counterparts of the cyberpunk palette.
var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Blue,
	asciigraph.Green,
	asciigraph.Magenta,
	asciigraph.Yellow,
}

func seriesColor(i int) asciigraph.AnsiColor {
	return seriesColors[i%len(seriesColors)]
}
