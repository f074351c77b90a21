package viz

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownTheme = errors.New("viz: unknown theme")

// Theme is the palette the canvas is shaded with. Primary replaces pure
// white ink, Accent is used for titles and Background is what zero alpha
// fades to.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color
}

var (
	// ThemeMono is white on black.
	ThemeMono      = Theme{"mono", "#ffffff", "#f59e0b", "#000000", "#5a5a5a"}
	ThemeCyberpunk = Theme{"cyberpunk", "#ff00ff", "#ffff00", "#0a0a0a", "#666666"}
	ThemeRetro     = Theme{"retro", "#00ff00", "#88ff88", "#001100", "#005500"}
	ThemeOcean     = Theme{"ocean", "#00a8cc", "#ffd700", "#001a33", "#4488aa"}
	ThemeSunset    = Theme{"sunset", "#ff6b6b", "#feca57", "#2d1b2e", "#8b6b8c"}

	CurrentTheme = ThemeMono

	// Themes is the cycle order of NextTheme.
	Themes = []Theme{ThemeMono, ThemeCyberpunk, ThemeRetro, ThemeOcean, ThemeSunset}
)

func LookupTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// GetTheme returns a theme by name, falling back to mono.
func GetTheme(name string) Theme {
	if t, err := LookupTheme(name); err == nil {
		return t
	}
	return ThemeMono
}

func SetTheme(name string) error {
	t, err := LookupTheme(name)
	if err != nil {
		return err
	}
	CurrentTheme = t
	return nil
}

// NextTheme switches to the theme after the current one.
func NextTheme() Theme {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return CurrentTheme
		}
	}
	CurrentTheme = ThemeMono
	return CurrentTheme
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Shade maps a surface color onto the terminal. Pure white takes the
// theme's primary color. Alpha blends toward the background on a square
// root curve so faint strokes stay legible.
func (t Theme) Shade(c color.NRGBA) lipgloss.Color {
	ink := c
	if c.R == 255 && c.G == 255 && c.B == 255 {
		ink = rgb(t.Primary)
	}
	f := math.Sqrt(float64(c.A) / 255)
	return hex(lerp(rgb(t.Background), ink, f))
}

// rgb parses a #rrggbb color. Anything else reads as white, and an empty
// color as black.
func rgb(c lipgloss.Color) color.NRGBA {
	if c == "" {
		return color.NRGBA{A: 255}
	}
	var r, g, b uint8
	if n, err := fmt.Sscanf(string(c), "#%02x%02x%02x", &r, &g, &b); err != nil || n != 3 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func lerp(from, to color.NRGBA, f float64) color.NRGBA {
	mix := func(a, b uint8) uint8 { return uint8(math.Round(float64(a) + f*(float64(b)-float64(a)))) }
	return color.NRGBA{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B), A: 255}
}
