package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/logpipe/internal/record"
)

// ANSI palette indices. The 16-color slots let the terminal theme decide the
// actual shade.
const (
	colorRed    = "1"
	colorGreen  = "2"
	colorYellow = "3"
	colorBlue   = "4"
	colorCyan   = "6"
	colorGray   = "8"
)

var levelColors = [...]string{
	record.SeverityTrace: colorGray,
	record.SeverityDebug: colorGray,
	record.SeverityInfo:  colorCyan,
	record.SeverityWarn:  colorYellow,
	record.SeverityError: colorRed,
	record.SeverityFatal: colorRed,
}

// Palette paints output segments. The zero value paints nothing.
type Palette struct {
	enabled bool

	levels  [len(levelColors)]lipgloss.Style
	key     lipgloss.Style
	dash    lipgloss.Style
	number  lipgloss.Style
	truthy  lipgloss.Style
	falsy   lipgloss.Style
	null    lipgloss.Style
	heading lipgloss.Style
	alert   lipgloss.Style
}

// NewPalette builds a palette for the given color profile. When enabled is
// false every paint call returns its input unchanged.
func NewPalette(enabled bool, profile termenv.Profile) Palette {
	if !enabled {
		return Palette{}
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	base := r.NewStyle().Inline(true).TabWidth(lipgloss.NoTabConversion)
	fg := func(color string) lipgloss.Style {
		return base.Foreground(lipgloss.Color(color))
	}

	p := Palette{
		enabled: true,
		key:     fg(colorGreen),
		dash:    fg(colorGreen),
		number:  fg(colorBlue),
		truthy:  fg(colorGreen),
		falsy:   fg(colorRed),
		null:    fg(colorGray),
		heading: base.Background(lipgloss.Color(colorRed)).Foreground(lipgloss.Color("15")),
		alert:   fg(colorRed).Bold(true),
	}
	for sev, color := range levelColors {
		p.levels[sev] = fg(color)
	}
	return p
}

// Enabled reports whether the palette emits escape sequences.
func (p Palette) Enabled() bool {
	return p.enabled
}

// Level paints text in the color of sev.
func (p Palette) Level(sev record.Severity, text string) string {
	if !p.enabled || sev < 0 || int(sev) >= len(p.levels) {
		return text
	}
	return p.levels[sev].Render(text)
}

func (p Palette) paint(style lipgloss.Style, text string) string {
	if !p.enabled || text == "" {
		return text
	}
	return style.Render(text)
}
