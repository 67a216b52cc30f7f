package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	PadEmpty   rune // ▢ no clip bound
	PadLoaded  rune // ▣ clip bound
	PadPlaying rune // ▶ currently audible
	PadPaused  rune // ‖ active but paused
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			PadEmpty:   '▢',
			PadLoaded:  '▣',
			PadPlaying: '▶',
			PadPaused:  '~',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.2
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleActive  = 0.7
	RoleWarning = 0.9
)

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

// PadColors spreads the palette over both panels: panel 1 pads sample the
// lower half of the palette, panel 2 pads the upper half, so the two panels
// read as distinct color families like the original pad grids.
func (t *Theme) PadColors(padsPerPanel int) []RGB {
	colors := make([]RGB, padsPerPanel*2)
	for i := 0; i < padsPerPanel; i++ {
		colors[i] = t.Palette.Lookup(0.5 * float64(i) / float64(padsPerPanel-1))
	}
	for i := 0; i < padsPerPanel; i++ {
		colors[padsPerPanel+i] = t.Palette.Lookup(0.5 + 0.5*float64(i)/float64(padsPerPanel-1))
	}
	return colors
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
