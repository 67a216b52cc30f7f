package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PadCell is everything needed to draw one pad in the grid
type PadCell struct {
	Symbol   string
	Label    string
	Color    [3]uint8
	Selected bool
}

// maxLabel keeps pad labels from blowing out the cell width
const maxLabel = 20

// RenderPadCell renders one pad: symbol plus truncated label, boxed when
// the cursor is on it
func RenderPadCell(cell PadCell, width int) string {
	label := TruncateLabel(cell.Label, maxLabel)
	text := fmt.Sprintf("%s %s", cell.Symbol, label)

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(rgbToHex(cell.Color))).
		Width(width)
	if cell.Selected {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

// RenderPadGrid renders pads in rows of cols cells each, filling
// left-to-right then top-to-bottom
func RenderPadGrid(cells []PadCell, cols, cellWidth int) string {
	var lines []string
	for start := 0; start < len(cells); start += cols {
		end := start + cols
		if end > len(cells) {
			end = len(cells)
		}
		var line strings.Builder
		for i, cell := range cells[start:end] {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(RenderPadCell(cell, cellWidth))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// TruncateLabel clips a label to max runes with an ellipsis
func TruncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
