package theme

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

// LoadGPL reads a GIMP palette file (.gpl)
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Palette{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		// Parse RGB values (first 3 fields are R G B)
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, RGB{uint8(r), uint8(g), uint8(b)})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette %s", path)
	}

	return p, nil
}

// DefaultPalette returns the built-in palette used when no .gpl file is
// configured. Warm hues for panel 1, cool hues for panel 2.
func DefaultPalette() *Palette {
	return &Palette{
		Name: "soundpad",
		Colors: []RGB{
			{236, 72, 153}, // pink
			{244, 63, 94},  // rose
			{168, 85, 247}, // purple
			{217, 70, 239}, // fuchsia
			{251, 146, 60}, // orange
			{251, 191, 36}, // amber
			{52, 211, 153}, // emerald
			{45, 212, 191}, // teal
			{34, 211, 238}, // cyan
			{56, 189, 248}, // sky
			{96, 165, 250}, // blue
			{129, 140, 248}, // indigo
			{163, 230, 53}, // lime
			{74, 222, 128}, // green
			{250, 204, 21}, // yellow
		},
	}
}

// Lookup maps a normalized value 0-1 onto the palette, interpolating
// between neighboring entries.
func (p *Palette) Lookup(norm float64) RGB {
	if len(p.Colors) == 0 {
		return RGB{}
	}
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	a := p.Colors[i]
	b := p.Colors[i+1]
	return RGB{
		uint8(float64(a[0]) + (float64(b[0])-float64(a[0]))*frac),
		uint8(float64(a[1]) + (float64(b[1])-float64(a[1]))*frac),
		uint8(float64(a[2]) + (float64(b[2])-float64(a[2]))*frac),
	}
}
