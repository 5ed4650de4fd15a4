package tapgame

import (
	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/core"
)

// Swatch is one named colour a tile can show.
type Swatch struct {
	Name  string
	Color core.Color
}

// palette lists every colour a round can use. Its length is config.PaletteSize.
var palette = [config.PaletteSize]Swatch{
	{Name: "RED", Color: core.ColorRed},
	{Name: "GREEN", Color: core.ColorGreen},
	{Name: "BLUE", Color: core.ColorBlue},
	{Name: "YELLOW", Color: core.ColorYellow},
	{Name: "MAGENTA", Color: core.ColorMagenta},
	{Name: "CYAN", Color: core.ColorCyan},
	{Name: "ORANGE", Color: core.ColorOrange},
	{Name: "WHITE", Color: core.ColorWhite},
}

// Palette returns a copy of the colour palette.
func Palette() []Swatch {
	out := make([]Swatch, len(palette))
	copy(out, palette[:])
	return out
}

// SwatchAt returns the palette entry at index i.
// Out-of-range indexes return a gray placeholder.
func SwatchAt(i int) Swatch {
	if i < 0 || i >= len(palette) {
		return Swatch{Name: "?", Color: core.ColorGray}
	}
	return palette[i]
}
