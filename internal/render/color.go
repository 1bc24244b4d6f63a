package render

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// ParseHexColor converts "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" into a
// non-premultiplied color. Malformed input yields opaque black.
func ParseHexColor(hex string) color.NRGBA {
	c := gg.Hex(hex)
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
