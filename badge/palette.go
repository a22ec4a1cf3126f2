package badge

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient anchors and decoration colors.
var (
	gradientStart = mustHex("#667eea")
	gradientEnd   = mustHex("#764ba2")
	handleColor   = mustHex("#ffd700")
	brushColor    = mustHex("#8b4513")
	sparkleColor  = mustHex("#ffffff")
)

// rgb holds a color as float channels in 0-255 so the gradient can be
// interpolated and truncated per channel.
type rgb struct {
	R, G, B float64
}

func mustHex(s string) rgb {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("badge: bad palette color %q: %v", s, err))
	}
	r, g, b := c.RGB255()
	return rgb{float64(r), float64(g), float64(b)}
}

// lerp interpolates from a toward b by t, truncating each channel.
func lerp(a, b rgb, t float64) (int, int, int) {
	return int(a.R + (b.R-a.R)*t),
		int(a.G + (b.G-a.G)*t),
		int(a.B + (b.B-a.B)*t)
}

func (c rgb) ints() (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}

func (c rgb) opaque() color.NRGBA {
	return color.NRGBA{uint8(c.R), uint8(c.G), uint8(c.B), 0xff}
}

// Opaque decoration colors, for callers that inspect rendered icons.
var (
	Gold    = handleColor.opaque()
	Brown   = brushColor.opaque()
	Sparkle = sparkleColor.opaque()
)
