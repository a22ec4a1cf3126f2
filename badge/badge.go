// Package badge draws the circular gradient badge used for the extension
// icons. Drawing is pure: the same size always yields the same pixels.
package badge

import (
	"image/color"
	"math"
)

// Sizes lists the icon edge lengths the driver renders, in output order.
var Sizes = []int{16, 48, 128}

// DecorationMinSize is the smallest edge length that gets the broom and
// sparkle drawn over the gradient.
const DecorationMinSize = 48

// Generate renders a size×size badge as a row-major RGBA buffer with
// four bytes per pixel. Non-positive sizes yield an empty buffer.
func Generate(size int) []byte {
	if size <= 0 {
		return []byte{}
	}
	pix := make([]byte, 0, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := At(size, x, y)
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}
	return pix
}

// At returns the color of pixel (x, y) in a size×size badge.
func At(size, x, y int) color.NRGBA {
	s := float64(size)
	fx, fy := float64(x), float64(y)
	center := s / 2
	radius := s/2 - 1

	dx := fx - center
	dy := fy - center
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist > radius {
		return color.NRGBA{}
	}

	t := (fx + fy) / (s * 2)
	r, g, b := lerp(gradientStart, gradientEnd, t)

	if size >= DecorationMinSize {
		// Overlapping regions resolve in draw order: handle, brush, sparkle.
		if inHandle(s, fx, fy) {
			r, g, b = handleColor.ints()
		}
		if inBrush(s, fx, fy) {
			r, g, b = brushColor.ints()
		}
		if inSparkle(s, fx, fy) {
			r, g, b = sparkleColor.ints()
		}
	}

	alpha := 255
	if dist > radius-1 {
		alpha = int(255 * clampUnit(radius-dist+1))
	}

	return color.NRGBA{
		R: clampByte(r),
		G: clampByte(g),
		B: clampByte(b),
		A: clampByte(alpha),
	}
}

// inHandle reports whether the point lies on the diagonal broom handle.
func inHandle(s, x, y float64) bool {
	return math.Abs((x-y)-s*0.1) < s*0.05 && x > s*0.3 && y < s*0.7
}

// inBrush reports whether the point lies in the broom head, a band
// around x = 0.25·s in the lower left.
func inBrush(s, x, y float64) bool {
	if x >= s*0.4 || y <= s*0.65 {
		return false
	}
	return math.Abs(x-s*0.25) < s*0.15
}

func inSparkle(s, x, y float64) bool {
	dx := x - s*0.75
	dy := y - s*0.25
	return math.Sqrt(dx*dx+dy*dy) < s*0.06
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
