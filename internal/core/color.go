package core

import "fmt"

// Color is an 8-bit-per-channel RGB value.
// The zero value is black.
type Color struct {
	R, G, B uint8
}

// RGB is shorthand for Color{r, g, b}.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color formatted as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color so surfaces can be handed to image encoders.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Interpolate blends from c1 towards c2 by t.
// t is clamped to [0, 1]; each channel is truncated toward zero.
func Interpolate(c1, c2 Color, t float64) Color {
	t = ClampF(t, 0, 1)
	return Color{
		R: lerpChannel(c1.R, c2.R, t),
		G: lerpChannel(c1.G, c2.G, t),
		B: lerpChannel(c1.B, c2.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return uint8(Clamp(int(v), 0, 255))
}

// ScaleBrightness multiplies every channel by b.
// Negative factors are treated as 0; results saturate at 255, so b > 1
// over-brightens.
func ScaleBrightness(c Color, b float64) Color {
	if b < 0 {
		b = 0
	}
	return Color{
		R: scaleChannel(c.R, b),
		G: scaleChannel(c.G, b),
		B: scaleChannel(c.B, b),
	}
}

func scaleChannel(v uint8, b float64) uint8 {
	return uint8(Clamp(int(float64(v)*b), 0, 255))
}

// Named colors used by the default palette.
var (
	Black     = RGB(0, 0, 0)
	SkyBlue   = RGB(135, 206, 235)
	RoyalBlue = RGB(65, 105, 225)
	Ocean     = RGB(0, 0, 255)
	Orange    = RGB(255, 140, 0)
	DeepRed   = RGB(200, 36, 12)
)
