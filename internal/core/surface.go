package core

import (
	"image"
	"image/color"
)

// Surface is an off-screen RGB pixel buffer.
// Layers draw into it; displays present it. Drawing outside the bounds is
// clipped silently.
type Surface struct {
	width  int
	height int
	pix    []Color
}

// NewSurface creates a black surface with the given dimensions.
// Negative dimensions are treated as zero.
func NewSurface(width, height int) *Surface {
	width = Max(width, 0)
	height = Max(height, 0)
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Rect returns the full surface area.
func (s *Surface) Rect() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Clear fills the surface with black.
func (s *Surface) Clear() {
	s.Fill(Black)
}

// Fill paints every pixel with c.
func (s *Surface) Fill(c Color) {
	for i := range s.pix {
		s.pix[i] = c
	}
}

// Set paints a single pixel.
func (s *Surface) Set(x, y int, c Color) {
	if !s.Rect().Contains(x, y) {
		return
	}
	s.pix[y*s.width+x] = c
}

// Get returns the pixel at (x, y), or black when out of bounds.
func (s *Surface) Get(x, y int) Color {
	if !s.Rect().Contains(x, y) {
		return Black
	}
	return s.pix[y*s.width+x]
}

// FillRect paints the part of r that lies on the surface.
func (s *Surface) FillRect(r Rect, c Color) {
	r = r.Intersect(s.Rect())
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		row := s.pix[y*s.width : (y+1)*s.width]
		for x := r.X; x < r.Right(); x++ {
			row[x] = c
		}
	}
}

// HLine draws a horizontal line from (x, y) with the given length.
func (s *Surface) HLine(x, y, length int, c Color) {
	s.FillRect(NewRect(x, y, length, 1), c)
}

// VLine draws a vertical line from (x, y) with the given length.
func (s *Surface) VLine(x, y, length int, c Color) {
	s.FillRect(NewRect(x, y, 1, length), c)
}

// FillCircle paints a filled disc centered at (cx, cy).
func (s *Surface) FillCircle(cx, cy, radius int, c Color) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		// Widest dx on this scanline that stays inside the disc.
		dx := 0
		for (dx+1)*(dx+1)+dy*dy <= r2 {
			dx++
		}
		s.HLine(cx-dx, cy+dy, 2*dx+1, c)
	}
}

// CopyFrom overwrites s with the contents of src.
// Sizes must match; extra rows or columns are ignored.
func (s *Surface) CopyFrom(src *Surface) {
	if s.width == src.width && s.height == src.height {
		copy(s.pix, src.pix)
		return
	}
	w := Min(s.width, src.width)
	h := Min(s.height, src.height)
	for y := 0; y < h; y++ {
		copy(s.pix[y*s.width:y*s.width+w], src.pix[y*src.width:y*src.width+w])
	}
}

// Equal reports whether both surfaces have identical size and pixels.
func (s *Surface) Equal(other *Surface) bool {
	if s.width != other.width || s.height != other.height {
		return false
	}
	for i := range s.pix {
		if s.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color {
	return s.Get(x, y)
}
