// Package render provides the drawable canvas owned by a page loader: a
// bitmap sized to the page's intrinsic dimensions that can show a decoded
// page or a textual placeholder, and can be encoded for display elsewhere.
package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Surface is an in-memory canvas
type Surface struct {
	img      *image.RGBA
	onUpdate func(*Surface)
}

// NewSurface creates a transparent surface of the given size
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// SetUpdateCallback sets the function called after every change of the pixels
func (s *Surface) SetUpdateCallback(callback func(*Surface)) {
	s.onUpdate = callback
}

// Width returns the surface width in pixels
func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the surface height in pixels
func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

// Empty reports whether the surface has no drawable area
func (s *Surface) Empty() bool {
	return s.Width() == 0 || s.Height() == 0
}

// Resize replaces the pixel buffer. Resizing to zero releases the memory.
func (s *Surface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.notifyUpdate()
}

// Clear makes every pixel transparent
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Rect, image.Transparent, image.Point{}, draw.Src)
	s.notifyUpdate()
}

// DrawImage draws src scaled to cover the whole surface
func (s *Surface) DrawImage(src image.Image) {
	if src == nil || s.Empty() {
		return
	}
	xdraw.BiLinear.Scale(s.img, s.img.Rect, src, src.Bounds(), xdraw.Over, nil)
	s.notifyUpdate()
}

// Image returns the current pixels
func (s *Surface) Image() image.Image {
	return s.img
}

// Snapshot returns a copy of the current pixels
func (s *Surface) Snapshot() *image.RGBA {
	dst := image.NewRGBA(s.img.Rect)
	copy(dst.Pix, s.img.Pix)
	return dst
}

// notifyUpdate calls the update callback if set
func (s *Surface) notifyUpdate() {
	if s.onUpdate != nil {
		s.onUpdate(s)
	}
}
