package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSurface_ResizeAndCollapse(t *testing.T) {
	s := NewSurface(40, 60)
	if s.Width() != 40 || s.Height() != 60 {
		t.Fatalf("Expected 40x60, got %dx%d", s.Width(), s.Height())
	}
	if s.Empty() {
		t.Error("Surface with area should not be empty")
	}

	s.Resize(0, 0)
	if !s.Empty() {
		t.Error("Collapsed surface should be empty")
	}
	if len(s.img.Pix) != 0 {
		t.Errorf("Expected pixel memory to be released, got %d bytes", len(s.img.Pix))
	}

	s.Resize(-1, 5)
	if s.Width() != 0 {
		t.Errorf("Negative width should clamp to 0, got %d", s.Width())
	}
}

func TestSurface_DrawImageScales(t *testing.T) {
	s := NewSurface(20, 20)
	s.DrawImage(solid(5, 5, color.RGBA{R: 255, A: 255}))

	r, _, _, a := s.Image().At(10, 10).RGBA()
	if r>>8 != 255 || a>>8 != 255 {
		t.Errorf("Expected opaque red at center, got r=%d a=%d", r>>8, a>>8)
	}
	_, _, _, a = s.Image().At(19, 19).RGBA()
	if a == 0 {
		t.Error("Expected scaled image to cover the corner")
	}

	s.Clear()
	if _, _, _, a := s.Image().At(10, 10).RGBA(); a != 0 {
		t.Error("Expected transparent pixel after Clear")
	}
}

func TestSurface_DrawPlaceholder(t *testing.T) {
	s := NewSurface(600, 400)

	updates := 0
	s.SetUpdateCallback(func(*Surface) { updates++ })

	if err := s.DrawPlaceholder("Loading...", "Reader dev → 001.jpg"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updates != 1 {
		t.Errorf("Expected 1 update notification, got %d", updates)
	}

	inked := 0
	img := s.Image().(*image.RGBA)
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("Expected placeholder text to ink some pixels")
	}

	empty := NewSurface(0, 0)
	if err := empty.DrawPlaceholder("Error!", ""); err != nil {
		t.Errorf("Drawing on an empty surface should be a no-op, got %v", err)
	}
}

func TestSurface_Encode(t *testing.T) {
	s := NewSurface(8, 4)
	s.DrawImage(solid(1, 1, color.White))

	data, mediaType, err := s.Encode("", 0)
	if err != nil || mediaType != TypePNG {
		t.Fatalf("Expected png encoding, got %s err=%v", mediaType, err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Expected valid png, got %v", err)
	}

	data, mediaType, err = s.Encode(TypeJPEG, 0.5)
	if err != nil || mediaType != TypeJPEG {
		t.Fatalf("Expected jpeg encoding, got %s err=%v", mediaType, err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Expected valid jpeg, got %v", err)
	}

	_, mediaType, _ = s.Encode("image/tiff", 0)
	if mediaType != TypePNG {
		t.Errorf("Expected unsupported type to fall back to png, got %s", mediaType)
	}
}

func TestSurface_DataURLRoundTrip(t *testing.T) {
	s := NewSurface(3, 3)

	url, err := s.DataURL(TypePNG, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, mediaType, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if mediaType != TypePNG {
		t.Errorf("Expected %s, got %s", TypePNG, mediaType)
	}
	direct, _, _ := s.Encode(TypePNG, 0)
	if !bytes.Equal(data, direct) {
		t.Error("Data URL payload differs from direct encoding")
	}

	if _, _, err := DecodeDataURL("not-a-data-url"); err == nil {
		t.Error("Expected error for malformed data url")
	}
}

func TestSurface_SnapshotIsIndependent(t *testing.T) {
	s := NewSurface(4, 4)
	s.DrawImage(solid(4, 4, color.RGBA{G: 255, A: 255}))

	snap := s.Snapshot()
	s.Clear()

	if got := snap.RGBAAt(1, 1); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("Expected snapshot to keep pixels, got %v", got)
	}
	if got := s.img.RGBAAt(1, 1); got.A != 0 {
		t.Errorf("Expected surface cleared, got %v", got)
	}
}
