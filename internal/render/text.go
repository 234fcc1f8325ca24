package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Placeholder typography
const (
	CaptionSize  = 150
	FooterSize   = 20
	FooterMargin = 20
)

// PlaceholderColor is the ink used for placeholder text
var PlaceholderColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

var (
	facesOnce   sync.Once
	captionFace font.Face
	footerFace  font.Face
	facesErr    error

	// opentype faces are not safe for concurrent use
	facesMutex sync.Mutex
)

func loadFaces() error {
	facesOnce.Do(func() {
		captionFace, facesErr = newFace(gobold.TTF, CaptionSize)
		if facesErr != nil {
			return
		}
		footerFace, facesErr = newFace(goregular.TTF, FooterSize)
	})
	return facesErr
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// DrawPlaceholder draws a centered caption with a footer line near the bottom edge
func (s *Surface) DrawPlaceholder(caption, footer string) error {
	if s.Empty() {
		return nil
	}
	if err := loadFaces(); err != nil {
		return err
	}

	facesMutex.Lock()
	defer facesMutex.Unlock()

	w, h := s.Width(), s.Height()
	drawCentered(s.img, captionFace, caption, w/2, h/2)
	if footer != "" {
		drawCentered(s.img, footerFace, footer, w/2, h-FooterMargin)
	}
	s.notifyUpdate()
	return nil
}

// drawCentered draws text with its horizontal center at cx and vertical middle at cy
func drawCentered(dst *image.RGBA, face font.Face, text string, cx, cy int) {
	metrics := face.Metrics()
	advance := font.MeasureString(face, text)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(PlaceholderColor),
		Face: face,
	}
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - advance/2,
		Y: fixed.I(cy) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(text)
}
