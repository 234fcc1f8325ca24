package model

import (
	"strings"
)

// Flags carried by a page link
const (
	FlagIsImage = "isImage"
)

// PageProperties holds optional rendering hints of a page
type PageProperties struct {
	Encrypted bool   `json:"encrypted,omitempty"`
	Spread    string `json:"page,omitempty"` // left, right or center
}

// Page represents a single item of the publication spine
type Page struct {
	Href       string          `json:"href"`
	TypeLink   string          `json:"type"`  // media type, e.g. "image/jpeg"
	Title      string          `json:"title"` // optional caption
	Width      int             `json:"width,omitempty"`
	Height     int             `json:"height,omitempty"`
	Properties *PageProperties `json:"properties,omitempty"`
	Flags      []string        `json:"flags,omitempty"`
}

// FindFlag reports whether the page carries the given flag
func (p *Page) FindFlag(flag string) bool {
	for _, f := range p.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// IsImage reports whether the page is a bitmap image. Pages without explicit
// flags are classified by media type.
func (p *Page) IsImage() bool {
	if p.FindFlag(FlagIsImage) {
		return true
	}
	return strings.HasPrefix(p.TypeLink, "image/")
}

// IsEncrypted reports whether the page needs protected rendering
func (p *Page) IsEncrypted() bool {
	return p.Properties != nil && p.Properties.Encrypted
}

// HasDimensions reports whether the intrinsic size of the page is known
func (p *Page) HasDimensions() bool {
	return p.Width > 0 && p.Height > 0
}

// IsLandscape reports whether the page is wider than it is tall
func (p *Page) IsLandscape() bool {
	return p.HasDimensions() && p.Width > p.Height
}

// Publication is a single readable unit (a chapter or a volume)
type Publication struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	RTL    bool    `json:"rtl"`
	Shift  bool    `json:"shift"` // cover stands alone in spread mode
	Spine  []*Page `json:"spine"`
	Series string  `json:"series,omitempty"`
}

// Length returns the number of spine items
func (p *Publication) Length() int {
	return len(p.Spine)
}

// Landscape returns the number of landscape pages that need their own slot in
// spread mode. The first page is excluded because it is laid out alone anyway.
func (p *Publication) Landscape() int {
	n := 0
	for i, page := range p.Spine {
		if i == 0 {
			continue
		}
		if page.IsLandscape() {
			n++
		}
	}
	return n
}

// Zoom is the pinch/zoom state of the current slide
type Zoom struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// DefaultZoom returns the unzoomed state
func DefaultZoom() Zoom {
	return Zoom{Scale: 1}
}

// IsZoomed reports whether the zoom differs from the default
func (z Zoom) IsZoomed() bool {
	return z != DefaultZoom()
}
