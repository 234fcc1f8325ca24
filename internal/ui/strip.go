package ui

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/ytget/comic-reader/internal/model"
	"github.com/ytget/comic-reader/internal/slider"
)

// StripState is a copy of the slider geometry taken on the session loop
type StripState struct {
	Properties slider.Properties
	PerPage    int
	Direction  model.Direction
	Current    int
	Length     int
}

// CaptureStrip copies the slider geometry. It must run on the session loop.
func CaptureStrip(sl *slider.Slider) StripState {
	return StripState{
		Properties: sl.Properties(),
		PerPage:    sl.PerPage(),
		Direction:  sl.Direction(),
		Current:    sl.CurrentSlide(),
		Length:     sl.Length(),
	}
}

// Placement is the frame of one page inside the strip
type Placement struct {
	Pos  fyne.Position
	Size fyne.Size
}

// PlacePages computes page frames for a viewport of width w and height h.
// Pages laid out horizontally follow the strip margin and offset; in spread
// mode a landscape page after the cover spans both slots.
func PlacePages(state StripState, pages []*model.Page, w, h float32) []Placement {
	out := make([]Placement, len(pages))
	if state.Direction == model.DirectionTTB {
		for i := range pages {
			out[i] = Placement{Pos: fyne.NewPos(0, float32(i)*h), Size: fyne.NewSize(w, h)}
		}
		return out
	}

	perPage := max(state.PerPage, 1)
	slot := w / float32(perPage)
	p := state.Properties
	k := 0
	for i, page := range pages {
		span := 1
		if perPage > 1 && i > 0 && page.IsLandscape() {
			span = 2
		}

		var x float32
		if state.Direction == model.DirectionRTL {
			x = w - float32(p.MarginRight) - float32(k+span)*slot + float32(p.Offset)
		} else {
			x = float32(p.MarginLeft) + float32(k)*slot + float32(p.Offset)
		}
		out[i] = Placement{Pos: fyne.NewPos(x, 0), Size: fyne.NewSize(float32(span)*slot, h)}
		k += span
	}
	return out
}

// Strip is the fyne layout of the page images
type Strip struct {
	viewport *Viewport
	pages    []*model.Page

	mu    sync.Mutex
	state StripState
}

// NewStrip creates the layout of a publication's pages
func NewStrip(viewport *Viewport, pages []*model.Page) *Strip {
	return &Strip{viewport: viewport, pages: pages, state: StripState{PerPage: 1}}
}

// SetState replaces the geometry used by the next layout pass
func (s *Strip) SetState(state StripState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// State returns the geometry of the last SetState
func (s *Strip) State() StripState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Layout implements fyne.Layout
func (s *Strip) Layout(objects []fyne.CanvasObject, _ fyne.Size) {
	w, h := s.viewport.Size()
	frames := PlacePages(s.State(), s.pages, float32(w), float32(h))
	for i, o := range objects {
		if i >= len(frames) {
			break
		}
		o.Move(frames[i].Pos)
		o.Resize(frames[i].Size)
	}
}

// MinSize implements fyne.Layout. Only top-to-bottom mode scrolls.
func (s *Strip) MinSize([]fyne.CanvasObject) fyne.Size {
	if s.State().Direction != model.DirectionTTB {
		return fyne.NewSize(0, 0)
	}
	_, h := s.viewport.Size()
	return fyne.NewSize(0, float32(h)*float32(len(s.pages)))
}
