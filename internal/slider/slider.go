package slider

import (
	"time"

	"github.com/ytget/comic-reader/internal/frame"
	"github.com/ytget/comic-reader/internal/model"
)

// Transition durations of the slide strip
const (
	FastTransition = 150 * time.Millisecond
	SlowTransition = 500 * time.Millisecond
	// ScrollTopDelay lets the new page lay out before scrolling back up
	ScrollTopDelay = 100 * time.Millisecond
)

// Translation keys
const (
	KeyEndOfSeries = "end_of_series"
)

var defaultTexts = map[string]string{
	KeyEndOfSeries: "You've reached the end of this series!",
}

// Options configure a new slider
type Options struct {
	Loop     frame.Loop
	Viewport Viewport
	// Mobile disables sliding on resize, the platform scrolls by itself
	Mobile bool
	// Single starts in single page mode instead of spreads
	Single      bool
	TopToBottom bool
	Callbacks   Callbacks
}

// Properties is the computed style of the slide strip. It is empty in
// top-to-bottom mode.
type Properties struct {
	// Transition is the duration of the move to Offset, 0 for an immediate jump
	Transition  time.Duration
	MarginLeft  float64
	MarginRight float64
	Width       float64
	// Offset is the horizontal translation of the strip
	Offset float64
}

// Slider is the position and viewport controller of a reading session. All
// methods must be called on the session loop.
type Slider struct {
	loop      frame.Loop
	viewport  Viewport
	pub       *model.Publication
	series    *model.Series
	callbacks Callbacks
	mobile    bool

	pages []Page

	currentSlide int
	rtl          bool
	ttb          bool
	spread       bool
	guideHidden  bool

	width      float64
	height     float64
	zoom       model.Zoom
	offset     float64
	properties Properties

	scrollTimer frame.Timer
	detach      func()
	destroyed   bool
}

// New creates a slider at the first slide and subscribes it to viewport resizes
func New(series *model.Series, pub *model.Publication, opts Options) *Slider {
	s := &Slider{
		loop:      opts.Loop,
		viewport:  opts.Viewport,
		pub:       pub,
		series:    series,
		callbacks: opts.Callbacks,
		mobile:    opts.Mobile,
		rtl:       pub.RTL,
		ttb:       opts.TopToBottom,
		spread:    !opts.Single,
		zoom:      model.DefaultZoom(),
	}
	s.ResolveSlidesNumber()
	s.UpdateProperties(true, true)
	s.detach = s.viewport.OnResize(func() { s.ResizeHandler(true, true) })
	return s
}

// Bind sets the pages notified of position changes and provokes them once
func (s *Slider) Bind(pages []Page) {
	s.pages = pages
	s.provokePages()
}

// Destroy detaches the slider from the viewport. Pending deferred moves are dropped.
func (s *Slider) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	if s.scrollTimer != nil {
		s.scrollTimer.Stop()
		s.scrollTimer = nil
	}
}

// ResizeHandler adapts the slider to a new viewport size
func (s *Slider) ResizeHandler(slide, fast bool) {
	// Prevent hiding items when the viewport grows
	if s.currentSlide+s.PerPage() > s.Length() {
		if s.Length() <= s.PerPage() {
			s.currentSlide = 0
		} else {
			s.currentSlide = s.Length() - 1
		}
	}

	s.ResolveSlidesNumber()
	if s.PerPage() > 1 && s.currentSlide%2 != 0 { // A spread never starts on an odd slide
		s.currentSlide--
	}
	s.UpdateProperties(true, true)
	if slide && !s.mobile {
		s.SlideToCurrent(!fast, fast)
	}
	s.redraw()
	s.provokePages()
}

// UpdateProperties measures the viewport and recomputes the strip style
func (s *Slider) UpdateProperties(animate, fast bool) {
	s.width, s.height = s.viewport.Size()
	if s.ttb {
		s.properties = Properties{}
		return
	}

	margin := 0.0
	if s.PerPage() > 1 && s.pub.Shift {
		margin = s.width / 2
	}

	p := Properties{
		Width:  (s.width / float64(s.PerPage())) * float64(s.Length()),
		Offset: s.offset,
	}
	if animate {
		p.Transition = SlowTransition
		if fast {
			p.Transition = FastTransition
		}
	}
	if s.rtl {
		p.MarginRight = margin
	} else {
		p.MarginLeft = margin
	}
	s.properties = p
}

// PerPage returns the number of pages shown side by side
func (s *Slider) PerPage() int {
	if s.spread && !s.Portrait() {
		return 2
	}
	return 1
}

// Portrait reports whether the viewport is taller than wide
func (s *Slider) Portrait() bool {
	w, h := s.viewport.Size()
	return h > w
}

// Single reports whether pages are shown one at a time
func (s *Slider) Single() bool {
	return !s.spread || s.Portrait()
}

// ResolveSlidesNumber recomputes whether spread mode is active
func (s *Slider) ResolveSlidesNumber() {
	s.spread = s.spread && s.pub.Length() > 0
}

// Length returns the number of logical slides. In spread mode landscape
// pages take a slot of their own, and a shifted layout keeps the count odd
// so the cover stays alone.
func (s *Slider) Length() int {
	if s.Single() {
		return s.pub.Length()
	}
	total := s.pub.Length() + s.pub.Landscape()
	if s.pub.Shift && total%2 == 0 {
		return total + 1
	}
	return total
}

// Direction returns the reading direction
func (s *Slider) Direction() model.Direction {
	if s.ttb {
		return model.DirectionTTB
	}
	if s.rtl {
		return model.DirectionRTL
	}
	return model.DirectionLTR
}

// ToggleSpread switches between single pages and spreads, keeping the reading position
func (s *Slider) ToggleSpread() {
	if s.Single() {
		s.spread = true
		s.currentSlide++
		if s.currentSlide%2 != 0 { // Prevent getting out of track
			s.Prev(1)
		}
	} else {
		s.spread = false
		if s.currentSlide > 1 {
			s.currentSlide--
		}
	}
	s.ResizeHandler(true, true)
}

// SetTTB switches top-to-bottom scrolling on or off
func (s *Slider) SetTTB(ttb bool) {
	if s.ttb == ttb {
		return
	}
	s.ttb = ttb
	s.ResizeHandler(true, true)
}

// Next moves forward by n slides. At the end of the publication it hands
// over to the series instead.
func (s *Slider) Next(n int) {
	// Nothing to slide
	if s.pub.Length() <= s.PerPage() {
		return
	}

	before := s.currentSlide
	s.currentSlide = min(s.currentSlide+n, s.Length()-1)
	if s.PerPage() > 1 && s.currentSlide%2 != 0 {
		s.currentSlide--
	}

	// Already showing the last slide and trying to go further
	if s.currentSlide == before && s.currentSlide+s.PerPage() >= s.Length() {
		s.onLastPage()
	}

	if before != s.currentSlide {
		s.SlideToCurrent(true, true)
		s.onChange()
	}
}

// Prev moves back by n slides
func (s *Slider) Prev(n int) {
	if s.pub.Length() <= s.PerPage() {
		return
	}

	before := s.currentSlide
	s.currentSlide = max(s.currentSlide-n, 0)
	if s.PerPage() > 1 && s.currentSlide%2 != 0 {
		s.currentSlide++
	}

	if before != s.currentSlide {
		s.SlideToCurrent(true, true)
		s.onChange()
	}
}

// GoTo jumps to a slide. Odd slides in spread mode snap forward and out of
// range indices are clamped.
func (s *Slider) GoTo(index int) {
	if s.pub.Length() <= s.PerPage() {
		return
	}
	if index%2 != 0 && !s.Single() { // Prevent getting out of track
		index++
	}

	before := s.currentSlide
	s.currentSlide = min(max(index, 0), s.Length()-1)
	if before != s.currentSlide {
		s.SlideToCurrent(false, true)
		s.onChange()
	}
}

// SlideToCurrent moves the strip to the current slide. Animated moves wait
// two frames so the renderer sees the new offset as a separate step.
func (s *Slider) SlideToCurrent(animated, fast bool) {
	if s.ttb {
		s.afterTwoFrames(func() {
			s.viewport.ScrollIntoView(s.currentSlide)
			s.redraw()
		})
		return
	}

	if s.Single() {
		// Scroll back to top for next page
		if s.scrollTimer != nil {
			s.scrollTimer.Stop()
		}
		s.scrollTimer = s.loop.AfterFunc(ScrollTopDelay, func() {
			s.scrollTimer = nil
			if !s.destroyed {
				s.viewport.ScrollToTop()
			}
		})
	}

	offset := -1.0
	if s.rtl {
		offset = 1.0
	}
	offset *= float64(s.currentSlide) * (s.width / float64(s.PerPage()))

	if !animated {
		s.offset = offset
		s.UpdateProperties(false, true)
		s.redraw()
		return
	}
	s.afterTwoFrames(func() {
		s.offset = offset
		s.UpdateProperties(true, fast)
		s.redraw()
	})
}

func (s *Slider) afterTwoFrames(fn func()) {
	s.loop.RequestFrame(func() {
		s.loop.RequestFrame(func() {
			if !s.destroyed {
				fn()
			}
		})
	})
}

func (s *Slider) onChange() {
	s.guideHidden = true
	s.zoom = model.DefaultZoom()
	s.redraw()
	if s.callbacks.OnPageChange != nil {
		page := s.currentSlide
		if s.Single() {
			page++
		}
		s.callbacks.OnPageChange(page, s.Direction(), !s.Single())
	}
	s.provokePages()
}

func (s *Slider) onLastPage() {
	if s.callbacks.OnLastPage == nil || !s.callbacks.OnLastPage(s.series) {
		return
	}

	next := s.series.Next()
	if next == nil { // No more chapters left
		if s.callbacks.Notify != nil {
			s.callbacks.Notify(s.translate(KeyEndOfSeries))
		}
		return
	}
	if s.callbacks.Route != nil {
		s.callbacks.Route(next.ID)
	}
}

// provokePages reports the page under the current slide to every page
func (s *Slider) provokePages() {
	current := s.CurrentPage()
	for _, p := range s.pages {
		p.Provoke(current)
	}
}

func (s *Slider) redraw() {
	if s.callbacks.Redraw != nil {
		s.callbacks.Redraw()
	}
}

func (s *Slider) translate(key string) string {
	if s.callbacks.Translate != nil {
		return s.callbacks.Translate(key)
	}
	if text, found := defaultTexts[key]; found {
		return text
	}
	return key
}

// CurrentSlide returns the current logical slide
func (s *Slider) CurrentSlide() int {
	return s.currentSlide
}

// CurrentPage returns the spine index closest to the current slide
func (s *Slider) CurrentPage() int {
	if s.pub.Length() == 0 {
		return 0
	}
	return min(s.currentSlide, s.pub.Length()-1)
}

// Properties returns the last computed strip style
func (s *Slider) Properties() Properties {
	return s.properties
}

// Zoom returns the zoom of the current slide
func (s *Slider) Zoom() model.Zoom {
	return s.zoom
}

// SetZoom replaces the zoom of the current slide. A non-positive scale resets it.
func (s *Slider) SetZoom(z model.Zoom) {
	if z.Scale <= 0 {
		z = model.DefaultZoom()
	}
	s.zoom = z
	s.redraw()
}

// GuideHidden reports whether the navigation guide was dismissed by a page change
func (s *Slider) GuideHidden() bool {
	return s.guideHidden
}

// Publication returns the publication being read
func (s *Slider) Publication() *model.Publication {
	return s.pub
}

// Series returns the series of the publication
func (s *Slider) Series() *model.Series {
	return s.series
}
