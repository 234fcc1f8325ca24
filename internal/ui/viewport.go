package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Viewport is the visible box of the page strip. It lays out the scroll
// container it wraps and reports size changes to the slider.
type Viewport struct {
	scroll *container.Scroll

	mu        sync.Mutex
	size      fyne.Size
	listeners map[int]func()
	nextID    int
}

// NewViewport creates a viewport of zero size
func NewViewport() *Viewport {
	return &Viewport{listeners: make(map[int]func())}
}

// Container wraps the scroll container holding the strip and returns the
// fyne object to place in the window
func (v *Viewport) Container(scroll *container.Scroll) *fyne.Container {
	v.mu.Lock()
	v.scroll = scroll
	v.mu.Unlock()
	return container.New(v, scroll)
}

// Layout implements fyne.Layout
func (v *Viewport) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	v.SetSize(size)
}

// MinSize implements fyne.Layout
func (v *Viewport) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(ViewportMinWidth, ViewportMinHeight)
}

// SetSize records the visible size and notifies listeners when it changed
func (v *Viewport) SetSize(size fyne.Size) {
	v.mu.Lock()
	if v.size == size {
		v.mu.Unlock()
		return
	}
	v.size = size
	listeners := make([]func(), 0, len(v.listeners))
	for _, fn := range v.listeners {
		listeners = append(listeners, fn)
	}
	v.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Size implements slider.Viewport
func (v *Viewport) Size() (float64, float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return float64(v.size.Width), float64(v.size.Height)
}

// ScrollIntoView implements slider.Viewport
func (v *Viewport) ScrollIntoView(slide int) {
	scroll, size := v.state()
	if scroll == nil {
		return
	}
	fyne.Do(func() {
		scroll.Offset = fyne.NewPos(0, size.Height*float32(slide))
		scroll.Refresh()
	})
}

// ScrollToTop implements slider.Viewport
func (v *Viewport) ScrollToTop() {
	if scroll, _ := v.state(); scroll != nil {
		fyne.Do(scroll.ScrollToTop)
	}
}

func (v *Viewport) state() (*container.Scroll, fyne.Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scroll, v.size
}

// OnResize implements slider.Viewport
func (v *Viewport) OnResize(fn func()) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.listeners, id)
		v.mu.Unlock()
	}
}
