package loader

import (
	"github.com/ytget/comic-reader/internal/fetch"
	"github.com/ytget/comic-reader/internal/render"
)

// Element is the display target of a page
type Element interface {
	// SetSource points the element at a URL; "" clears it
	SetSource(url string)
	Source() string
	// Surface returns the element's own canvas, or nil for image elements
	Surface() *render.Surface
}

// DRMTransform renders protected content in place of direct display. It
// receives the decoded reply and is expected to call Present on the loader.
type DRMTransform func(l *Loader, decoded fetch.Response)

// EvictionPolicy decides whether a loaded, off-screen page gives up its canvas memory
type EvictionPolicy func(l *Loader) bool

// DRMOnMobile evicts protected pages on memory-constrained devices
func DRMOnMobile(mobile bool) EvictionPolicy {
	return func(l *Loader) bool {
		return mobile && l.drm != nil
	}
}

// AlwaysOnMobile evicts every canvas-backed page on memory-constrained devices
func AlwaysOnMobile(mobile bool) EvictionPolicy {
	return func(*Loader) bool {
		return mobile
	}
}

// Never keeps every page in memory
func Never(*Loader) bool {
	return false
}
