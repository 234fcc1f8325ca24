package ui

import (
	"log"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/ytget/comic-reader/internal/blob"
	"github.com/ytget/comic-reader/internal/model"
	"github.com/ytget/comic-reader/internal/render"
)

// PageElement displays one page. It resolves blob URLs against the session
// store, reads file URLs from disk and downloads http(s) URLs in the background.
type PageElement struct {
	store   *blob.Store
	image   *canvas.Image
	surface *render.Surface

	mu      sync.Mutex
	source  string
	version uint64
}

// NewPageElement creates the element of a page. Protected pages get their own
// surface that the loader draws into.
func NewPageElement(store *blob.Store, page *model.Page) *PageElement {
	e := &PageElement{
		store: store,
		image: canvas.NewImageFromResource(nil),
	}
	e.image.FillMode = canvas.ImageFillContain
	e.image.ScaleMode = canvas.ImageScaleSmooth

	if page.IsEncrypted() && page.HasDimensions() {
		e.surface = render.NewSurface(page.Width, page.Height)
		e.surface.SetUpdateCallback(e.onSurfaceUpdate)
	}
	return e
}

// CanvasObject returns the fyne object showing the page
func (e *PageElement) CanvasObject() fyne.CanvasObject {
	return e.image
}

// SetSource implements loader.Element
func (e *PageElement) SetSource(url string) {
	e.mu.Lock()
	e.source = url
	e.version++
	version := e.version
	e.mu.Unlock()

	switch {
	case url == "":
		e.show(nil)

	case blob.IsBlobURL(url):
		obj, err := e.store.Open(url)
		if err != nil {
			log.Printf("Failed to open page object %s: %v", url, err)
			return
		}
		e.show(fyne.NewStaticResource(url, obj.Data))

	case strings.HasPrefix(url, fileScheme):
		res, err := fyne.LoadResourceFromPath(strings.TrimPrefix(url, fileScheme))
		if err != nil {
			log.Printf("Failed to read page %s: %v", url, err)
			return
		}
		e.show(res)

	default:
		go func() {
			res, err := fyne.LoadResourceFromURLString(url)
			if err != nil {
				log.Printf("Failed to download page %s: %v", url, err)
				return
			}
			e.mu.Lock()
			stale := e.version != version
			e.mu.Unlock()
			if stale {
				return
			}
			e.show(res)
		}()
	}
}

// Source implements loader.Element
func (e *PageElement) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Surface implements loader.Element
func (e *PageElement) Surface() *render.Surface {
	return e.surface
}

// show swaps the displayed resource on the fyne thread
func (e *PageElement) show(res fyne.Resource) {
	fyne.Do(func() {
		e.image.Image = nil
		e.image.Resource = res
		e.image.Refresh()
	})
}

// onSurfaceUpdate mirrors the protected surface into the image
func (e *PageElement) onSurfaceUpdate(s *render.Surface) {
	if s.Empty() {
		return
	}
	snap := s.Snapshot()
	fyne.Do(func() {
		e.image.Resource = nil
		e.image.Image = snap
		e.image.Refresh()
	})
}
