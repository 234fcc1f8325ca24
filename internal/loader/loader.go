package loader

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ytget/comic-reader/internal/blob"
	"github.com/ytget/comic-reader/internal/cdn"
	"github.com/ytget/comic-reader/internal/fetch"
	"github.com/ytget/comic-reader/internal/frame"
	"github.com/ytget/comic-reader/internal/model"
	"github.com/ytget/comic-reader/internal/platform"
	"github.com/ytget/comic-reader/internal/render"
)

// Prefetch distances, in pages from the reading position
const (
	LowThreshold  = 3
	HighThreshold = 5
)

// Delays
const (
	// TransitionDelay covers the expected page transition animation
	TransitionDelay = 1000 * time.Millisecond
	// ErrorGrace debounces failures racing with a late success
	ErrorGrace = 1000 * time.Millisecond
)

// Env is shared by every loader of a session
type Env struct {
	Loop         frame.Loop
	Resolver     cdn.Resolver
	Dispatcher   fetch.Dispatcher
	Direct       fetch.Loader
	Store        *blob.Store
	Capabilities platform.Capabilities
	Evict        EvictionPolicy
	DRM          DRMTransform
	Translate    func(key string) string
	// Footer prefixes the placeholder footer, e.g. "Comic Reader 1.0"
	Footer string
}

func (e *Env) translate(key string) string {
	if e.Translate != nil {
		return e.Translate(key)
	}
	if text, found := defaultTexts[key]; found {
		return text
	}
	return key
}

func (e *Env) evict(l *Loader) bool {
	if e.Evict != nil {
		return e.Evict(l)
	}
	return DRMOnMobile(e.Capabilities.Mobile)(l)
}

// Loader manages the image of a single page. All methods must be called on
// the session loop.
type Loader struct {
	env *Env

	original string
	data     *model.Page
	index    int

	state    model.LoadState
	loaded   bool
	reloader bool
	lastErr  error

	blob    string // placeholder object URL shown while loading
	content string // object URL of the loaded page

	drm    DRMTransform
	canvas *render.Surface
	image  Element

	preloader *fetch.Job
	direct    string // source the fallback element displays once loaded

	highTime  frame.Timer
	errorTime frame.Timer
	drawT     frame.ID
}

// New creates the loader of a spine item. No network activity happens yet.
func New(page *model.Page, index int, env *Env) *Loader {
	l := &Loader{
		env:      env,
		original: env.Resolver.Resolve(page, index),
		data:     page,
		index:    index,
		state:    model.LoadStateUnstarted,
	}

	if page.IsEncrypted() && env.DRM != nil {
		l.drm = env.DRM
	} else if page.HasDimensions() {
		l.canvas = render.NewSurface(page.Width, page.Height)
	}
	return l
}

// Provoke re-evaluates the page against the current reading position
func (l *Loader) Provoke(element Element, currentIndex int) {
	l.image = element
	if l.drm != nil && element != nil && element.Surface() != nil {
		l.canvas = element.Surface()
	}

	diff := l.index - currentIndex // Distance of this page from current page
	if diff < 0 {
		diff = -diff
	}
	l.stopTimer(&l.highTime)

	switch {
	// If index of this page close enough to current page index, load now
	case diff <= LowThreshold:
		l.Prepare()

	// If index of page near current page, load after predicted end of transition
	case diff <= HighThreshold:
		l.highTime = l.env.Loop.AfterFunc(TransitionDelay, l.Prepare)

	// Far away, loaded on a canvas and memory is constrained
	case l.loaded && l.canvas != nil && l.env.evict(l):
		l.evict()

	// Still loading but moved away from it in the meantime
	case l.preloader != nil && !l.loaded:
		l.cancel()
	}
}

// Prepare starts loading the page unless a load is already underway
func (l *Loader) Prepare() {
	if l.reloader {
		l.canvas.Resize(l.data.Width, l.data.Height)
		l.reloader = false
	} else if l.preloader != nil {
		return
	}

	if l.state == model.LoadStateErrored {
		l.releaseBlob() // The error placeholder gives way to a loading one
	}
	if !l.loaded {
		l.Draw(Caption(l.env.translate(KeyLoading)))
	}

	var job *fetch.Job
	if l.env.Capabilities.Worker {
		job = l.env.Dispatcher.Post(l.request())
	} else {
		job = l.env.Direct.Load(l.original)
	}

	l.preloader = job
	l.lastErr = nil
	if !l.loaded {
		l.state = model.LoadStatePreloading
	}
	l.env.Loop.Await(job.Done(), func() { l.complete(job) })
}

// request builds the dispatcher message for this page
func (l *Loader) request() fetch.Request {
	req := fetch.Request{Mode: fetch.ModeFetch, Src: l.original}
	if l.data.IsImage() {
		req.ModernImage = l.env.Capabilities.ModernImage
		req.Bitmap = l.drm != nil && l.env.Capabilities.Bitmap
	} else {
		req.Type = l.data.TypeLink
	}
	return req
}

// complete handles the reply of job; replies of jobs that are no longer current are stale
func (l *Loader) complete(job *fetch.Job) {
	if l.preloader != job {
		return
	}
	resp, _ := job.Result()

	if !resp.OK() {
		err := resp.Err
		if err == nil {
			err = fetch.ErrNoData
		}
		if errors.Is(err, fetch.ErrCanceled) {
			return
		}
		l.fail(job, err)
		return
	}

	if l.drm != nil {
		l.drm(l, resp)
		return
	}

	l.loaded = true
	l.state = model.LoadStateLoaded
	if l.env.Capabilities.Worker {
		l.content = resp.URL
		if l.image != nil {
			l.image.SetSource(resp.URL)
		}
	} else {
		l.direct = resp.URL
	}
	l.env.Loop.RequestFrame(l.DrawAsSoon)
}

// fail shows the error placeholder unless the page loads or is canceled within the grace period
func (l *Loader) fail(job *fetch.Job, err error) {
	l.stopTimer(&l.errorTime)
	l.errorTime = l.env.Loop.AfterFunc(ErrorGrace, func() {
		if l.loaded || l.preloader != job {
			return
		}
		log.Printf("Error fetching page %s\n%v", l.original, err)
		l.releaseBlob()
		l.preloader = nil
		l.lastErr = err
		l.state = model.LoadStateErrored
		l.Draw(Caption(l.env.translate(KeyError)))
	})
}

// cancel aborts the in-flight load
func (l *Loader) cancel() {
	if l.env.Capabilities.Worker {
		l.env.Dispatcher.Post(fetch.Request{Mode: fetch.ModeCancel, Src: l.original})
	} else {
		l.preloader.Cancel() // Cancels currently loading image
	}
	l.preloader = nil
	l.stopTimer(&l.errorTime)
	l.state = model.LoadStateUnstarted
}

// evict reclaims canvas memory; the page reloads on demand
func (l *Loader) evict() {
	l.canvas.Clear()
	l.canvas.Resize(0, 0)
	l.loaded = false
	l.reloader = true
	l.state = model.LoadStateUnstarted

	if l.content != "" {
		l.env.Store.Revoke(l.content)
		l.content = ""
		if l.image != nil && l.drm == nil {
			l.image.SetSource("")
		}
	}
}

// Present draws decoded content onto the canvas and marks the page loaded.
// DRM transforms call it once the protected image is ready. It is ignored
// once the load was canceled.
func (l *Loader) Present(img image.Image) {
	if l.preloader == nil || l.state != model.LoadStatePreloading {
		log.Printf("Dropping stale presentation of page %s", l.original)
		return
	}
	if l.canvas != nil && img != nil {
		l.canvas.Clear()
		l.canvas.DrawImage(img)
	}
	l.loaded = true
	l.state = model.LoadStateLoaded
	l.env.Loop.RequestFrame(l.DrawAsSoon)
}

// ToBlob turns the canvas into an object URL shown by the element until the
// page loads. It does nothing once loaded.
func (l *Loader) ToBlob(mediaType string, quality float64) {
	if l.loaded || l.canvas == nil || l.canvas.Empty() {
		return
	}

	var (
		data   []byte
		actual string
		err    error
	)
	if l.env.Capabilities.CanvasToBlob {
		data, actual, err = l.canvas.Encode(mediaType, quality)
	} else {
		var url string
		url, err = l.canvas.DataURL(mediaType, quality)
		if err == nil {
			data, actual, err = render.DecodeDataURL(url)
		}
	}
	if err != nil {
		log.Printf("Failed to convert canvas of page %s: %v", l.original, err)
		return
	}

	l.releaseBlob()
	l.blob = l.env.Store.Create(data, actual)
	if l.image != nil {
		l.image.SetSource(l.blob)
	}
}

// Draw renders content on the next frame, superseding a pending draw
func (l *Loader) Draw(content Content) {
	l.env.Loop.CancelFrame(l.drawT)
	l.drawT = l.env.Loop.RequestFrame(func() {
		l.drawT = 0
		cd := l.canvas
		if cd == nil {
			return
		}

		if cd.Empty() {
			log.Printf("No canvas context!")
		} else {
			cd.Clear()
			if content.Image != nil {
				cd.DrawImage(content.Image)
			} else {
				footer := fmt.Sprintf("%s → %s", l.env.Footer, fileName(l.original))
				if err := cd.DrawPlaceholder(content.Caption, footer); err != nil {
					log.Printf("Failed to draw placeholder for %s: %v", l.original, err)
				}
			}
		}
		l.DrawAsSoon()
	})
}

// DrawAsSoon finalizes display once the page is loaded. Before that it makes
// sure the placeholder is visible; completion of the load calls it again.
func (l *Loader) DrawAsSoon() {
	if l.image == nil {
		return
	}

	if l.loaded {
		if !l.env.Capabilities.Worker && l.drm == nil && l.direct != "" {
			l.image.SetSource(l.direct)
		}
		l.releaseBlob()
		return
	}

	if l.blob != "" || l.drm != nil {
		return
	}
	l.ToBlob("", 0)
}

// Release drops timers, pending frames, the in-flight load and owned URLs
func (l *Loader) Release() {
	l.stopTimer(&l.highTime)
	l.stopTimer(&l.errorTime)
	l.env.Loop.CancelFrame(l.drawT)
	l.drawT = 0

	if l.preloader != nil && !l.loaded {
		l.cancel()
	}
	l.preloader = nil
	l.releaseBlob()
	if l.content != "" {
		l.env.Store.Revoke(l.content)
		l.content = ""
	}
}

// releaseBlob revokes the placeholder URL once
func (l *Loader) releaseBlob() {
	if l.blob == "" {
		return
	}
	l.env.Store.Revoke(l.blob)
	l.blob = ""
}

func (l *Loader) stopTimer(t *frame.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// Preloaded reports whether the page is loaded from a completed job
func (l *Loader) Preloaded() bool {
	return l.loaded && l.preloader != nil
}

// Loaded reports whether the page content is ready
func (l *Loader) Loaded() bool {
	return l.loaded
}

// State returns the load state
func (l *Loader) State() model.LoadState {
	return l.state
}

// Err returns the failure shown by the error placeholder, if any
func (l *Loader) Err() error {
	return l.lastErr
}

// Source returns the resolved image URL
func (l *Loader) Source() string {
	return l.original
}

// Index returns the spine position
func (l *Loader) Index() int {
	return l.index
}

// Page returns the spine item
func (l *Loader) Page() *model.Page {
	return l.data
}

// Canvas returns the page canvas, nil for pages without one
func (l *Loader) Canvas() *render.Surface {
	return l.canvas
}

// Element returns the element last passed to Provoke
func (l *Loader) Element() Element {
	return l.image
}

// PlaceholderURL returns the object URL of the current placeholder, if any
func (l *Loader) PlaceholderURL() string {
	return l.blob
}

// ContentURL returns the object URL of the loaded content, if any
func (l *Loader) ContentURL() string {
	return l.content
}
