package reader

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/comic-reader/internal/blob"
	"github.com/ytget/comic-reader/internal/cdn"
	"github.com/ytget/comic-reader/internal/fetch"
	"github.com/ytget/comic-reader/internal/frame"
	"github.com/ytget/comic-reader/internal/loader"
	"github.com/ytget/comic-reader/internal/model"
	"github.com/ytget/comic-reader/internal/platform"
	"github.com/ytget/comic-reader/internal/slider"
)

// CloseTimeout bounds how long Close waits for the loop to tear pages down
const CloseTimeout = 2 * time.Second

// ErrClosed is returned for commands sent to a closed session
var ErrClosed = errors.New("session closed")

// ElementFactory creates the display element of a spine item
type ElementFactory func(index int, page *model.Page) loader.Element

// Options configure a session. Zero values select production defaults.
type Options struct {
	Capabilities platform.Capabilities
	Client       *http.Client
	MaxParallel  int
	FetchTimeout time.Duration
	// BlobTTL expires object URLs that were never revoked; 0 keeps them
	BlobTTL time.Duration

	// Resolver defaults to the manifest base URL
	Resolver cdn.Resolver
	// EvictAll releases every off-screen canvas on mobile, not only protected ones
	EvictAll bool
	DRM      loader.DRMTransform

	Single      bool
	TopToBottom bool
	Translate   func(key string) string
	Footer      string
	Callbacks   slider.Callbacks

	// Loop, Store, Dispatcher and Direct replace the session's own implementations
	Loop       frame.Loop
	Store      *blob.Store
	Dispatcher fetch.Dispatcher
	Direct     fetch.Loader
}

// Session is one reading session of a publication
type Session struct {
	ID string

	loop   frame.Loop
	ticker *frame.Ticker
	store  *blob.Store

	pub      *model.Publication
	series   *model.Series
	elements []loader.Element
	loaders  []*loader.Loader
	slider   *slider.Slider

	closed chan struct{}
}

// boundPage ties a loader to its element for the slider
type boundPage struct {
	loader  *loader.Loader
	element loader.Element
}

// Provoke implements slider.Page
func (p boundPage) Provoke(current int) {
	p.loader.Provoke(p.element, current)
}

// loopViewport delivers resize notifications on the session loop
type loopViewport struct {
	slider.Viewport
	loop frame.Loop
}

// OnResize implements slider.Viewport
func (v loopViewport) OnResize(fn func()) func() {
	return v.Viewport.OnResize(func() { v.loop.Post(fn) })
}

// NewSession builds a session for the manifest. Nothing is fetched before Start.
func NewSession(manifest *platform.Manifest, viewport slider.Viewport, elements ElementFactory, opts Options) (*Session, error) {
	if manifest == nil || manifest.Publication == nil {
		return nil, fmt.Errorf("failed to create session: %w", platform.ErrEmptySpine)
	}
	pub := manifest.Publication

	s := &Session{
		ID:     uuid.NewString(),
		loop:   opts.Loop,
		store:  opts.Store,
		pub:    pub,
		series: manifest.Series,
		closed: make(chan struct{}),
	}
	if s.store == nil {
		s.store = blob.NewStore(opts.BlobTTL)
	}
	if s.loop == nil {
		s.ticker = frame.NewTicker(frame.DefaultFrameInterval)
		s.loop = s.ticker
	}

	resolver := opts.Resolver
	if resolver == nil {
		base, err := cdn.NewBase(manifest.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base url %q: %w", manifest.BaseURL, err)
		}
		resolver = base
	}

	client := opts.Client
	if client == nil {
		client = platform.NewHTTPClient()
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = fetch.NewService(s.store, fetch.Options{
			Client:      client,
			MaxParallel: opts.MaxParallel,
			Timeout:     opts.FetchTimeout,
		})
	}
	direct := opts.Direct
	if direct == nil {
		direct = fetch.NewElementLoader(client, opts.FetchTimeout)
	}

	evict := loader.DRMOnMobile(opts.Capabilities.Mobile)
	if opts.EvictAll {
		evict = loader.AlwaysOnMobile(opts.Capabilities.Mobile)
	}

	env := &loader.Env{
		Loop:         s.loop,
		Resolver:     resolver,
		Dispatcher:   dispatcher,
		Direct:       direct,
		Store:        s.store,
		Capabilities: opts.Capabilities,
		Evict:        evict,
		DRM:          opts.DRM,
		Translate:    opts.Translate,
		Footer:       opts.Footer,
	}

	s.elements = make([]loader.Element, len(pub.Spine))
	s.loaders = make([]*loader.Loader, len(pub.Spine))
	for i, page := range pub.Spine {
		s.loaders[i] = loader.New(page, i, env)
		if elements != nil {
			s.elements[i] = elements(i, page)
		}
	}

	s.slider = slider.New(manifest.Series, pub, slider.Options{
		Loop:        s.loop,
		Viewport:    loopViewport{Viewport: viewport, loop: s.loop},
		Mobile:      opts.Capabilities.Mobile,
		Single:      opts.Single,
		TopToBottom: opts.TopToBottom || manifest.TopToBottom,
		Callbacks:   opts.Callbacks,
	})
	return s, nil
}

// Start runs the loop and provokes the pages around the first slide
func (s *Session) Start() {
	if s.ticker != nil {
		s.ticker.Start()
	}
	s.loop.Post(func() {
		pages := make([]slider.Page, len(s.loaders))
		for i, l := range s.loaders {
			pages[i] = boundPage{loader: l, element: s.elements[i]}
		}
		s.slider.Bind(pages)
		log.Printf("Session %s started: %s, %d pages", s.ID, s.pub.ID, len(pages))
	})
}

// Do runs fn with the slider on the session loop
func (s *Session) Do(fn func(sl *slider.Slider)) error {
	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	s.loop.Post(func() {
		select {
		case <-s.closed:
			return
		default:
		}
		fn(s.slider)
	})
	return nil
}

// Next moves forward by one view
func (s *Session) Next() error {
	return s.Do(func(sl *slider.Slider) { sl.Next(sl.PerPage()) })
}

// Prev moves back by one view
func (s *Session) Prev() error {
	return s.Do(func(sl *slider.Slider) { sl.Prev(sl.PerPage()) })
}

// GoTo jumps to a slide
func (s *Session) GoTo(slide int) error {
	return s.Do(func(sl *slider.Slider) { sl.GoTo(slide) })
}

// ToggleSpread switches between single pages and spreads
func (s *Session) ToggleSpread() error {
	return s.Do(func(sl *slider.Slider) { sl.ToggleSpread() })
}

// SetTTB switches top-to-bottom scrolling
func (s *Session) SetTTB(ttb bool) error {
	return s.Do(func(sl *slider.Slider) { sl.SetTTB(ttb) })
}

// Close tears down the slider and every page, then stops the session's own loop
func (s *Session) Close() {
	select {
	case <-s.closed:
		return
	default:
	}

	done := make(chan struct{})
	s.loop.Post(func() {
		s.slider.Destroy()
		for _, l := range s.loaders {
			l.Release()
		}
		close(done)
	})
	close(s.closed)

	if s.ticker != nil {
		select {
		case <-done:
		case <-time.After(CloseTimeout):
			log.Printf("Session %s: timed out releasing pages", s.ID)
		}
		s.ticker.Stop()
	}
}

// Store returns the object URL registry elements resolve blob URLs with
func (s *Session) Store() *blob.Store {
	return s.store
}

// Loop returns the session loop
func (s *Session) Loop() frame.Loop {
	return s.loop
}

// Loaders returns the page loaders in spine order
func (s *Session) Loaders() []*loader.Loader {
	return s.loaders
}

// Slider returns the position controller. It must only be used on the session loop.
func (s *Session) Slider() *slider.Slider {
	return s.slider
}

// Publication returns the publication being read
func (s *Session) Publication() *model.Publication {
	return s.pub
}

// Series returns the series of the publication, if any
func (s *Session) Series() *model.Series {
	return s.series
}
