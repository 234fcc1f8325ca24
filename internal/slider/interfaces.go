package slider

import "github.com/ytget/comic-reader/internal/model"

// Viewport is the layout box the slider is shown in
type Viewport interface {
	// Size returns the current layout size
	Size() (width, height float64)
	// ScrollIntoView brings a slide to the top in top-to-bottom mode
	ScrollIntoView(slide int)
	// ScrollToTop resets the vertical scroll of the current page
	ScrollToTop()
	// OnResize registers fn for size changes and returns a function detaching it
	OnResize(fn func()) (detach func())
}

// Page is notified whenever the reading position changes
type Page interface {
	Provoke(current int)
}

// Callbacks connect the slider to the surrounding reader
type Callbacks struct {
	// OnPageChange receives the reported page, the direction and whether spreads are shown
	OnPageChange func(page int, direction model.Direction, spread bool)
	// OnLastPage decides whether moving past the last slide advances the series
	OnLastPage func(series *model.Series) bool
	// Notify shows a message to the reader
	Notify func(message string)
	// Route opens another chapter of the series
	Route func(chapterID string)
	// Redraw asks the view layer to refresh
	Redraw func()
	// Translate localizes user-facing text
	Translate func(key string) string
}
