package model

// LoadState represents the fetch lifecycle of a single page image
type LoadState string

const (
	// LoadStateUnstarted means nothing is in flight and nothing is displayed
	LoadStateUnstarted LoadState = "Unstarted"

	// LoadStatePreloading means a fetch job is in flight
	LoadStatePreloading LoadState = "Preloading"

	// LoadStateLoaded means the page content is ready for display
	LoadStateLoaded LoadState = "Loaded"

	// LoadStateErrored means the last attempt failed and the error placeholder is shown
	LoadStateErrored LoadState = "Errored"
)

// String returns the string representation of LoadState
func (ls LoadState) String() string {
	return string(ls)
}

// IsActive returns true while a fetch is outstanding
func (ls LoadState) IsActive() bool {
	return ls == LoadStatePreloading
}

// IsFinished returns true if the last attempt concluded (loaded or errored)
func (ls LoadState) IsFinished() bool {
	return ls == LoadStateLoaded || ls == LoadStateErrored
}

// CanStart returns true if a new fetch may be started from this state
func (ls LoadState) CanStart() bool {
	return ls == LoadStateUnstarted || ls == LoadStateErrored
}

// Direction is the reading direction of the slider
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
	DirectionTTB Direction = "ttb"
)

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}
