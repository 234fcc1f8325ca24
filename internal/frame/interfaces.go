package frame

import "time"

// ID identifies a requested frame callback
type ID uint64

// Timer is a deferred callback that can be stopped before it fires
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call stopped it.
	Stop() bool
}

// Loop defines the main execution context used by the reader core.
type Loop interface {
	// Post runs fn on the loop as soon as possible
	Post(fn func())

	// RequestFrame runs fn on the next display refresh tick
	RequestFrame(fn func()) ID

	// CancelFrame drops a pending frame callback. Unknown or already run ids are ignored.
	CancelFrame(id ID)

	// AfterFunc runs fn on the loop once d has elapsed
	AfterFunc(d time.Duration, fn func()) Timer

	// Await runs fn on the loop once done is closed
	Await(done <-chan struct{}, fn func())
}
