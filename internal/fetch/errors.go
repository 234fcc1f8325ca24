package fetch

import (
	"errors"
	"fmt"
)

// ErrCanceled is reported by jobs that were canceled before completion
var ErrCanceled = errors.New("fetch canceled")

// ErrNoData is reported when a reply carries neither a URL nor a bitmap
var ErrNoData = errors.New("no data received from worker")

// Kind classifies fetch failures
type Kind string

const (
	TransportFailure Kind = "transport"
	DecodeFailure    Kind = "decode"
	TimeoutAmbiguity Kind = "timeout"
)

// Error describes a failed fetch
type Error struct {
	Kind   Kind
	Src    string
	Status int // HTTP status, 0 if the request never completed
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("failed to load item %s, status %d", e.Src, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s failure for %s: %v", e.Kind, e.Src, e.Err)
	default:
		return fmt.Sprintf("%s failure for %s", e.Kind, e.Src)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or "" if err is not an *Error
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
