package fetch

import (
	"image"
)

// Mode selects the operation of a Request
type Mode string

const (
	ModeFetch  Mode = "FETCH"
	ModeCancel Mode = "CANCEL"
)

// Accept header values
const (
	AcceptModern   = "image/webp,image/*,*/*;q=0.8"
	AcceptFallback = "image/*,*/*;q=0.8"
)

// Request is a message sent to the dispatcher
type Request struct {
	Mode        Mode
	Src         string
	Type        string // media type hint for non-image pages
	ModernImage bool   // client can display WebP
	Bitmap      bool   // reply with a decoded bitmap instead of a URL
}

// Accept returns the Accept header for the request
func (r Request) Accept() string {
	if r.ModernImage {
		return AcceptModern
	}
	if r.Type == "" {
		return AcceptFallback
	}
	return r.Type + "," + AcceptFallback
}

// Response is the single reply to a FETCH. Dispatcher replies carry exactly
// one of URL, Bitmap or Err; element loads carry the source URL together with
// the decoded bitmap.
type Response struct {
	Src       string
	URL       string
	Bitmap    image.Image
	MediaType string
	Err       error
}

// OK reports whether the response carries content
func (r Response) OK() bool {
	return r.Err == nil && (r.URL != "" || r.Bitmap != nil)
}
