package fetch

import (
	"context"
	"net/http"
	"time"
)

// ElementLoader loads an image directly, the way a display element does when
// given a source. It does not deduplicate; each Load is an independent job
// that is canceled by clearing it.
type ElementLoader struct {
	client  *http.Client
	timeout time.Duration
}

// NewElementLoader creates a fallback loader
func NewElementLoader(client *http.Client, timeout time.Duration) *ElementLoader {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ElementLoader{client: client, timeout: timeout}
}

// Load implements Loader. The reply URL is the source itself, since the
// element displays the original resource once it has loaded.
func (l *ElementLoader) Load(src string) *Job {
	ctx, cancel := context.WithCancel(context.Background())
	job := newJob(src, nil)
	job.abort = func() {
		cancel()
		job.finish(Response{Src: src, Err: ErrCanceled})
	}

	go func() {
		defer cancel()
		job.finish(l.load(ctx, src))
	}()
	return job
}

func (l *ElementLoader) load(ctx context.Context, src string) Response {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	data, err := get(ctx, l.client, Request{Src: src})
	if err != nil {
		return Response{Src: src, Err: err}
	}

	img, mediaType, err := DecodeImage(data)
	if err != nil {
		return Response{Src: src, Err: &Error{Kind: DecodeFailure, Src: src, Err: err}}
	}
	return Response{Src: src, URL: src, Bitmap: img, MediaType: mediaType}
}
