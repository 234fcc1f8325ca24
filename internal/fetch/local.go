package fetch

import (
	"sync"

	"github.com/ytget/comic-reader/internal/blob"
)

// Local is an in-process Dispatcher and Loader serving registered payloads.
// Transfers stay in flight until Complete is called, which makes completion
// order explicit.
type Local struct {
	store *blob.Store

	mu       sync.Mutex
	payloads map[string]localPayload
	queued   map[string]*localTransfer
	direct   map[*Job]*localTransfer
	requests []Request
}

type localPayload struct {
	data []byte
	err  error
}

type localTransfer struct {
	job    *Job
	req    Request
	direct bool
}

// NewLocal creates an in-process dispatcher storing URL replies in store
func NewLocal(store *blob.Store) *Local {
	return &Local{
		store:    store,
		payloads: make(map[string]localPayload),
		queued:   make(map[string]*localTransfer),
		direct:   make(map[*Job]*localTransfer),
	}
}

// Serve registers the bytes returned for src
func (l *Local) Serve(src string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.payloads[src] = localPayload{data: data}
}

// Fail registers the error returned for src
func (l *Local) Fail(src string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.payloads[src] = localPayload{err: err}
}

// Post implements Dispatcher
func (l *Local) Post(req Request) *Job {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests = append(l.requests, req)

	if req.Mode == ModeCancel {
		if t, exists := l.queued[req.Src]; exists {
			delete(l.queued, req.Src)
			t.job.finish(Response{Src: req.Src, Err: ErrCanceled})
		}
		return nil
	}

	if t, exists := l.queued[req.Src]; exists {
		return t.job
	}
	t := &localTransfer{job: newJob(req.Src, nil), req: req}
	t.job.abort = func() { l.Post(Request{Mode: ModeCancel, Src: req.Src}) }
	l.queued[req.Src] = t
	return t.job
}

// Load implements Loader
func (l *Local) Load(src string) *Job {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := &localTransfer{job: newJob(src, nil), req: Request{Src: src}, direct: true}
	t.job.abort = func() {
		l.mu.Lock()
		delete(l.direct, t.job)
		l.mu.Unlock()
		t.job.finish(Response{Src: src, Err: ErrCanceled})
	}
	l.direct[t.job] = t
	return t.job
}

// Complete finishes every in-flight transfer for src with its registered
// reply. It reports whether anything was in flight.
func (l *Local) Complete(src string) bool {
	l.mu.Lock()
	var transfers []*localTransfer
	if t, exists := l.queued[src]; exists {
		delete(l.queued, src)
		transfers = append(transfers, t)
	}
	for job, t := range l.direct {
		if job.Src == src {
			delete(l.direct, job)
			transfers = append(transfers, t)
		}
	}
	payload, registered := l.payloads[src]
	l.mu.Unlock()

	for _, t := range transfers {
		t.job.finish(l.reply(t, payload, registered))
	}
	return len(transfers) > 0
}

// CompleteAll finishes every in-flight transfer and returns how many there were
func (l *Local) CompleteAll() int {
	l.mu.Lock()
	srcs := make(map[string]bool)
	for src := range l.queued {
		srcs[src] = true
	}
	for job := range l.direct {
		srcs[job.Src] = true
	}
	l.mu.Unlock()

	n := 0
	for src := range srcs {
		if l.Complete(src) {
			n++
		}
	}
	return n
}

// IsQueued reports whether a dispatcher transfer for src is in flight
func (l *Local) IsQueued(src string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.queued[src]
	return exists
}

// Requests returns every message posted so far
func (l *Local) Requests() []Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Request(nil), l.requests...)
}

// Count returns how many messages of the given mode were posted for src
func (l *Local) Count(mode Mode, src string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, req := range l.requests {
		if req.Mode == mode && req.Src == src {
			n++
		}
	}
	return n
}

func (l *Local) reply(t *localTransfer, payload localPayload, registered bool) Response {
	src := t.req.Src
	if !registered {
		return Response{Src: src, Err: &Error{Kind: TransportFailure, Src: src, Status: 404}}
	}
	if payload.err != nil {
		return Response{Src: src, Err: payload.err}
	}

	if t.direct || t.req.Bitmap {
		img, mediaType, err := DecodeImage(payload.data)
		if err != nil {
			return Response{Src: src, Err: &Error{Kind: DecodeFailure, Src: src, Err: err}}
		}
		if t.direct {
			return Response{Src: src, URL: src, Bitmap: img, MediaType: mediaType}
		}
		return Response{Src: src, Bitmap: img, MediaType: mediaType}
	}

	mediaType := DetectType(payload.data)
	return Response{Src: src, URL: l.store.Create(payload.data, mediaType), MediaType: mediaType}
}
