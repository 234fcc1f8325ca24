package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ytget/comic-reader/internal/blob"
)

// Defaults for the dispatcher
const (
	DefaultMaxParallel = 4
	DefaultTimeout     = 30 * time.Second
)

// Options configures a Service
type Options struct {
	Client      *http.Client
	MaxParallel int
	Timeout     time.Duration
}

// Service is the offload fetch worker. It tracks queued sources privately;
// callers only talk to it through Post, Fetch and Cancel.
type Service struct {
	client  *http.Client
	store   *blob.Store
	sem     *semaphore.Weighted
	timeout time.Duration

	queuedMutex sync.Mutex
	queued      map[string]*queueElement
}

// queueElement is a tracked transfer
type queueElement struct {
	job    *Job
	cancel context.CancelFunc
}

// NewService creates a dispatcher storing URL replies in store
func NewService(store *blob.Store, opts Options) *Service {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = DefaultMaxParallel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{
		client:  opts.Client,
		store:   store,
		sem:     semaphore.NewWeighted(int64(opts.MaxParallel)),
		timeout: opts.Timeout,
		queued:  make(map[string]*queueElement),
	}
}

// Post implements Dispatcher
func (s *Service) Post(req Request) *Job {
	switch req.Mode {
	case ModeCancel:
		s.Cancel(req.Src)
		return nil
	default:
		return s.Fetch(req)
	}
}

// Fetch starts a transfer for req.Src. If the source is already queued the
// existing job is returned and nothing new is started.
func (s *Service) Fetch(req Request) *Job {
	s.queuedMutex.Lock()
	defer s.queuedMutex.Unlock()

	if item, exists := s.queued[req.Src]; exists {
		return item.job
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := newJob(req.Src, nil)
	job.abort = func() { s.cancelJob(job) }
	s.queued[req.Src] = &queueElement{job: job, cancel: cancel}

	go func() {
		defer cancel()
		s.run(ctx, job, req)
	}()
	return job
}

// Cancel aborts the transfer for src and forgets it. Unknown sources are ignored.
func (s *Service) Cancel(src string) {
	s.queuedMutex.Lock()
	item, exists := s.queued[src]
	if exists {
		delete(s.queued, src)
	}
	s.queuedMutex.Unlock()

	if exists {
		item.abort()
	}
}

// cancelJob cancels job only if it is still the tracked transfer for its source
func (s *Service) cancelJob(job *Job) {
	s.queuedMutex.Lock()
	item, exists := s.queued[job.Src]
	if exists && item.job == job {
		delete(s.queued, job.Src)
	} else {
		exists = false
	}
	s.queuedMutex.Unlock()

	if exists {
		item.abort()
	}
}

func (e *queueElement) abort() {
	e.cancel()
	e.job.finish(Response{Src: e.job.Src, Err: ErrCanceled})
}

// IsQueued reports whether a transfer for src is in flight
func (s *Service) IsQueued(src string) bool {
	s.queuedMutex.Lock()
	defer s.queuedMutex.Unlock()
	_, exists := s.queued[src]
	return exists
}

// Pending returns the number of in-flight transfers
func (s *Service) Pending() int {
	s.queuedMutex.Lock()
	defer s.queuedMutex.Unlock()
	return len(s.queued)
}

// run performs the transfer and publishes the reply unless the job was canceled meanwhile
func (s *Service) run(ctx context.Context, job *Job, req Request) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return // canceled while waiting for a slot
	}
	defer s.sem.Release(1)

	resp := s.transfer(ctx, req)

	if !s.dequeue(job) {
		// Stop because canceled
		if resp.URL != "" {
			s.store.Revoke(resp.URL)
		}
		return
	}
	job.finish(resp)
}

func (s *Service) transfer(ctx context.Context, req Request) Response {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := get(ctx, s.client, req)
	if err != nil {
		return Response{Src: req.Src, Err: err}
	}

	if req.Bitmap {
		img, mediaType, err := DecodeImage(data)
		if err != nil {
			return Response{Src: req.Src, Err: &Error{Kind: DecodeFailure, Src: req.Src, Err: err}}
		}
		return Response{Src: req.Src, Bitmap: img, MediaType: mediaType}
	}

	mediaType := DetectType(data)
	return Response{Src: req.Src, URL: s.store.Create(data, mediaType), MediaType: mediaType}
}

// get performs the HTTP transfer of a request
func get(ctx context.Context, client *http.Client, req Request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.Src, nil)
	if err != nil {
		return nil, &Error{Kind: TransportFailure, Src: req.Src, Err: err}
	}
	httpReq.Header.Set("Accept", req.Accept())

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, classify(ctx, req.Src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{Kind: TransportFailure, Src: req.Src, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(ctx, req.Src, err)
	}
	return data, nil
}

func (s *Service) dequeue(job *Job) bool {
	s.queuedMutex.Lock()
	defer s.queuedMutex.Unlock()
	item, exists := s.queued[job.Src]
	if !exists || item.job != job {
		return false
	}
	delete(s.queued, job.Src)
	return true
}

// classify maps a transport error to a failure kind
func classify(ctx context.Context, src string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Kind: TimeoutAmbiguity, Src: src, Err: err}
	case errors.Is(ctx.Err(), context.Canceled):
		return ErrCanceled
	default:
		log.Printf("Transfer failed for %s: %v", src, err)
		return &Error{Kind: TransportFailure, Src: src, Err: fmt.Errorf("request failed: %w", err)}
	}
}
