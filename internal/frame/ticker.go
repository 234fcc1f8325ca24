package frame

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60Hz display refresh
const DefaultFrameInterval = 16 * time.Millisecond

// Ticker is the production Loop: one goroutine draining a task queue and
// running frame callbacks on every tick.
type Ticker struct {
	interval time.Duration

	mu      sync.Mutex
	tasks   []func()
	frames  map[ID]func()
	order   []ID
	nextID  ID
	wake    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewTicker creates a loop ticking frames at the given interval
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Ticker{
		interval: interval,
		frames:   make(map[ID]func()),
		wake:     make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start launches the loop goroutine. Subsequent calls are no-ops.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return
	}
	t.started = true
	go t.run()
}

// Stop terminates the loop and waits for the goroutine to exit
func (t *Ticker) Stop() {
	t.cancel()
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if started {
		<-t.done
	}
}

// Post implements Loop
func (t *Ticker) Post(fn func()) {
	t.mu.Lock()
	t.tasks = append(t.tasks, fn)
	t.mu.Unlock()

	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// RequestFrame implements Loop
func (t *Ticker) RequestFrame(fn func()) ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.frames[id] = fn
	t.order = append(t.order, id)
	return id
}

// CancelFrame implements Loop
func (t *Ticker) CancelFrame(id ID) {
	t.mu.Lock()
	delete(t.frames, id)
	t.mu.Unlock()
}

// AfterFunc implements Loop
func (t *Ticker) AfterFunc(d time.Duration, fn func()) Timer {
	timer := &tickerTimer{}
	timer.t = time.AfterFunc(d, func() {
		t.Post(func() {
			if timer.fire() {
				fn()
			}
		})
	})
	return timer
}

// Await implements Loop
func (t *Ticker) Await(done <-chan struct{}, fn func()) {
	go func() {
		select {
		case <-done:
			t.Post(fn)
		case <-t.ctx.Done():
		}
	}()
}

func (t *Ticker) run() {
	defer close(t.done)

	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-t.wake:
			t.drainTasks()
		case <-tick.C:
			t.drainTasks()
			t.runFrames()
		}
	}
}

func (t *Ticker) drainTasks() {
	for {
		t.mu.Lock()
		tasks := t.tasks
		t.tasks = nil
		t.mu.Unlock()

		if len(tasks) == 0 {
			return
		}
		for _, fn := range tasks {
			fn()
		}
	}
}

// runFrames runs the callbacks registered before this tick. Callbacks
// requested while running are deferred to the next tick.
func (t *Ticker) runFrames() {
	t.mu.Lock()
	order := t.order
	t.order = nil
	batch := make([]func(), 0, len(order))
	for _, id := range order {
		if fn, ok := t.frames[id]; ok {
			batch = append(batch, fn)
			delete(t.frames, id)
		}
	}
	t.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
}

// tickerTimer guards against a fire racing with Stop
type tickerTimer struct {
	mu      sync.Mutex
	t       *time.Timer
	stopped bool
	fired   bool
}

func (tt *tickerTimer) Stop() bool {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if tt.stopped || tt.fired {
		return false
	}
	tt.stopped = true
	tt.t.Stop()
	return true
}

func (tt *tickerTimer) fire() bool {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if tt.stopped {
		return false
	}
	tt.fired = true
	return true
}
