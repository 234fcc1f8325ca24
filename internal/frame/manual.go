package frame

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Loop driven explicitly by its owner. Time only
// moves on Advance and frames only run on Tick.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	tasks  []func()
	frames map[ID]func()
	order  []ID
	nextID ID
	timers []*manualTimer
	awaits []manualAwait
}

type manualTimer struct {
	owner    *Manual
	deadline time.Duration
	seq      uint64
	fn       func()
	stopped  bool
	fired    bool
}

type manualAwait struct {
	done <-chan struct{}
	fn   func()
}

// NewManual creates a manual loop at time zero
func NewManual() *Manual {
	return &Manual{frames: make(map[ID]func())}
}

// Post implements Loop
func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	m.tasks = append(m.tasks, fn)
	m.mu.Unlock()
}

// RequestFrame implements Loop
func (m *Manual) RequestFrame(fn func()) ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.frames[id] = fn
	m.order = append(m.order, id)
	return id
}

// CancelFrame implements Loop
func (m *Manual) CancelFrame(id ID) {
	m.mu.Lock()
	delete(m.frames, id)
	m.mu.Unlock()
}

// AfterFunc implements Loop
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := &manualTimer{owner: m, deadline: m.now + d, seq: uint64(m.nextID), fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Await implements Loop
func (m *Manual) Await(done <-chan struct{}, fn func()) {
	m.mu.Lock()
	m.awaits = append(m.awaits, manualAwait{done: done, fn: fn})
	m.mu.Unlock()
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now returns the elapsed fake time
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// PendingFrames returns the number of frame callbacks waiting for a tick
func (m *Manual) PendingFrames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

// PendingTimers returns the number of timers that have neither fired nor been stopped
func (m *Manual) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Flush runs posted tasks and ready notifications until none are left
func (m *Manual) Flush() {
	for {
		m.mu.Lock()
		tasks := m.tasks
		m.tasks = nil

		var ready []func()
		waiting := m.awaits[:0:0]
		for _, a := range m.awaits {
			select {
			case <-a.done:
				ready = append(ready, a.fn)
			default:
				waiting = append(waiting, a)
			}
		}
		m.awaits = waiting
		m.mu.Unlock()

		if len(tasks) == 0 && len(ready) == 0 {
			return
		}
		for _, fn := range tasks {
			fn()
		}
		for _, fn := range ready {
			fn()
		}
	}
}

// Tick runs one display refresh: every frame callback requested before the
// tick, then anything they posted. It returns the number of frames run.
func (m *Manual) Tick() int {
	m.Flush()

	m.mu.Lock()
	order := m.order
	m.order = nil
	batch := make([]func(), 0, len(order))
	for _, id := range order {
		if fn, ok := m.frames[id]; ok {
			batch = append(batch, fn)
			delete(m.frames, id)
		}
	}
	m.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	m.Flush()
	return len(batch)
}

// Ticks runs n display refreshes
func (m *Manual) Ticks(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Advance moves the fake clock forward, firing due timers in deadline order
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.Flush()

		m.mu.Lock()
		due := m.dueTimers(target)
		if len(due) == 0 {
			m.now = target
			m.mu.Unlock()
			m.Flush()
			return
		}
		next := due[0]
		m.now = next.deadline
		next.fired = true
		m.mu.Unlock()

		next.fn()
	}
}

// WaitIdle blocks until every registered ready notification has fired or the
// timeout elapses, then flushes. It reports whether all notifications fired.
func (m *Manual) WaitIdle(timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		m.Flush()

		m.mu.Lock()
		var first <-chan struct{}
		if len(m.awaits) > 0 {
			first = m.awaits[0].done
		}
		m.mu.Unlock()

		if first == nil {
			return true
		}
		select {
		case <-first:
		case <-deadline:
			m.Flush()
			return false
		}
	}
}

func (m *Manual) dueTimers(target time.Duration) []*manualTimer {
	var due []*manualTimer
	for _, t := range m.timers {
		if !t.stopped && !t.fired && t.deadline <= target {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline == due[j].deadline {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline < due[j].deadline
	})

	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.timers = live
	return due
}
