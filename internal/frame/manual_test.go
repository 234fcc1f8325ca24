package frame

import (
	"testing"
	"time"
)

func TestManual_FrameOrderAndCancel(t *testing.T) {
	loop := NewManual()

	var calls []string
	loop.RequestFrame(func() { calls = append(calls, "a") })
	id := loop.RequestFrame(func() { calls = append(calls, "b") })
	loop.RequestFrame(func() { calls = append(calls, "c") })
	loop.CancelFrame(id)

	if n := loop.Tick(); n != 2 {
		t.Fatalf("Expected 2 frames to run, got %d", n)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "c" {
		t.Errorf("Unexpected frame calls: %v", calls)
	}
}

func TestManual_NestedFrameRunsNextTick(t *testing.T) {
	loop := NewManual()

	ticks := 0
	loop.RequestFrame(func() {
		loop.RequestFrame(func() { ticks = 2 })
		ticks = 1
	})

	loop.Tick()
	if ticks != 1 {
		t.Fatalf("Expected nested frame to wait for the next tick, ticks=%d", ticks)
	}
	loop.Tick()
	if ticks != 2 {
		t.Errorf("Expected nested frame to run on second tick, ticks=%d", ticks)
	}
}

func TestManual_TimersFireInOrder(t *testing.T) {
	loop := NewManual()

	var calls []int
	loop.AfterFunc(200*time.Millisecond, func() { calls = append(calls, 2) })
	loop.AfterFunc(100*time.Millisecond, func() { calls = append(calls, 1) })
	stopped := loop.AfterFunc(150*time.Millisecond, func() { calls = append(calls, 99) })

	if !stopped.Stop() {
		t.Fatal("Expected Stop to report the timer was pending")
	}
	if stopped.Stop() {
		t.Error("Second Stop should report false")
	}

	loop.Advance(50 * time.Millisecond)
	if len(calls) != 0 {
		t.Fatalf("Expected no timer before deadline, got %v", calls)
	}

	loop.Advance(200 * time.Millisecond)
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("Unexpected timer order: %v", calls)
	}
	if loop.Now() != 250*time.Millisecond {
		t.Errorf("Expected clock at 250ms, got %v", loop.Now())
	}
	if loop.PendingTimers() != 0 {
		t.Errorf("Expected no pending timers, got %d", loop.PendingTimers())
	}
}

func TestManual_Await(t *testing.T) {
	loop := NewManual()
	done := make(chan struct{})

	fired := false
	loop.Await(done, func() { fired = true })

	loop.Flush()
	if fired {
		t.Fatal("Await should not fire before done is closed")
	}

	close(done)
	if !loop.WaitIdle(time.Second) {
		t.Fatal("Expected WaitIdle to observe the closed channel")
	}
	if !fired {
		t.Error("Expected await callback to run")
	}
}
