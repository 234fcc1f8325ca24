package fetch

import (
	"errors"
	"testing"

	"github.com/ytget/comic-reader/internal/blob"
)

func TestLocal_DedupAndComplete(t *testing.T) {
	store := blob.NewStore(0)
	local := NewLocal(store)
	local.Serve("a.png", pngBytes(t, 2, 2))

	first := local.Post(Request{Mode: ModeFetch, Src: "a.png"})
	second := local.Post(Request{Mode: ModeFetch, Src: "a.png"})
	if first != second {
		t.Fatal("Expected duplicate FETCH to return the queued job")
	}
	if _, done := first.Result(); done {
		t.Fatal("Expected job to stay in flight until Complete")
	}

	if !local.Complete("a.png") {
		t.Fatal("Expected Complete to finish an in-flight transfer")
	}
	resp, done := first.Result()
	if !done || !blob.IsBlobURL(resp.URL) {
		t.Errorf("Expected blob URL reply, got %+v", resp)
	}
	if local.Complete("a.png") {
		t.Error("Expected nothing in flight after completion")
	}
	if local.Count(ModeFetch, "a.png") != 2 {
		t.Errorf("Expected 2 recorded FETCH messages, got %d", local.Count(ModeFetch, "a.png"))
	}
}

func TestLocal_CancelThenLateComplete(t *testing.T) {
	local := NewLocal(blob.NewStore(0))
	local.Serve("b.png", pngBytes(t, 1, 1))

	job := local.Post(Request{Src: "b.png"})
	local.Post(Request{Mode: ModeCancel, Src: "b.png"})
	local.Post(Request{Mode: ModeCancel, Src: "b.png"})

	resp, done := job.Result()
	if !done || !errors.Is(resp.Err, ErrCanceled) {
		t.Fatalf("Expected canceled job, got %+v", resp)
	}
	if local.Complete("b.png") {
		t.Error("Expected canceled transfer to be forgotten")
	}
}

func TestLocal_UnregisteredAndFailed(t *testing.T) {
	local := NewLocal(blob.NewStore(0))
	local.Fail("bad.png", &Error{Kind: DecodeFailure, Src: "bad.png"})

	missing := local.Post(Request{Src: "missing.png"})
	failed := local.Post(Request{Src: "bad.png"})
	local.CompleteAll()

	if resp, _ := missing.Result(); KindOf(resp.Err) != TransportFailure {
		t.Errorf("Expected transport failure for unregistered source, got %v", resp.Err)
	}
	if resp, _ := failed.Result(); KindOf(resp.Err) != DecodeFailure {
		t.Errorf("Expected registered failure, got %v", resp.Err)
	}
}

func TestLocal_DirectLoad(t *testing.T) {
	local := NewLocal(blob.NewStore(0))
	local.Serve("c.png", pngBytes(t, 2, 3))

	job := local.Load("c.png")
	local.Complete("c.png")

	resp, _ := job.Result()
	if resp.URL != "c.png" || resp.Bitmap == nil {
		t.Errorf("Expected element reply with source URL and bitmap, got %+v", resp)
	}

	canceled := local.Load("c.png")
	canceled.Cancel()
	if resp, _ := canceled.Result(); !errors.Is(resp.Err, ErrCanceled) {
		t.Errorf("Expected canceled direct load, got %v", resp.Err)
	}
}
