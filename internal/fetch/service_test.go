package fetch

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytget/comic-reader/internal/blob"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func waitJob(t *testing.T, job *Job) Response {
	t.Helper()
	select {
	case <-job.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("Timed out waiting for job %s", job.Src)
	}
	resp, ok := job.Result()
	if !ok {
		t.Fatal("Expected result after Done")
	}
	return resp
}

// blockingServer serves data once release is closed and counts hits
func blockingServer(data []byte, release <-chan struct{}, hits *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		w.Write(data)
	}))
}

func TestService_FetchURL(t *testing.T) {
	data := pngBytes(t, 4, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer server.Close()

	store := blob.NewStore(0)
	service := NewService(store, Options{})

	resp := waitJob(t, service.Fetch(Request{Src: server.URL + "/p1.png"}))
	if resp.Err != nil {
		t.Fatalf("Expected no error, got %v", resp.Err)
	}
	if !blob.IsBlobURL(resp.URL) {
		t.Fatalf("Expected blob URL, got %q", resp.URL)
	}
	if resp.Bitmap != nil {
		t.Error("Expected URL reply without bitmap")
	}
	if resp.MediaType != "image/png" {
		t.Errorf("Expected image/png, got %s", resp.MediaType)
	}

	obj, err := store.Open(resp.URL)
	if err != nil {
		t.Fatalf("Expected stored object, got %v", err)
	}
	if !bytes.Equal(obj.Data, data) {
		t.Error("Stored bytes differ from served bytes")
	}
	if service.Pending() != 0 {
		t.Errorf("Expected empty queue, got %d", service.Pending())
	}
}

func TestService_DuplicateFetchIsDeduplicated(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := blockingServer(pngBytes(t, 2, 2), release, &hits)
	defer server.Close()

	service := NewService(blob.NewStore(0), Options{})
	src := server.URL + "/dup.png"

	first := service.Post(Request{Mode: ModeFetch, Src: src})
	second := service.Post(Request{Mode: ModeFetch, Src: src})
	if first != second {
		t.Fatal("Expected the queued job to be returned for a duplicate FETCH")
	}

	close(release)
	if resp := waitJob(t, first); resp.Err != nil {
		t.Fatalf("Expected no error, got %v", resp.Err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("Expected 1 request, got %d", n)
	}
}

func TestService_CancelInFlight(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := blockingServer(pngBytes(t, 2, 2), release, &hits)
	defer server.Close()
	defer close(release)

	store := blob.NewStore(0)
	service := NewService(store, Options{})
	src := server.URL + "/cancel.png"

	job := service.Fetch(Request{Src: src})
	if !service.IsQueued(src) {
		t.Fatal("Expected source to be queued")
	}

	if got := service.Post(Request{Mode: ModeCancel, Src: src}); got != nil {
		t.Error("Expected CANCEL to return nil")
	}

	resp := waitJob(t, job)
	if !errors.Is(resp.Err, ErrCanceled) {
		t.Errorf("Expected ErrCanceled, got %v", resp.Err)
	}
	if service.IsQueued(src) {
		t.Error("Expected source to be removed from the queue")
	}
	if store.Len() != 0 {
		t.Errorf("Expected no blob for canceled fetch, got %d", store.Len())
	}

	// a new fetch after cancel starts from scratch
	again := service.Fetch(Request{Src: src})
	if again == job {
		t.Error("Expected a fresh job after cancel")
	}
	service.Cancel(src)
}

func TestService_CancelAfterCompletionIsNoop(t *testing.T) {
	page := pngBytes(t, 2, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(page)
	}))
	defer server.Close()

	service := NewService(blob.NewStore(0), Options{})
	src := server.URL + "/done.png"

	job := service.Fetch(Request{Src: src})
	resp := waitJob(t, job)

	service.Cancel(src)
	service.Cancel(src)
	job.Cancel()

	after, _ := job.Result()
	if after.URL != resp.URL || after.Err != nil {
		t.Errorf("Result changed after late cancel: %+v", after)
	}
}

func TestService_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	service := NewService(blob.NewStore(0), Options{})
	src := server.URL + "/missing.png"

	resp := waitJob(t, service.Fetch(Request{Src: src}))

	var fe *Error
	if !errors.As(resp.Err, &fe) {
		t.Fatalf("Expected *Error, got %v", resp.Err)
	}
	if fe.Kind != TransportFailure || fe.Status != http.StatusNotFound {
		t.Errorf("Unexpected error: %+v", fe)
	}
	expected := "failed to load item " + src + ", status 404"
	if fe.Error() != expected {
		t.Errorf("Expected message %q, got %q", expected, fe.Error())
	}
}

func TestService_BitmapReply(t *testing.T) {
	page := pngBytes(t, 3, 5)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/text" {
			w.Write([]byte("definitely not an image"))
			return
		}
		w.Write(page)
	}))
	defer server.Close()

	service := NewService(blob.NewStore(0), Options{})

	resp := waitJob(t, service.Fetch(Request{Src: server.URL + "/img", Bitmap: true}))
	if resp.Err != nil {
		t.Fatalf("Expected no error, got %v", resp.Err)
	}
	if resp.Bitmap == nil || resp.URL != "" {
		t.Fatalf("Expected bitmap-only reply, got %+v", resp)
	}
	if b := resp.Bitmap.Bounds(); b.Dx() != 3 || b.Dy() != 5 {
		t.Errorf("Expected 3x5 bitmap, got %v", b)
	}

	bad := waitJob(t, service.Fetch(Request{Src: server.URL + "/text", Bitmap: true}))
	if KindOf(bad.Err) != DecodeFailure {
		t.Errorf("Expected decode failure, got %v", bad.Err)
	}
}

func TestService_AcceptHeader(t *testing.T) {
	accepts := make(chan string, 2)
	page := pngBytes(t, 1, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accepts <- r.Header.Get("Accept")
		w.Write(page)
	}))
	defer server.Close()

	service := NewService(blob.NewStore(0), Options{})

	waitJob(t, service.Fetch(Request{Src: server.URL + "/a", ModernImage: true}))
	if got := <-accepts; got != AcceptModern {
		t.Errorf("Expected %q, got %q", AcceptModern, got)
	}

	waitJob(t, service.Fetch(Request{Src: server.URL + "/b", Type: "image/avif"}))
	if got := <-accepts; got != "image/avif,"+AcceptFallback {
		t.Errorf("Expected typed accept header, got %q", got)
	}
}

func TestService_Timeout(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := blockingServer(nil, release, &hits)
	defer server.Close()
	defer close(release)

	service := NewService(blob.NewStore(0), Options{Timeout: 50 * time.Millisecond})

	resp := waitJob(t, service.Fetch(Request{Src: server.URL + "/slow"}))
	if KindOf(resp.Err) != TimeoutAmbiguity {
		t.Errorf("Expected timeout failure, got %v", resp.Err)
	}
}

func TestCompleted(t *testing.T) {
	job := Completed(Response{Src: "a", URL: "blob:x"})
	resp, ok := job.Result()
	if !ok || resp.URL != "blob:x" {
		t.Errorf("Expected completed job, got %+v ok=%v", resp, ok)
	}
	job.Cancel()
}
