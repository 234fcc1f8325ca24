package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestElementLoader_Load(t *testing.T) {
	page := pngBytes(t, 6, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(page)
	}))
	defer server.Close()

	loader := NewElementLoader(nil, 0)
	src := server.URL + "/page.png"

	resp := waitJob(t, loader.Load(src))
	if resp.Err != nil {
		t.Fatalf("Expected no error, got %v", resp.Err)
	}
	if resp.URL != src {
		t.Errorf("Expected element URL to be the source, got %q", resp.URL)
	}
	if resp.Bitmap == nil {
		t.Error("Expected decoded bitmap")
	}
}

func TestElementLoader_Cancel(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := blockingServer(pngBytes(t, 1, 1), release, &hits)
	defer server.Close()
	defer close(release)

	loader := NewElementLoader(nil, 0)
	job := loader.Load(server.URL + "/slow.png")
	job.Cancel()

	resp := waitJob(t, job)
	if !errors.Is(resp.Err, ErrCanceled) {
		t.Errorf("Expected ErrCanceled, got %v", resp.Err)
	}
}

func TestRequest_Accept(t *testing.T) {
	tests := []struct {
		req      Request
		expected string
	}{
		{Request{ModernImage: true}, AcceptModern},
		{Request{}, AcceptFallback},
		{Request{Type: "image/jpeg"}, "image/jpeg," + AcceptFallback},
	}

	for _, test := range tests {
		if got := test.req.Accept(); got != test.expected {
			t.Errorf("Accept() = %q, expected %q", got, test.expected)
		}
	}
}
