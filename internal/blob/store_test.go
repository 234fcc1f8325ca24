package blob

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestStore_CreateOpenRevoke(t *testing.T) {
	store := NewStore(0)

	url := store.Create([]byte("png-bytes"), "image/png")
	if !strings.HasPrefix(url, Scheme) {
		t.Fatalf("Expected URL with %s prefix, got %s", Scheme, url)
	}
	// blob: + 36 chars for UUID
	if len(url) != len(Scheme)+36 {
		t.Errorf("Expected URL length %d, got %d", len(Scheme)+36, len(url))
	}

	obj, err := store.Open(url)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !bytes.Equal(obj.Data, []byte("png-bytes")) || obj.MediaType != "image/png" {
		t.Errorf("Unexpected object: %+v", obj)
	}

	if !store.Revoke(url) {
		t.Error("Expected first revoke to report true")
	}
	if store.Revoke(url) {
		t.Error("Expected second revoke to report false")
	}
	if _, err := store.Open(url); err == nil {
		t.Error("Expected error opening a revoked URL")
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d", store.Len())
	}
}

func TestStore_UniqueURLs(t *testing.T) {
	store := NewStore(0)
	a := store.Create(nil, "")
	b := store.Create(nil, "")
	if a == b {
		t.Error("Expected different URLs")
	}
	if store.Len() != 2 {
		t.Errorf("Expected 2 live URLs, got %d", store.Len())
	}
}

func TestStore_OpenRejectsForeignURL(t *testing.T) {
	store := NewStore(0)
	if _, err := store.Open("https://cdn.example.com/a.jpg"); err == nil {
		t.Error("Expected error for non-blob URL")
	}
}

func TestStore_TTL(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	url := store.Create([]byte("x"), "text/plain")

	time.Sleep(40 * time.Millisecond)
	if _, err := store.Open(url); err == nil {
		t.Error("Expected expired URL to be gone")
	}
}
