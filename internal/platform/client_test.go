package platform

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestNewHTTPClient_FileURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	if err := os.WriteFile(path, []byte("pixels"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	client := NewHTTPClient()
	resp, err := client.Get("file://" + filepath.ToSlash(path))
	if err != nil {
		t.Fatalf("Failed to get file URL: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "pixels" {
		t.Errorf("Unexpected response %d %q", resp.StatusCode, body)
	}

	missing, err := client.Get("file://" + filepath.ToSlash(filepath.Join(dir, "missing.png")))
	if err != nil {
		t.Fatalf("Failed to get missing file URL: %v", err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for missing file, got %d", missing.StatusCode)
	}
}
