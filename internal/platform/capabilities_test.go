package platform

import "testing"

func TestCapabilities_WithWorker(t *testing.T) {
	caps := DefaultCapabilities()

	direct := caps.WithWorker(false)
	if direct.Worker || direct.Bitmap {
		t.Errorf("Expected direct loading without bitmaps, got %+v", direct)
	}
	if !direct.CanvasToBlob || !direct.ModernImage {
		t.Errorf("Expected other capabilities to be kept, got %+v", direct)
	}
	if !caps.Worker {
		t.Error("Expected the receiver to stay unchanged")
	}

	if got := direct.WithWorker(true); !got.Worker {
		t.Errorf("Expected worker to be enabled again, got %+v", got)
	}
}

func TestDetect_NilDevice(t *testing.T) {
	if got := Detect(nil); got != DefaultCapabilities() {
		t.Errorf("Expected desktop capabilities, got %+v", got)
	}
}
