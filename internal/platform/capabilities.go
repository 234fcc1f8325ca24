package platform

import (
	"fyne.io/fyne/v2"
)

// Capabilities describes what the running environment supports. It is
// resolved once and injected into the loading pipeline.
type Capabilities struct {
	// Worker means page transfers run on the offload dispatcher
	Worker bool
	// Bitmap means replies can carry decoded bitmaps
	Bitmap bool
	// CanvasToBlob means canvases encode directly; otherwise through a data URL
	CanvasToBlob bool
	// ModernImage means WebP can be requested and displayed
	ModernImage bool
	// Mobile means canvas memory is constrained
	Mobile bool
}

// DefaultCapabilities returns the capabilities of a desktop process
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Worker:       true,
		Bitmap:       true,
		CanvasToBlob: true,
		ModernImage:  true,
	}
}

// WithWorker returns the capabilities with the background dispatcher enabled
// or disabled. Without it replies never carry bitmaps.
func (c Capabilities) WithWorker(enabled bool) Capabilities {
	c.Worker = enabled
	if !enabled {
		c.Bitmap = false
	}
	return c
}

// Detect resolves capabilities for a fyne device. A nil device is treated as desktop.
func Detect(device fyne.Device) Capabilities {
	caps := DefaultCapabilities()
	if device != nil {
		caps.Mobile = device.IsMobile()
	}
	return caps
}
