package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
)

// Layout sizing
const (
	ViewportMinWidth  float32 = 200
	ViewportMinHeight float32 = 200

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 400

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileButtonHeight float32 = 48
	MobileButtonWidth  float32 = 60
)

// Locations
const (
	ManifestExtension = ".json"
	fileScheme        = "file://"
)
