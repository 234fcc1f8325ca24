package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyCDNBaseURL       = "cdn_base_url"
	KeyMaxParallel      = "max_parallel_fetches"
	KeySpreadEnabled    = "spread_enabled"
	KeyTopToBottom      = "top_to_bottom"
	KeyLanguage         = "app_language"
	KeyFetchTimeout     = "fetch_timeout_seconds"
	KeyEvictAllOnMobile = "evict_all_on_mobile"
	KeyUseWorker        = "use_worker"
)

// Default values
const (
	DefaultMaxParallel      = 4
	DefaultSpreadEnabled    = true
	DefaultTopToBottom      = false
	DefaultLanguage         = "system"
	DefaultFetchTimeout     = 30
	DefaultEvictAllOnMobile = false
	DefaultUseWorker        = true
)

// Limits
const (
	MinMaxParallel  = 1
	MaxMaxParallel  = 16
	MinFetchTimeout = 1
	MaxFetchTimeout = 300
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetCDNBaseURL returns the base URL page hrefs resolve against. Empty means
// the location of the manifest.
func (s *Settings) GetCDNBaseURL() string {
	return s.app.Preferences().String(KeyCDNBaseURL)
}

// SetCDNBaseURL sets the CDN base URL
func (s *Settings) SetCDNBaseURL(url string) {
	s.app.Preferences().SetString(KeyCDNBaseURL, url)
}

// GetMaxParallelFetches returns the maximum number of concurrent page transfers
func (s *Settings) GetMaxParallelFetches() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelFetches(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelFetches sets the maximum number of concurrent page transfers
func (s *Settings) SetMaxParallelFetches(count int) {
	if count < MinMaxParallel {
		count = MinMaxParallel
	}
	if count > MaxMaxParallel {
		count = MaxMaxParallel
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetSpreadEnabled returns whether two pages are shown side by side
func (s *Settings) GetSpreadEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeySpreadEnabled, DefaultSpreadEnabled)
}

// SetSpreadEnabled sets whether two pages are shown side by side
func (s *Settings) SetSpreadEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeySpreadEnabled, enabled)
}

// GetTopToBottom returns whether pages scroll vertically
func (s *Settings) GetTopToBottom() bool {
	return s.app.Preferences().BoolWithFallback(KeyTopToBottom, DefaultTopToBottom)
}

// SetTopToBottom sets whether pages scroll vertically
func (s *Settings) SetTopToBottom(ttb bool) {
	s.app.Preferences().SetBool(KeyTopToBottom, ttb)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetFetchTimeout returns the timeout of a single page transfer
func (s *Settings) GetFetchTimeout() time.Duration {
	seconds := s.app.Preferences().Int(KeyFetchTimeout)
	if seconds <= 0 {
		s.SetFetchTimeoutSeconds(DefaultFetchTimeout)
		seconds = DefaultFetchTimeout
	}
	return time.Duration(seconds) * time.Second
}

// SetFetchTimeoutSeconds sets the transfer timeout in seconds
func (s *Settings) SetFetchTimeoutSeconds(seconds int) {
	if seconds < MinFetchTimeout {
		seconds = MinFetchTimeout
	}
	if seconds > MaxFetchTimeout {
		seconds = MaxFetchTimeout
	}
	s.app.Preferences().SetInt(KeyFetchTimeout, seconds)
}

// GetEvictAllOnMobile returns whether every off-screen page releases its canvas on mobile
func (s *Settings) GetEvictAllOnMobile() bool {
	return s.app.Preferences().BoolWithFallback(KeyEvictAllOnMobile, DefaultEvictAllOnMobile)
}

// SetEvictAllOnMobile sets whether every off-screen page releases its canvas on mobile
func (s *Settings) SetEvictAllOnMobile(evict bool) {
	s.app.Preferences().SetBool(KeyEvictAllOnMobile, evict)
}

// GetUseWorker returns whether pages are fetched by the background dispatcher.
// When false every page loads directly into its element.
func (s *Settings) GetUseWorker() bool {
	return s.app.Preferences().BoolWithFallback(KeyUseWorker, DefaultUseWorker)
}

// SetUseWorker sets whether pages are fetched by the background dispatcher
func (s *Settings) SetUseWorker(use bool) {
	s.app.Preferences().SetBool(KeyUseWorker, use)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
