package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/comic-reader/internal/config"
)

func TestSettingsDialog_Apply(t *testing.T) {
	app := test.NewApp()
	window := test.NewWindow(nil)
	defer window.Close()

	settings := config.NewSettings(app)
	sd := NewSettingsDialog(settings, NewLocalization(), window)
	sd.loadCurrentSettings()

	if sd.parallelEntry.Text != "4" || sd.timeoutEntry.Text != "30" {
		t.Errorf("Expected defaults in the form, got %q and %q", sd.parallelEntry.Text, sd.timeoutEntry.Text)
	}

	sd.cdnEntry.SetText("https://cdn.example.com/")
	sd.parallelEntry.SetText("8")
	sd.timeoutEntry.SetText("not a number")
	sd.evictAllCheck.SetChecked(true)
	sd.workerCheck.SetChecked(false)
	sd.languageSelect.SetSelected("Português")
	sd.apply()

	if settings.GetCDNBaseURL() != "https://cdn.example.com/" {
		t.Errorf("Expected CDN base url saved, got %q", settings.GetCDNBaseURL())
	}
	if settings.GetMaxParallelFetches() != 8 {
		t.Errorf("Expected 8 parallel fetches, got %d", settings.GetMaxParallelFetches())
	}
	if settings.GetFetchTimeout() != 30*time.Second {
		t.Errorf("Expected invalid timeout to keep 30s, got %v", settings.GetFetchTimeout())
	}
	if !settings.GetEvictAllOnMobile() {
		t.Errorf("Expected evict-all to be saved")
	}
	if settings.GetUseWorker() {
		t.Errorf("Expected direct loading to be saved")
	}
	if settings.GetLanguage() != "pt" {
		t.Errorf("Expected language pt, got %s", settings.GetLanguage())
	}
}
