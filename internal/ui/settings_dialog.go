package ui

import (
	"slices"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/comic-reader/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	cdnEntry       *widget.Entry
	parallelEntry  *widget.Entry
	timeoutEntry   *widget.Entry
	evictAllCheck  *widget.Check
	workerCheck    *widget.Check
	languageSelect *widget.Select
	languageCodes  map[string]string // label -> code
}

// ShowSettingsDialog opens the settings dialog; onSaved runs after the settings were stored
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.cdnEntry = widget.NewEntry()
	sd.cdnEntry.SetPlaceHolder("https://cdn.example.com/books/")

	sd.parallelEntry = widget.NewEntry()
	sd.parallelEntry.SetPlaceHolder("1-16")

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder("1-300")

	sd.evictAllCheck = widget.NewCheck(text(KeyEvictAll), nil)
	sd.workerCheck = widget.NewCheck(text(KeyUseWorker), nil)

	sd.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, label := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, label)
		sd.languageCodes[label] = code
	}
	slices.Sort(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(text(KeyCDNBaseURL)),
		sd.cdnEntry,

		widget.NewLabel(text(KeyMaxParallel)),
		sd.parallelEntry,

		widget.NewLabel(text(KeyFetchTimeout)),
		sd.timeoutEntry,

		sd.evictAllCheck,
		sd.workerCheck,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.cdnEntry.SetText(sd.settings.GetCDNBaseURL())
	sd.parallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelFetches()))
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetFetchTimeout().Seconds())))
	sd.evictAllCheck.SetChecked(sd.settings.GetEvictAllOnMobile())
	sd.workerCheck.SetChecked(sd.settings.GetUseWorker())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply stores the entered values. Unparsable numbers keep the stored value.
func (sd *SettingsDialog) apply() {
	sd.settings.SetCDNBaseURL(sd.cdnEntry.Text)

	if parallel, err := strconv.Atoi(sd.parallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelFetches(parallel)
	}

	if seconds, err := strconv.Atoi(sd.timeoutEntry.Text); err == nil {
		sd.settings.SetFetchTimeoutSeconds(seconds)
	}

	sd.settings.SetEvictAllOnMobile(sd.evictAllCheck.Checked)
	sd.settings.SetUseWorker(sd.workerCheck.Checked)

	if code, found := sd.languageCodes[sd.languageSelect.Selected]; found {
		sd.settings.SetLanguage(code)
	}
}
