package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/comic-reader/internal/blob"
	"github.com/ytget/comic-reader/internal/cdn"
	"github.com/ytget/comic-reader/internal/config"
	"github.com/ytget/comic-reader/internal/loader"
	"github.com/ytget/comic-reader/internal/model"
	"github.com/ytget/comic-reader/internal/platform"
	"github.com/ytget/comic-reader/internal/reader"
	"github.com/ytget/comic-reader/internal/slider"
)

// ReaderUI is the main window of the reader
type ReaderUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	parser       *platform.ManifestParserService
	footer       string

	// Toolbar
	prevBtn   *widget.Button
	nextBtn   *widget.Button
	spreadBtn *widget.Button
	ttbCheck  *widget.Check
	pageLabel *widget.Label
	center    *fyne.Container

	mu       sync.Mutex
	session  *reader.Session
	manifest *platform.Manifest
	location string
}

// NewReaderUI creates the main window content. footer names the application
// on page placeholders.
func NewReaderUI(window fyne.Window, app fyne.App, settings *config.Settings, footer string) *ReaderUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &ReaderUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
		parser:       platform.NewManifestParserService(),
		footer:       footer,
	}
	ui.parser.SetTimeout(settings.GetFetchTimeout())

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetOnClosed(ui.closeSession)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *ReaderUI) setupUI() {
	ui.createMenu()

	ui.prevBtn = ui.mobile.CreateMobileButton(ui.localization.GetText(KeyPrevious), ui.onPrev)
	ui.prevBtn.SetIcon(theme.NavigateBackIcon())
	ui.nextBtn = ui.mobile.CreateMobileButton(ui.localization.GetText(KeyNext), ui.onNext)
	ui.nextBtn.SetIcon(theme.NavigateNextIcon())
	ui.spreadBtn = ui.mobile.CreateMobileButton(ui.localization.GetText(KeySpread), ui.onToggleSpread)
	ui.ttbCheck = widget.NewCheck(ui.localization.GetText(KeyTopToBottom), ui.onTopToBottom)
	ui.ttbCheck.SetChecked(ui.settings.GetTopToBottom())

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.pageLabel = widget.NewLabel("")
	ui.pageLabel.Alignment = fyne.TextAlignCenter

	var top fyne.CanvasObject
	logo, err := LoadLogoResource()
	if err == nil {
		icon := widget.NewIcon(logo)
		top = container.NewBorder(nil, nil, container.NewHBox(icon, settingsBtn), container.NewHBox(ui.spreadBtn, ui.ttbCheck), ui.pageLabel)
	} else {
		top = container.NewBorder(nil, nil, settingsBtn, container.NewHBox(ui.spreadBtn, ui.ttbCheck), ui.pageLabel)
	}
	bottom := container.NewGridWithColumns(2, ui.prevBtn, ui.nextBtn)

	ui.center = container.NewStack(widget.NewLabel(""))
	body := container.NewPadded(ui.center)
	if ui.mobile.IsMobileDevice() {
		body = container.NewStack(ui.center)
	}
	ui.window.SetContent(container.NewBorder(top, bottom, nil, nil, body))
	ui.setNavigationEnabled(false)

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *ReaderUI) createMenu() {
	openItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpen), ui.onOpenFile)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), openItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *ReaderUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *ReaderUI) refreshUITexts() {
	ui.prevBtn.SetText(ui.localization.GetText(KeyPrevious))
	ui.nextBtn.SetText(ui.localization.GetText(KeyNext))
	ui.spreadBtn.SetText(ui.localization.GetText(KeySpread))
	ui.ttbCheck.Text = ui.localization.GetText(KeyTopToBottom)
	ui.ttbCheck.Refresh()

	ui.mu.Lock()
	m := ui.manifest
	ui.mu.Unlock()
	if m == nil {
		ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	}
}

// onOpenFile lets the user pick a manifest
func (ui *ReaderUI) onOpenFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		location := rc.URI().Path()
		rc.Close()
		ui.Open(location)
	}, ui.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{ManifestExtension}))
	fd.Show()
}

// Open loads the manifest at location in the background and shows it
func (ui *ReaderUI) Open(location string) {
	go func() {
		log.Printf("Opening manifest: %s", location)
		manifest, err := ui.parser.ParseManifest(context.Background(), location)
		if err != nil {
			log.Printf("Failed to open %s: %v", location, err)
			fyne.Do(func() {
				dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyOpenFailed), err), ui.window)
			})
			return
		}
		fyne.Do(func() {
			if err := ui.show(location, manifest); err != nil {
				log.Printf("Failed to start reading %s: %v", location, err)
				dialog.ShowError(err, ui.window)
			}
		})
	}()
}

// show replaces the current session with one reading manifest
func (ui *ReaderUI) show(location string, manifest *platform.Manifest) error {
	ui.closeSession()

	pub := manifest.Publication
	store := blob.NewStore(0)
	elements := make([]*PageElement, len(pub.Spine))
	objects := make([]fyne.CanvasObject, len(pub.Spine))
	for i, page := range pub.Spine {
		elements[i] = NewPageElement(store, page)
		objects[i] = elements[i].CanvasObject()
	}

	viewport := NewViewport()
	strip := NewStrip(viewport, pub.Spine)
	pages := container.New(strip, objects...)
	scroll := container.NewVScroll(pages)

	opts, err := ui.sessionOptions(manifest, store)
	if err != nil {
		return err
	}

	var session *reader.Session
	opts.Callbacks = slider.Callbacks{
		OnPageChange: func(page int, _ model.Direction, _ bool) {
			ui.onPageChange(pub, page)
		},
		OnLastPage: func(*model.Series) bool { return true },
		Notify: func(message string) {
			fyne.Do(func() {
				dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), message, ui.window)
			})
		},
		Route: func(chapterID string) {
			ui.onRoute(manifest, chapterID)
		},
		Redraw: func() {
			if session == nil {
				return
			}
			state := CaptureStrip(session.Slider())
			fyne.Do(func() {
				strip.SetState(state)
				pages.Refresh()
				scroll.Refresh()
			})
		},
		Translate: ui.localization.GetText,
	}

	session, err = reader.NewSession(manifest, viewport, func(index int, _ *model.Page) loader.Element {
		return elements[index]
	}, opts)
	if err != nil {
		return err
	}

	ui.mu.Lock()
	ui.session = session
	ui.manifest = manifest
	ui.location = location
	ui.mu.Unlock()

	ui.center.Objects = []fyne.CanvasObject{viewport.Container(scroll)}
	ui.center.Refresh()
	ui.setNavigationEnabled(true)
	ui.onPageChange(pub, 1)

	session.Start()
	return nil
}

// sessionOptions maps the settings onto a session configuration
func (ui *ReaderUI) sessionOptions(manifest *platform.Manifest, store *blob.Store) (reader.Options, error) {
	opts := reader.Options{
		Capabilities: platform.Detect(fyne.CurrentDevice()).WithWorker(ui.settings.GetUseWorker()),
		MaxParallel:  ui.settings.GetMaxParallelFetches(),
		FetchTimeout: ui.settings.GetFetchTimeout(),
		EvictAll:     ui.settings.GetEvictAllOnMobile(),
		Single:       !ui.settings.GetSpreadEnabled(),
		TopToBottom:  ui.settings.GetTopToBottom(),
		Translate:    ui.localization.GetText,
		Footer:       ui.footer,
		Store:        store,
	}
	if base := ui.settings.GetCDNBaseURL(); base != "" {
		resolver, err := cdn.NewBase(base)
		if err != nil {
			return opts, fmt.Errorf("invalid CDN base url %q: %w", base, err)
		}
		opts.Resolver = resolver
	}
	return opts, nil
}

// onPageChange updates the page label and title. It may run on the session loop.
func (ui *ReaderUI) onPageChange(pub *model.Publication, page int) {
	total := pub.Length()
	shown := min(max(page, 1), max(total, 1))
	fyne.Do(func() {
		ui.pageLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyPageOf), shown, total))
		title := pub.Title
		if title == "" {
			title = pub.ID
		}
		ui.window.SetTitle(fmt.Sprintf("%s%s%s", title, MiddleDotSeparator, ui.localization.GetText(KeyAppTitle)))
	})
}

// onRoute opens the manifest of another chapter. It runs on the session loop,
// so the switch happens elsewhere.
func (ui *ReaderUI) onRoute(manifest *platform.Manifest, chapterID string) {
	ch := manifest.Series.Chapter(chapterID)
	if ch == nil || ch.Href == "" {
		log.Printf("Chapter %s has no manifest location", chapterID)
		return
	}
	location := manifest.Resolve(ch.Href)
	log.Printf("Advancing to chapter %s: %s", chapterID, location)
	fyne.Do(func() {
		dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeyNextChapter), ui.window)
	})
	ui.Open(location)
}

// currentSession returns the session being read, if any
func (ui *ReaderUI) currentSession() *reader.Session {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.session
}

// closeSession tears down the session being read
func (ui *ReaderUI) closeSession() {
	ui.mu.Lock()
	session := ui.session
	ui.session = nil
	ui.manifest = nil
	ui.mu.Unlock()
	if session != nil {
		session.Close()
	}
}

// command forwards a navigation action to the open session
func (ui *ReaderUI) command(name string, fn func(*reader.Session) error) {
	session := ui.currentSession()
	if session == nil {
		return
	}
	if err := fn(session); err != nil && !errors.Is(err, reader.ErrClosed) {
		log.Printf("Failed to %s: %v", name, err)
	}
}

func (ui *ReaderUI) onPrev() {
	ui.command("go back", (*reader.Session).Prev)
}

func (ui *ReaderUI) onNext() {
	ui.command("go forward", (*reader.Session).Next)
}

func (ui *ReaderUI) onToggleSpread() {
	ui.settings.SetSpreadEnabled(!ui.settings.GetSpreadEnabled())
	ui.command("toggle spread", (*reader.Session).ToggleSpread)
}

func (ui *ReaderUI) onTopToBottom(ttb bool) {
	ui.settings.SetTopToBottom(ttb)
	ui.command("switch scrolling", func(s *reader.Session) error { return s.SetTTB(ttb) })
}

// setNavigationEnabled toggles the controls that need an open publication
func (ui *ReaderUI) setNavigationEnabled(enabled bool) {
	for _, btn := range []*widget.Button{ui.prevBtn, ui.nextBtn, ui.spreadBtn} {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// onShowSettings shows the settings dialog
func (ui *ReaderUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.parser.SetTimeout(ui.settings.GetFetchTimeout())
		ui.refreshUITexts()
		ui.createMenu()

		ui.mu.Lock()
		location := ui.location
		open := ui.session != nil
		ui.mu.Unlock()
		if open {
			ui.Open(location)
		}
	})
}

// Location returns the manifest location being read
func (ui *ReaderUI) Location() string {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.location
}

// Session returns the open session, nil before a manifest is shown
func (ui *ReaderUI) Session() *reader.Session {
	return ui.currentSession()
}
