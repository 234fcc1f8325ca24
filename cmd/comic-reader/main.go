package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/comic-reader/internal/config"
	"github.com/ytget/comic-reader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.comic-reader"
	AppName = "Comic Reader"

	WindowWidth  = 1024
	WindowHeight = 768
)

func main() {
	// Log version information
	fmt.Printf("Comic Reader v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply reader theme
	myApp.Settings().SetTheme(ui.NewReaderTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Settings, overridden by .env.local and the environment
	settings := config.NewSettings(myApp)
	if err := config.ApplyEnv(settings); err != nil {
		fmt.Printf("failed to apply environment overrides: %v\n", err)
	}

	readerUI := ui.NewReaderUI(myWindow, myApp, settings, fmt.Sprintf("%s %s", AppName, version))

	// An optional manifest path or URL opens right away
	if len(os.Args) > 1 {
		readerUI.Open(os.Args[1])
	}

	// Show and run
	myWindow.ShowAndRun()
}
