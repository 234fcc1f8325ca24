package ui

// Package ui contains the Fyne-based desktop user interface of the reader.
// It shows the pages of a reading session in a strip laid out from the
// slider geometry, forwards toolbar actions to the session and hosts the
// settings dialog. All UI strings are localized via Localization.
