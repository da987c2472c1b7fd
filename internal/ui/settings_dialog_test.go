package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/yt-converter/internal/config"
)

func TestSettingsDialog_LoadAndApply(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app)
	settings.SetDownloadDirectory("/tmp/start")
	settings.SetLanguage(LangEnglish)
	window := app.NewWindow("test")

	saved := false
	sd := NewSettingsDialog(settings, NewLocalization(), window, func() { saved = true })
	sd.Show()

	if sd.downloadDirEntry.Text != "/tmp/start" {
		t.Errorf("Expected stored directory, got %q", sd.downloadDirEntry.Text)
	}
	if sd.toolPathEntry.Text != config.DefaultToolPath {
		t.Errorf("Expected default tool path, got %q", sd.toolPathEntry.Text)
	}
	if sd.languageSelect.Selected != "English" {
		t.Errorf("Expected English selected, got %q", sd.languageSelect.Selected)
	}

	sd.downloadDirEntry.SetText("  /tmp/music  ")
	sd.toolPathEntry.SetText("")
	sd.autoRevealCheck.SetChecked(true)
	sd.languageSelect.SetSelected("Türkçe")
	sd.onSave(true)

	if !saved {
		t.Error("Expected onSaved callback")
	}
	if got := settings.GetDownloadDirectory(); got != "/tmp/music" {
		t.Errorf("Expected trimmed directory, got %q", got)
	}
	if got := settings.GetToolPath(); got != config.DefaultToolPath {
		t.Errorf("Expected empty tool path to restore default, got %q", got)
	}
	if !settings.GetAutoRevealOnComplete() {
		t.Error("Expected auto-reveal enabled")
	}
	if got := settings.GetLanguage(); got != LangTurkish {
		t.Errorf("Expected language %s, got %q", LangTurkish, got)
	}
}

func TestSettingsDialog_CancelKeepsValues(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app)
	settings.SetDownloadDirectory("/tmp/start")
	sd := NewSettingsDialog(settings, NewLocalization(), app.NewWindow("test"), nil)
	sd.Show()

	sd.downloadDirEntry.SetText("/tmp/other")
	sd.onSave(false)

	if got := settings.GetDownloadDirectory(); got != "/tmp/start" {
		t.Errorf("Expected directory unchanged, got %q", got)
	}
}
