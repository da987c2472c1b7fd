package ui

import (
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-converter/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry *widget.Entry
	toolPathEntry    *widget.Entry
	languageSelect   *widget.Select
	autoRevealCheck  *widget.Check

	// display name -> language code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values have been written to preferences.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog builds and shows the dialog in one call
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder(text(KeyChooseFolder))
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.toolPathEntry = widget.NewEntry()
	sd.toolPathEntry.SetPlaceHolder(config.DefaultToolPath)

	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	// Language selection, "system" first then alphabetical by code
	labels := sd.settings.GetLanguageOptions()
	codes := make([]string, 0, len(labels))
	for code := range labels {
		codes = append(codes, code)
	}
	slices.SortFunc(codes, func(a, b string) int {
		if a == config.DefaultLanguage {
			return -1
		}
		if b == config.DefaultLanguage {
			return 1
		}
		return strings.Compare(a, b)
	})
	sd.languageCodes = make(map[string]string, len(codes))
	options := make([]string, 0, len(codes))
	for _, code := range codes {
		sd.languageCodes[labels[code]] = code
		options = append(options, labels[code])
	}
	sd.languageSelect = widget.NewSelect(options, nil)
	sd.languageSelect.PlaceHolder = text(KeySelectLanguage)

	form := container.NewVBox(
		widget.NewLabel(text(KeyDownloadSettings)),
		widget.NewSeparator(),

		widget.NewLabel(text(KeyDownloadDirectory)),
		downloadDirRow,

		widget.NewLabel(text(KeyToolPath)),
		sd.toolPathEntry,

		sd.autoRevealCheck,

		widget.NewSeparator(),
		widget.NewLabel(text(KeyInterfaceSettings)),
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

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.toolPathEntry.SetText(sd.settings.GetToolPath())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply writes the form values to preferences
func (sd *SettingsDialog) apply() {
	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	sd.settings.SetToolPath(strings.TrimSpace(sd.toolPathEntry.Text))
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}
