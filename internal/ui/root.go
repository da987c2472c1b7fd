package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-converter/internal/config"
	"github.com/ytget/yt-converter/internal/download"
	"github.com/ytget/yt-converter/internal/logging"
	"github.com/ytget/yt-converter/internal/model"
	"github.com/ytget/yt-converter/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization
	logger       zerolog.Logger

	urlLabel      *widget.Label
	urlEntry      *widget.Entry
	formatCard    *widget.Card
	modeRadio     *widget.RadioGroup
	qualityLabel  *widget.Label
	qualitySelect *widget.Select
	destLabel     *widget.Label
	destEntry     *widget.Entry
	browseBtn     *widget.Button
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	downloadBtn   *widget.Button
	cancelBtn     *widget.Button

	// ID of the job whose events are being rendered; only touched on the UI goroutine
	currentJob string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
		logger:       logging.For("ui"),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.downloadSvc.SetUpdateCallback(ui.onJobUpdate)

	ui.setupUI()
	ui.logger.Debug().Str("op", "ui/init").Msg("UI setup completed")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	text := ui.localization.GetText

	ui.createMenu()

	ui.urlLabel = widget.NewLabel(text(KeyURL))
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.modeRadio = widget.NewRadioGroup(modeOptions(), ui.onModeChanged)
	ui.modeRadio.Horizontal = true
	ui.modeRadio.Required = true
	ui.formatCard = widget.NewCard("", text(KeyFormat), ui.modeRadio)

	ui.qualityLabel = widget.NewLabel(text(KeyQuality))
	ui.qualitySelect = widget.NewSelect(qualityOptions(), func(selected string) {
		if quality, err := model.ParseQuality(selected); err == nil {
			ui.settings.SetQuality(quality)
		}
	})

	ui.destLabel = widget.NewLabel(text(KeyDestination))
	ui.destEntry = widget.NewEntry()
	ui.destEntry.SetPlaceHolder(text(KeyChooseFolder))
	ui.browseBtn = widget.NewButton(text(KeyBrowse), ui.onBrowseFolder)
	destRow := container.NewBorder(nil, nil, nil, ui.browseBtn, ui.destEntry)

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord
	ui.setStatus(text(KeyReady))

	ui.downloadBtn = widget.NewButton(text(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(text(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Disable()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	var header fyne.CanvasObject = container.NewBorder(nil, nil, nil, settingsBtn, ui.urlLabel)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, logoImage, settingsBtn, ui.urlLabel)
	}

	// Restore the last used choices; this also applies the quality toggle
	ui.destEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.qualitySelect.SetSelected(string(ui.settings.GetQuality()))
	ui.modeRadio.SetSelected(modeLabel(ui.settings.GetMode()))

	content := container.NewVBox(
		header,
		ui.urlEntry,
		ui.formatCard,
		ui.qualityLabel,
		ui.qualitySelect,
		ui.destLabel,
		destRow,
		ui.progressBar,
		ui.statusLabel,
		container.NewGridWithColumns(2, ui.cancelBtn, ui.downloadBtn),
	)

	ui.window.SetContent(container.NewPadded(content))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(code)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText

	ui.window.SetTitle(text(KeyAppTitle))
	ui.urlLabel.SetText(text(KeyURL))
	ui.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	ui.formatCard.SetSubTitle(text(KeyFormat))
	ui.qualityLabel.SetText(text(KeyQuality))
	ui.destLabel.SetText(text(KeyDestination))
	ui.destEntry.SetPlaceHolder(text(KeyChooseFolder))
	ui.browseBtn.SetText(text(KeyBrowse))
	ui.downloadBtn.SetText(text(KeyDownload))
	ui.cancelBtn.SetText(text(KeyCancel))
	if ui.currentJob == "" {
		ui.setStatus(text(KeyReady))
	}
}

// onModeChanged enables the quality selector only for video
func (ui *RootUI) onModeChanged(selected string) {
	mode, err := model.ParseMode(selected)
	if err != nil {
		return
	}
	if mode == model.ModeAudio {
		ui.qualitySelect.Disable()
	} else {
		ui.qualitySelect.Enable()
	}
	ui.settings.SetMode(mode)
}

func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.destEntry.SetText(uri.Path())
	}, ui.window)
}

// currentRequest collects the form into a request
func (ui *RootUI) currentRequest() model.DownloadRequest {
	mode, err := model.ParseMode(ui.modeRadio.Selected)
	if err != nil {
		mode = config.DefaultMode
	}
	quality, err := model.ParseQuality(ui.qualitySelect.Selected)
	if err != nil {
		quality = model.QualityBest
	}
	return model.DownloadRequest{
		URL:         ui.urlEntry.Text,
		Mode:        mode,
		Quality:     quality,
		Destination: ui.destEntry.Text,
	}.Normalized()
}

// onDownloadClick validates the form and submits a job
func (ui *RootUI) onDownloadClick() {
	text := ui.localization.GetText

	// Enter in the URL field reaches here even while Download is disabled
	if ui.currentJob != "" {
		ui.showAlreadyRunning()
		return
	}

	req := ui.currentRequest()
	if err := req.Validate(); err != nil {
		ui.showValidationError(err)
		return
	}

	if _, running := ui.downloadSvc.Active(); running {
		ui.showAlreadyRunning()
		return
	}

	if err := platform.CreateDirectoryIfNotExists(req.Destination); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", text(KeyErrorCreatingFolder), err), ui.window)
		return
	}

	job, events, err := ui.downloadSvc.Submit(context.Background(), req)
	if errors.Is(err, download.ErrJobActive) {
		ui.showAlreadyRunning()
		return
	}
	if err != nil {
		ui.logger.Error().Str("op", "ui/submit").Err(err).Msg("Download failed to start")
		ui.setStatus(text(KeyDownloadFailed))
		dialog.ShowError(fmt.Errorf("%s: %w", text(KeyDownloadFailed), err), ui.window)
		return
	}

	ui.logger.Info().Str("op", "ui/submit").Str("job", job.ID).Msg(job.Command)
	ui.settings.SetDownloadDirectory(req.Destination)
	ui.progressBar.SetValue(0)
	ui.setStatus(text(KeyStarting))
	ui.currentJob = job.ID
	ui.setRunning(true)

	go ui.consume(events)
}

// consume drains a job's events and renders them on the UI goroutine
func (ui *RootUI) consume(events <-chan model.Event) {
	for ev := range events {
		fyne.Do(func() {
			ui.handleEvent(ev)
		})
	}
}

// handleEvent renders one event; must run on the UI goroutine
func (ui *RootUI) handleEvent(ev model.Event) {
	if ev.JobID != ui.currentJob {
		return
	}

	switch ev.Kind {
	case model.EventStatus:
		ui.setStatus(ev.Line)
	case model.EventProgress:
		ui.progressBar.SetValue(float64(ev.Percent) / 100)
	case model.EventCompleted:
		ui.currentJob = ""
		ui.setRunning(false)
		ui.onCompleted(ev)
	}
}

// onCompleted reports success only for a clean exit
func (ui *RootUI) onCompleted(ev model.Event) {
	text := ui.localization.GetText
	job, _ := ui.downloadSvc.Get(ev.JobID)

	switch {
	case ev.Succeeded():
		ui.progressBar.SetValue(1)
		ui.setStatus(text(KeyCompleted))
		ui.sendCompletionNotification(job)
		dialog.ShowInformation(text(KeyDone), text(KeyDownloadCompleted), ui.window)

		if ui.settings.GetAutoRevealOnComplete() && job.Request.Destination != "" {
			ui.onRevealFolder(job.Request.Destination)
		}
	case errors.Is(ev.Err, context.Canceled):
		ui.setStatus(text(KeyCancelled))
	default:
		ui.logger.Warn().Str("op", "ui/complete").Str("job", ev.JobID).Int("exit_code", ev.ExitCode).Err(ev.Err).Msg("Download failed")
		ui.setStatus(fmt.Sprintf(text(KeyFailedFormat), ev.ExitCode))
		detail := job.LastLine
		if detail == "" && ev.Err != nil {
			detail = ev.Err.Error()
		}
		dialog.ShowError(errors.New(failureMessage(text(KeyDownloadFailed), detail)), ui.window)
	}
}

func (ui *RootUI) onCancelClick() {
	if ui.currentJob == "" {
		return
	}
	if err := ui.downloadSvc.Cancel(ui.currentJob); err != nil {
		ui.logger.Warn().Str("op", "ui/cancel").Str("job", ui.currentJob).Err(err).Msg("Cancel failed")
	}
}

// onJobUpdate logs job transitions reported by the service
func (ui *RootUI) onJobUpdate(job model.Job) {
	if !job.State.IsFinished() {
		return
	}
	ui.logger.Debug().Str("op", "ui/update").Str("job", job.ID).
		Str("state", job.State.String()).Int("exit_code", job.ExitCode).
		Str("elapsed", job.GetElapsedString()).Msg(job.GetDisplayTitle())
}

func (ui *RootUI) sendCompletionNotification(job model.Job) {
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloadCompleted),
		Content: job.GetDisplayTitle(),
	})
}

func (ui *RootUI) onRevealFolder(dir string) {
	if err := platform.OpenFolder(dir); err != nil {
		ui.logger.Error().Str("op", "ui/reveal").Err(err).Msgf("Error revealing folder %s", dir)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFolder), err), ui.window)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.onLanguageChange(ui.settings.GetLanguage())
		if ui.currentJob == "" {
			ui.destEntry.SetText(ui.settings.GetDownloadDirectory())
		}
		ui.CheckTool()
	})
}

// CheckTool resolves the configured downloader and warns when it is missing
func (ui *RootUI) CheckTool() bool {
	name := ui.settings.GetToolPath()
	path, err := platform.FindTool(name)
	if err != nil {
		ui.logger.Warn().Str("op", "ui/tool").Err(err).Msg("Downloader not found")
		dialog.ShowInformation(
			ui.localization.GetText(KeyToolMissingTitle),
			fmt.Sprintf(ui.localization.GetText(KeyToolMissingFormat), name),
			ui.window,
		)
		return false
	}

	ui.downloadSvc.SetTool(path)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), platform.VersionTimeout)
		defer cancel()
		version, err := platform.ToolVersion(ctx, path)
		if err != nil {
			ui.logger.Warn().Str("op", "ui/tool").Err(err).Msgf("Could not read version of %s", path)
			return
		}
		ui.logger.Info().Str("op", "ui/tool").Msgf("Using %s %s", path, version)
	}()
	return true
}

func (ui *RootUI) showAlreadyRunning() {
	dialog.ShowInformation(ui.localization.GetText(KeyError), ui.localization.GetText(KeyAlreadyRunning), ui.window)
}

func (ui *RootUI) showValidationError(err error) {
	key := KeyError
	switch {
	case errors.Is(err, model.ErrEmptyURL):
		key = KeyPleaseEnterURL
	case errors.Is(err, model.ErrEmptyDestination):
		key = KeyPleaseChooseFolder
	}

	msg := ui.localization.GetText(key)
	if key == KeyError {
		msg = err.Error()
	}
	dialog.ShowInformation(ui.localization.GetText(KeyError), msg, ui.window)
}

func (ui *RootUI) setStatus(line string) {
	ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyStatusFormat), line))
}

// setRunning toggles the controls that must not change mid-job
func (ui *RootUI) setRunning(running bool) {
	if running {
		ui.downloadBtn.Disable()
		ui.cancelBtn.Enable()
		return
	}
	ui.downloadBtn.Enable()
	ui.cancelBtn.Disable()
}

// modeLabel renders a mode as its radio label, e.g. "MP3"
func modeLabel(mode model.Mode) string {
	return strings.ToUpper(string(mode))
}

func modeOptions() []string {
	modes := model.Modes()
	options := make([]string, 0, len(modes))
	for _, mode := range modes {
		options = append(options, modeLabel(mode))
	}
	return options
}

func qualityOptions() []string {
	qualities := model.Qualities()
	options := make([]string, 0, len(qualities))
	for _, quality := range qualities {
		options = append(options, string(quality))
	}
	return options
}

func failureMessage(title, detail string) string {
	if detail == "" {
		return title
	}
	return fmt.Sprintf(FailureDetailFormat, title, detail)
}
