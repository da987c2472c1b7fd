package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/yt-converter/internal/download"
	"github.com/ytget/yt-converter/internal/model"
	"github.com/ytget/yt-converter/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMode               = "last_mode"
	KeyQuality            = "last_quality"
	KeyToolPath           = "tool_path"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMode               = model.ModeVideo
	DefaultQuality            = model.QualityBest
	DefaultToolPath           = download.DefaultTool
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	FallbackDownloadDir       = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMode returns the last selected output mode
func (s *Settings) GetMode() model.Mode {
	mode, err := model.ParseMode(s.app.Preferences().String(KeyMode))
	if err != nil {
		return DefaultMode
	}
	return mode
}

// SetMode remembers the selected output mode
func (s *Settings) SetMode(mode model.Mode) {
	s.app.Preferences().SetString(KeyMode, string(mode))
}

// GetQuality returns the last selected video quality
func (s *Settings) GetQuality() model.Quality {
	raw := s.app.Preferences().String(KeyQuality)
	if raw == "" {
		return DefaultQuality
	}
	quality, err := model.ParseQuality(raw)
	if err != nil {
		return DefaultQuality
	}
	return quality
}

// SetQuality remembers the selected video quality
func (s *Settings) SetQuality(quality model.Quality) {
	s.app.Preferences().SetString(KeyQuality, string(quality))
}

// GetToolPath returns the downloader binary name or path
func (s *Settings) GetToolPath() string {
	return s.app.Preferences().StringWithFallback(KeyToolPath, DefaultToolPath)
}

// SetToolPath sets the downloader binary; empty restores the default
func (s *Settings) SetToolPath(path string) {
	if path == "" {
		path = DefaultToolPath
	}
	s.app.Preferences().SetString(KeyToolPath, path)
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

// GetAutoRevealOnComplete returns whether to open the destination after a successful download
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to open the destination after a successful download
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"tr":     "Türkçe",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
