package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Language codes
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangTurkish = "tr"
	LangRussian = "ru"
	LangPortug  = "pt"

	FallbackLanguage = LangEnglish
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyDownload            = "download"
	KeyCancel              = "cancel"
	KeySettings            = "settings"
	KeyFile                = "file"
	KeyLanguage            = "language"
	KeyURL                 = "url"
	KeyEnterURL            = "enter_url"
	KeyFormat              = "format"
	KeyQuality             = "quality"
	KeyDestination         = "destination"
	KeyChooseFolder        = "choose_folder"
	KeyBrowse              = "browse"
	KeyStatusFormat        = "status_format"
	KeyReady               = "ready"
	KeyStarting            = "starting"
	KeyCompleted           = "completed"
	KeyCancelled           = "cancelled"
	KeyFailedFormat        = "failed_format"
	KeyDone                = "done"
	KeyDownloadCompleted   = "download_completed"
	KeyDownloadFailed      = "download_failed"
	KeyError               = "error"
	KeyPleaseEnterURL      = "please_enter_url"
	KeyPleaseChooseFolder  = "please_choose_folder"
	KeyAlreadyRunning      = "already_running"
	KeyToolMissingTitle    = "tool_missing_title"
	KeyToolMissingFormat   = "tool_missing_format"
	KeyErrorOpeningFolder  = "error_opening_folder"
	KeyDownloadDirectory   = "download_directory"
	KeyToolPath            = "tool_path"
	KeyAutoReveal          = "auto_reveal"
	KeySave                = "save"
	KeySettingsSaved       = "settings_saved"
	KeyDownloadSettings    = "download_settings"
	KeyInterfaceSettings   = "interface_settings"
	KeySelectLanguage      = "select_language"
	KeyErrorCreatingFolder = "error_creating_folder"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: FallbackLanguage,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the OS locale when
// it is translated and English otherwise; unknown codes are ignored.
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = l.systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

func (l *Localization) systemLanguage() string {
	code := strings.ToLower(lang.SystemLocale().LanguageString())
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if _, exists := l.texts[code]; exists {
		return code
	}
	return FallbackLanguage
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[FallbackLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangTurkish: "Türkçe",
		LangRussian: "Русский",
		LangPortug:  "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:            "YouTube MP3/MP4 Converter",
		KeyDownload:            "Download",
		KeyCancel:              "Cancel",
		KeySettings:            "Settings",
		KeyFile:                "File",
		KeyLanguage:            "Language",
		KeyURL:                 "YouTube URL:",
		KeyEnterURL:            "https://www.youtube.com/...",
		KeyFormat:              "Format",
		KeyQuality:             "MP4 Quality:",
		KeyDestination:         "Save to:",
		KeyChooseFolder:        "Choose a folder...",
		KeyBrowse:              "Browse",
		KeyStatusFormat:        "Status: %s",
		KeyReady:               "Ready",
		KeyStarting:            "Starting download...",
		KeyCompleted:           "Completed",
		KeyCancelled:           "Cancelled",
		KeyFailedFormat:        "Failed (exit code %d)",
		KeyDone:                "Done",
		KeyDownloadCompleted:   "Download completed.",
		KeyDownloadFailed:      "Download failed",
		KeyError:               "Error",
		KeyPleaseEnterURL:      "Please enter a YouTube URL.",
		KeyPleaseChooseFolder:  "Please choose a destination folder.",
		KeyAlreadyRunning:      "A download is already running.",
		KeyToolMissingTitle:    "yt-dlp not found",
		KeyToolMissingFormat:   "Could not find %q. Install yt-dlp or set its path in Settings.",
		KeyErrorOpeningFolder:  "Error opening folder",
		KeyDownloadDirectory:   "Default folder:",
		KeyToolPath:            "yt-dlp path:",
		KeyAutoReveal:          "Open folder when finished",
		KeySave:                "Save",
		KeySettingsSaved:       "Settings saved successfully!",
		KeyDownloadSettings:    "Download Settings",
		KeyInterfaceSettings:   "Interface Settings",
		KeySelectLanguage:      "Select language",
		KeyErrorCreatingFolder: "Could not create folder",
	}

	l.texts[LangTurkish] = map[string]string{
		KeyAppTitle:            "YouTube MP3/MP4 İndirici",
		KeyDownload:            "İndir",
		KeyCancel:              "İptal",
		KeySettings:            "Ayarlar",
		KeyFile:                "Dosya",
		KeyLanguage:            "Dil",
		KeyURL:                 "YouTube URL:",
		KeyEnterURL:            "https://www.youtube.com/...",
		KeyFormat:              "Format",
		KeyQuality:             "MP4 Kalitesi:",
		KeyDestination:         "Kaydetme Konumu:",
		KeyChooseFolder:        "Bir klasör seçin...",
		KeyBrowse:              "Gözat",
		KeyStatusFormat:        "Durum: %s",
		KeyReady:               "Hazır",
		KeyStarting:            "İndirme başlatılıyor...",
		KeyCompleted:           "Tamamlandı",
		KeyCancelled:           "İptal edildi",
		KeyFailedFormat:        "Başarısız (çıkış kodu %d)",
		KeyDone:                "Bitti",
		KeyDownloadCompleted:   "İndirme tamamlandı.",
		KeyDownloadFailed:      "İndirme başarısız",
		KeyError:               "Hata",
		KeyPleaseEnterURL:      "Lütfen bir YouTube URL'si girin.",
		KeyPleaseChooseFolder:  "Lütfen bir kaydetme konumu seçin.",
		KeyAlreadyRunning:      "Zaten bir indirme sürüyor.",
		KeyToolMissingTitle:    "yt-dlp bulunamadı",
		KeyToolMissingFormat:   "%q bulunamadı. yt-dlp kurun veya yolunu Ayarlar'da belirtin.",
		KeyErrorOpeningFolder:  "Klasör açılamadı",
		KeyDownloadDirectory:   "Varsayılan klasör:",
		KeyToolPath:            "yt-dlp yolu:",
		KeyAutoReveal:          "Bitince klasörü aç",
		KeySave:                "Kaydet",
		KeySettingsSaved:       "Ayarlar kaydedildi!",
		KeyDownloadSettings:    "İndirme Ayarları",
		KeyInterfaceSettings:   "Arayüz Ayarları",
		KeySelectLanguage:      "Dil seçin",
		KeyErrorCreatingFolder: "Klasör oluşturulamadı",
	}

	l.texts[LangRussian] = map[string]string{
		KeyAppTitle:            "YouTube MP3/MP4 Конвертер",
		KeyDownload:            "Скачать",
		KeyCancel:              "Отмена",
		KeySettings:            "Настройки",
		KeyFile:                "Файл",
		KeyLanguage:            "Язык",
		KeyURL:                 "URL YouTube:",
		KeyEnterURL:            "https://www.youtube.com/...",
		KeyFormat:              "Формат",
		KeyQuality:             "Качество MP4:",
		KeyDestination:         "Сохранить в:",
		KeyChooseFolder:        "Выберите папку...",
		KeyBrowse:              "Обзор",
		KeyStatusFormat:        "Статус: %s",
		KeyReady:               "Готово к работе",
		KeyStarting:            "Запуск загрузки...",
		KeyCompleted:           "Завершено",
		KeyCancelled:           "Отменено",
		KeyFailedFormat:        "Ошибка (код выхода %d)",
		KeyDone:                "Готово",
		KeyDownloadCompleted:   "Загрузка завершена.",
		KeyDownloadFailed:      "Ошибка загрузки",
		KeyError:               "Ошибка",
		KeyPleaseEnterURL:      "Пожалуйста, введите URL YouTube.",
		KeyPleaseChooseFolder:  "Пожалуйста, выберите папку для сохранения.",
		KeyAlreadyRunning:      "Загрузка уже выполняется.",
		KeyToolMissingTitle:    "yt-dlp не найден",
		KeyToolMissingFormat:   "Не удалось найти %q. Установите yt-dlp или укажите путь в Настройках.",
		KeyErrorOpeningFolder:  "Ошибка открытия папки",
		KeyDownloadDirectory:   "Папка по умолчанию:",
		KeyToolPath:            "Путь к yt-dlp:",
		KeyAutoReveal:          "Открыть папку по завершении",
		KeySave:                "Сохранить",
		KeySettingsSaved:       "Настройки успешно сохранены!",
		KeyDownloadSettings:    "Настройки загрузки",
		KeyInterfaceSettings:   "Настройки интерфейса",
		KeySelectLanguage:      "Выберите язык",
		KeyErrorCreatingFolder: "Не удалось создать папку",
	}

	l.texts[LangPortug] = map[string]string{
		KeyAppTitle:            "Conversor YouTube MP3/MP4",
		KeyDownload:            "Baixar",
		KeyCancel:              "Cancelar",
		KeySettings:            "Configurações",
		KeyFile:                "Arquivo",
		KeyLanguage:            "Idioma",
		KeyURL:                 "URL do YouTube:",
		KeyEnterURL:            "https://www.youtube.com/...",
		KeyFormat:              "Formato",
		KeyQuality:             "Qualidade MP4:",
		KeyDestination:         "Salvar em:",
		KeyChooseFolder:        "Escolha uma pasta...",
		KeyBrowse:              "Navegar",
		KeyStatusFormat:        "Status: %s",
		KeyReady:               "Pronto",
		KeyStarting:            "Iniciando download...",
		KeyCompleted:           "Concluído",
		KeyCancelled:           "Cancelado",
		KeyFailedFormat:        "Falhou (código de saída %d)",
		KeyDone:                "Pronto",
		KeyDownloadCompleted:   "Download concluído.",
		KeyDownloadFailed:      "Falha no download",
		KeyError:               "Erro",
		KeyPleaseEnterURL:      "Por favor, digite uma URL do YouTube.",
		KeyPleaseChooseFolder:  "Por favor, escolha uma pasta de destino.",
		KeyAlreadyRunning:      "Um download já está em andamento.",
		KeyToolMissingTitle:    "yt-dlp não encontrado",
		KeyToolMissingFormat:   "Não foi possível encontrar %q. Instale o yt-dlp ou defina o caminho em Configurações.",
		KeyErrorOpeningFolder:  "Erro ao abrir pasta",
		KeyDownloadDirectory:   "Pasta padrão:",
		KeyToolPath:            "Caminho do yt-dlp:",
		KeyAutoReveal:          "Abrir pasta ao concluir",
		KeySave:                "Salvar",
		KeySettingsSaved:       "Configurações salvas com sucesso!",
		KeyDownloadSettings:    "Configurações de Download",
		KeyInterfaceSettings:   "Configurações de Interface",
		KeySelectLanguage:      "Selecione o idioma",
		KeyErrorCreatingFolder: "Não foi possível criar a pasta",
	}
}
