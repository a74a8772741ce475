package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/deskutils/internal/platform"
)

// Quality presets for downloads
type QualityPreset string

const (
	QualityBest   QualityPreset = "best"
	QualityMedium QualityPreset = "medium"
	QualityAudio  QualityPreset = "audio"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyQualityPreset      = "quality_preset"
	KeyFilenameTemplate   = "filename_template"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyLastRenameDir      = "last_rename_directory"
	KeyRenameStopOnError  = "rename_stop_on_error"
)

// Default values
const (
	DefaultQualityPreset      = QualityBest
	DefaultFilenameTemplate   = "%(title)s.%(ext)s"
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	DefaultRenameStopOnError  = false
)

// FallbackDownloadDir is used when the home directory cannot be resolved
var FallbackDownloadDir = filepath.Join(os.TempDir(), "downloads")

// DefaultDownloadDirectory returns the user's Downloads directory, or
// FallbackDownloadDir when it cannot be determined.
func DefaultDownloadDirectory() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return FallbackDownloadDir
	}
	return dir
}

// Settings manages persisted application configuration
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
		dir = DefaultDownloadDirectory()
		s.SetDownloadDirectory(dir)
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetQualityPreset returns the configured quality preset
func (s *Settings) GetQualityPreset() QualityPreset {
	preset := QualityPreset(s.app.Preferences().String(KeyQualityPreset))
	if !preset.Valid() {
		s.SetQualityPreset(DefaultQualityPreset)
		return DefaultQualityPreset
	}
	return preset
}

// SetQualityPreset sets the quality preset
func (s *Settings) SetQualityPreset(preset QualityPreset) {
	s.app.Preferences().SetString(KeyQualityPreset, string(preset))
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(DefaultFilenameTemplate)
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
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

// GetAutoRevealOnComplete returns whether to reveal finished downloads in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal finished downloads in the file manager
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLastRenameDirectory returns the directory last opened in the renamer, or ""
func (s *Settings) GetLastRenameDirectory() string {
	return s.app.Preferences().String(KeyLastRenameDir)
}

// SetLastRenameDirectory remembers the directory opened in the renamer
func (s *Settings) SetLastRenameDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastRenameDir, dir)
}

// GetRenameStopOnError returns whether a rename pass stops at its first failure
func (s *Settings) GetRenameStopOnError() bool {
	return s.app.Preferences().BoolWithFallback(KeyRenameStopOnError, DefaultRenameStopOnError)
}

// SetRenameStopOnError sets whether a rename pass stops at its first failure
func (s *Settings) SetRenameStopOnError(stop bool) {
	s.app.Preferences().SetBool(KeyRenameStopOnError, stop)
}

// GetQualityPresetOptions returns available quality preset options
func (s *Settings) GetQualityPresetOptions() []QualityPreset {
	return QualityPresets()
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// QualityPresets lists the presets in display order
func QualityPresets() []QualityPreset {
	return []QualityPreset{QualityBest, QualityMedium, QualityAudio}
}

// Valid reports whether p is a known preset
func (p QualityPreset) Valid() bool {
	switch p {
	case QualityBest, QualityMedium, QualityAudio:
		return true
	}
	return false
}
