package download

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ytget/deskutils/internal/config"
)

// Request errors
var (
	ErrEmptyURL       = errors.New("please enter a video URL")
	ErrInvalidURL     = errors.New("invalid URL")
	ErrEmptyOutputDir = errors.New("please enter a save directory")
)

// Template placeholders understood in filename templates
const (
	PlaceholderTitle = "%(title)s"
	PlaceholderExt   = "%(ext)s"
	PlaceholderID    = "%(id)s"
)

// Request describes what to download and where
type Request struct {
	URL              string
	OutputDir        string
	FilenameTemplate string // empty means config.DefaultFilenameTemplate
	Quality          config.QualityPreset
}

// Validate checks the request before any work starts
func (r Request) Validate() error {
	if err := ValidateURL(r.URL); err != nil {
		return err
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return ErrEmptyOutputDir
	}
	return nil
}

// OutputTemplate returns the full output path template
func (r Request) OutputTemplate() string {
	tmpl := r.FilenameTemplate
	if tmpl == "" {
		tmpl = config.DefaultFilenameTemplate
	}
	return filepath.Join(r.OutputDir, tmpl)
}

// ValidateURL accepts only non-empty absolute http(s) URLs
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyURL
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%w: URL must start with http:// or https://", ErrInvalidURL)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}

// CleanURL strips control whitespace that sneaks in from copy/paste
func CleanURL(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.TrimSpace(cleaned)
}

// ExpandTemplate fills the placeholders of an output template.
func ExpandTemplate(tmpl, id, title, ext string) string {
	r := strings.NewReplacer(
		PlaceholderTitle, SanitizeFilename(title),
		PlaceholderExt, ext,
		PlaceholderID, id,
	)
	return r.Replace(tmpl)
}

// SanitizeFilename makes a video title usable as a single path element
func SanitizeFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "video"
	}
	r := strings.NewReplacer(
		"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
		`"`, "_", "<", "_", ">", "_", "|", "_", "\x00", "",
	)
	return r.Replace(title)
}
