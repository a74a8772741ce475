package download

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/ytdlp/downloader"
	"github.com/ytget/ytdlp/types"
	"github.com/ytget/ytdlp/v2"
	"github.com/ytget/ytdlp/youtube/formats"

	"github.com/ytget/deskutils/internal/config"
)

// Format selectors passed to the library per quality preset
const (
	FormatBest   = "best"
	FormatMedium = "height<=720"
	// itag 140 is the AAC audio-only stream YouTube serves for every video
	FormatAudio = "itag=140"

	// container filters matched against the MIME subtype; itag 140 is audio/mp4
	ExtVideo = "mp4"
	ExtAudio = "mp4"
)

// ErrNoFormat is returned when the resolved video has no usable stream
var ErrNoFormat = errors.New("no suitable format found")

// resolver turns a watch URL into a direct media URL plus metadata.
type resolver interface {
	ResolveURL(ctx context.Context, videoURL string) (string, *ytdlp.VideoInfo, error)
}

// fetcher writes a direct media URL to outputPath.
type fetcher interface {
	Download(ctx context.Context, mediaURL, outputPath string) error
}

type ytdlpEngine struct {
	newResolver func(format, ext string) resolver
	newFetcher  func(onProgress func(Progress)) fetcher
}

// NewYTDLPEngine returns the Engine backed by github.com/ytget/ytdlp/v2
func NewYTDLPEngine() Engine {
	return &ytdlpEngine{
		newResolver: func(format, ext string) resolver {
			return ytdlp.New().WithFormat(format, ext)
		},
		newFetcher: func(onProgress func(Progress)) fetcher {
			return downloader.New(nil, func(p downloader.Progress) {
				onProgress(Progress{
					Downloaded: p.DownloadedSize,
					Total:      p.TotalSize,
					Percent:    p.Percent,
				})
			}, 0)
		},
	}
}

// Download implements Engine. The video is resolved first so the output
// template can be expanded with the real title and container before any
// bytes are written; the library receives the final path verbatim.
func (e *ytdlpEngine) Download(ctx context.Context, req Request, onProgress func(Progress)) (Result, error) {
	format, ext := FormatFor(req.Quality)

	mediaURL, info, err := e.newResolver(format, ext).ResolveURL(ctx, req.URL)
	if err != nil {
		return Result{}, err
	}
	if info == nil {
		return Result{}, ErrNoFormat
	}

	res := Result{
		Title: info.Title,
		Path:  OutputPath(req, info),
	}
	if err := os.MkdirAll(filepath.Dir(res.Path), 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	if err := e.newFetcher(onProgress).Download(ctx, mediaURL, res.Path); err != nil {
		return Result{}, fmt.Errorf("download failed: %w", err)
	}
	return res, nil
}

// OutputPath expands the request's filename template for a resolved video.
// The extension follows the stream the quality preset selects.
func OutputPath(req Request, info *ytdlp.VideoInfo) string {
	fileExt := ExtFromMime("")
	if f := selectFormat(info.Formats, req.Quality); f != nil {
		fileExt = ExtFromMime(f.MimeType)
	}
	id := info.ID
	if id == "" {
		id = videoID(req.URL)
	}
	return filepath.Clean(ExpandTemplate(req.OutputTemplate(), id, info.Title, fileExt))
}

// ExtFromMime maps a stream MIME type to a file extension without the dot
func ExtFromMime(mime string) string {
	base, _, _ := strings.Cut(strings.TrimSpace(mime), ";")
	switch strings.TrimSpace(base) {
	case "":
		return "mp4"
	case "audio/mp4":
		return "m4a"
	}
	if _, sub, ok := strings.Cut(base, "/"); ok && sub != "" {
		return strings.TrimSpace(sub)
	}
	return "mp4"
}

// FormatFor maps a quality preset to the library's format selector and container
func FormatFor(preset config.QualityPreset) (format, ext string) {
	switch preset {
	case config.QualityMedium:
		return FormatMedium, ExtVideo
	case config.QualityAudio:
		return FormatAudio, ExtAudio
	default:
		return FormatBest, ExtVideo
	}
}

// selectFormat is the selector the library applies during resolution
func selectFormat(list []types.Format, preset config.QualityPreset) *types.Format {
	if len(list) == 0 {
		return nil
	}
	format, ext := FormatFor(preset)
	return formats.SelectFormat(list, format, ext)
}

// videoID extracts the v= parameter or the youtu.be path segment
func videoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if id := u.Query().Get("v"); id != "" {
		return id
	}
	return strings.Trim(u.Path, "/")
}
