package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/ytget/deskutils/internal/config"
	"github.com/ytget/deskutils/internal/download"
	"github.com/ytget/deskutils/internal/logging"
	"github.com/ytget/deskutils/internal/model"
)

// Messages shared with the desktop downloader
const (
	MsgDownloadFinished = "Download process finished."
	MsgDownloadStopped  = "Download stopped."
)

type downloadOptions struct {
	req      download.Request
	logLevel string
}

func parseDownloadFlags(args []string, stderr io.Writer) (downloadOptions, error) {
	var opts downloadOptions
	var quality string
	flags := flag.NewFlagSet("download", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.req.OutputDir, "o", config.DefaultDownloadDirectory(), "Directory the video is saved to")
	flags.StringVar(&opts.req.FilenameTemplate, "template", config.DefaultFilenameTemplate, "Output file name template")
	flags.StringVar(&quality, "quality", string(config.DefaultQualityPreset), "Quality preset (best, medium, audio)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() > 1 {
		return opts, fmt.Errorf("expected at most one URL, got %d arguments", flags.NArg())
	}

	opts.req.Quality = config.QualityPreset(quality)
	if !opts.req.Quality.Valid() {
		return opts, fmt.Errorf("unknown quality preset %q", quality)
	}
	opts.req.URL = flags.Arg(0)
	return opts, nil
}

func (a *App) runDownload(ctx context.Context, args []string) int {
	opts, err := parseDownloadFlags(args, a.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return ExitOK
		}
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitUsage
	}
	if err := logging.Setup(logging.Options{Level: opts.logLevel, Out: a.Stderr}); err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	if strings.TrimSpace(opts.req.URL) == "" && a.ReadClipboard != nil {
		text, err := a.ReadClipboard()
		if err != nil {
			log.Debug().Err(err).Msg("clipboard read failed")
		} else if download.ValidateURL(download.CleanURL(text)) == nil {
			opts.req.URL = download.CleanURL(text)
			fmt.Fprintf(a.Stdout, "Using URL from clipboard: %s\n", opts.req.URL)
		}
	}

	service := download.NewService(a.Engine)
	service.SetRetryPolicy(download.DefaultMaxRetries, a.RetryDelay)
	job, err := service.Start(ctx, opts.req)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		if errors.Is(err, download.ErrEmptyURL) || errors.Is(err, download.ErrInvalidURL) {
			return ExitUsage
		}
		return ExitFailure
	}

	final := a.followJob(job)

	switch final.Status {
	case model.TaskStatusCompleted:
		fmt.Fprintf(a.Stdout, "Finished downloading: %s\n", final.OutputPath)
	case model.TaskStatusStopped:
		fmt.Fprintln(a.Stdout, MsgDownloadStopped)
	default:
		fmt.Fprintf(a.Stderr, "Error: %s\n", final.LastError)
	}
	fmt.Fprintln(a.Stdout, MsgDownloadFinished)

	if final.Status != model.TaskStatusCompleted {
		return ExitFailure
	}
	return ExitOK
}

// followJob renders job progress until the events channel closes and
// returns the final task snapshot
func (a *App) followJob(job *download.Job) model.DownloadTask {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(a.Stderr),
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(a.Stderr) }),
	)

	final := job.Snapshot()
	for ev := range job.Events() {
		final = ev.Task
		switch ev.Kind {
		case download.EventProgress:
			if ev.Task.Title != "" {
				bar.Describe(ev.Task.Title)
			}
			_ = bar.Set(ev.Task.Percent)
		case download.EventFinished:
			if ev.Task.Status == model.TaskStatusCompleted {
				_ = bar.Finish()
			} else {
				_ = bar.Exit()
			}
		}
	}
	return final
}
