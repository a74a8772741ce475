package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/deskutils/internal/config"
	"github.com/ytget/deskutils/internal/download"
	"github.com/ytget/deskutils/internal/model"
	"github.com/ytget/deskutils/internal/platform"
)

// DownloaderTab downloads one video at a time and shows its progress
type DownloaderTab struct {
	window       fyne.Window
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization

	urlEntry    *widget.Entry
	downloadBtn *widget.Button
	stopBtn     *widget.Button
	progressBar *widget.ProgressBar
	titleLabel  *widget.Label
	statusLog   *widget.List
	content     fyne.CanvasObject

	job         *download.Job
	logLines    []string
	lastPercent int

	// reveal opens the file manager on a finished download
	reveal func(path string) error
	// onFinished is called on the UI goroutine with the final task state.
	onFinished func(model.DownloadTask)
}

// NewDownloaderTab builds the downloader tab over downloadSvc
func NewDownloaderTab(window fyne.Window, downloadSvc download.Downloader, settings *config.Settings, localization *Localization) *DownloaderTab {
	dt := &DownloaderTab{
		window:       window,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
		reveal:       platform.OpenFileInManager,
	}
	dt.createUI()
	return dt
}

// Content returns the tab body
func (dt *DownloaderTab) Content() fyne.CanvasObject {
	return dt.content
}

func (dt *DownloaderTab) createUI() {
	dt.urlEntry = widget.NewEntry()
	dt.urlEntry.SetPlaceHolder(dt.localization.GetText(KeyEnterURL))
	dt.urlEntry.Validator = dt.validateURL
	dt.urlEntry.OnSubmitted = func(string) {
		dt.onDownloadClick()
	}

	dt.downloadBtn = widget.NewButton(dt.localization.GetText(KeyDownload), dt.onDownloadClick)
	dt.downloadBtn.Importance = widget.HighImportance
	dt.stopBtn = widget.NewButton(dt.localization.GetText(KeyStop), dt.onStopClick)
	dt.stopBtn.Disable()

	topPanel := container.NewBorder(nil, nil, nil, container.NewHBox(dt.downloadBtn, dt.stopBtn), dt.urlEntry)

	dt.progressBar = widget.NewProgressBar()
	dt.titleLabel = widget.NewLabel("")
	dt.titleLabel.Truncation = fyne.TextTruncateEllipsis

	dt.statusLog = widget.NewList(
		func() int { return len(dt.logLines) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= 0 && id < len(dt.logLines) {
				obj.(*widget.Label).SetText(dt.logLines[id])
			}
		},
	)

	dt.content = container.NewBorder(
		container.NewVBox(topPanel, dt.titleLabel, dt.progressBar, widget.NewSeparator()),
		nil,
		nil,
		nil,
		dt.statusLog,
	)
}

// validateURL allows an empty entry so the field is not red before typing
func (dt *DownloaderTab) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return download.ValidateURL(download.CleanURL(input))
}

func (dt *DownloaderTab) onDownloadClick() {
	urlText := download.CleanURL(dt.urlEntry.Text)
	if urlText == "" {
		dt.appendLog(dt.localization.GetText(KeyPleaseEnterURL))
		return
	}
	if err := download.ValidateURL(urlText); err != nil {
		dt.appendLog(dt.localization.GetText(KeyInvalidURL) + ": " + err.Error())
		return
	}

	req := download.Request{
		URL:              urlText,
		OutputDir:        dt.settings.GetDownloadDirectory(),
		FilenameTemplate: dt.settings.GetFilenameTemplate(),
		Quality:          dt.settings.GetQualityPreset(),
	}

	job, err := dt.downloadSvc.Start(context.Background(), req)
	if err != nil {
		if errors.Is(err, download.ErrBusy) {
			dt.appendLog(dt.localization.GetText(KeyDownloadBusy))
		} else {
			dt.appendLog(IconError + " " + err.Error())
		}
		log.Error().Err(err).Str("url", urlText).Msg("download not started")
		return
	}

	dt.job = job
	dt.lastPercent = -1
	dt.progressBar.SetValue(0)
	dt.titleLabel.SetText(urlText)
	dt.downloadBtn.Disable()
	dt.stopBtn.Enable()
	dt.appendLog(dt.localization.GetText(KeyDownloadStarted) + MiddleDotSeparator + urlText)

	go dt.watch(job)
}

// watch forwards job events to the UI goroutine until the job ends
func (dt *DownloaderTab) watch(job *download.Job) {
	for ev := range job.Events() {
		fyne.Do(func() {
			dt.handleEvent(ev)
		})
	}
}

func (dt *DownloaderTab) handleEvent(ev download.Event) {
	task := ev.Task
	if task.Title != "" {
		dt.titleLabel.SetText(task.GetDisplayTitle())
	}

	switch ev.Kind {
	case download.EventProgress:
		dt.progressBar.SetValue(task.Progress)
		if task.Percent != dt.lastPercent {
			dt.lastPercent = task.Percent
			dt.replaceProgressLine(fmt.Sprintf(dt.localization.GetText(KeyDownloadingFormat), task.Percent) +
				MiddleDotSeparator + task.Speed + MiddleDotSeparator + task.GetETAString())
		}
	case download.EventStatus:
		if task.Status == model.TaskStatusStopping {
			dt.appendLog(dt.localization.GetText(KeyStoppingDownload))
		}
	case download.EventFinished:
		dt.finish(task)
	}
}

func (dt *DownloaderTab) finish(task model.DownloadTask) {
	switch task.Status {
	case model.TaskStatusCompleted:
		dt.progressBar.SetValue(1)
		dt.titleLabel.SetText(task.GetDisplayTitle())
		dt.appendLog(fmt.Sprintf(dt.localization.GetText(KeyFinishedDownloadingFmt), task.OutputPath))
		if dt.settings.GetAutoRevealOnComplete() && task.OutputPath != "" {
			if err := dt.reveal(task.OutputPath); err != nil {
				log.Error().Err(err).Str("path", task.OutputPath).Msg("reveal failed")
				dt.appendLog(dt.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
			}
		}
	case model.TaskStatusStopped:
		dt.appendLog(dt.localization.GetText(KeyDownloadStopped))
	default:
		dt.appendLog(IconError + " " + dt.localization.GetText(KeyDownloadFailed) + ": " + task.LastError)
	}
	dt.appendLog(dt.localization.GetText(KeyDownloadProcessFinished))

	dt.job = nil
	dt.downloadBtn.Enable()
	dt.stopBtn.Disable()

	if task.Status == model.TaskStatusCompleted {
		dt.urlEntry.SetText("")
	}
	if dt.onFinished != nil {
		dt.onFinished(task)
	}
}

func (dt *DownloaderTab) onStopClick() {
	if dt.job == nil {
		return
	}
	dt.stopBtn.Disable()
	dt.job.Cancel()
}

// appendLog adds a status line, dropping the oldest past StatusLogMaxLines
func (dt *DownloaderTab) appendLog(line string) {
	dt.logLines = append(dt.logLines, line)
	if over := len(dt.logLines) - StatusLogMaxLines; over > 0 {
		dt.logLines = dt.logLines[over:]
	}
	dt.statusLog.Refresh()
	dt.statusLog.ScrollToBottom()
}

// replaceProgressLine keeps a single live progress line at the end of the log
func (dt *DownloaderTab) replaceProgressLine(line string) {
	prefix := strings.SplitN(dt.localization.GetText(KeyDownloadingFormat), "%d", 2)[0]
	if n := len(dt.logLines); n > 0 && strings.HasPrefix(dt.logLines[n-1], prefix) {
		dt.logLines[n-1] = line
		dt.statusLog.Refresh()
		return
	}
	dt.appendLog(line)
}

// refreshTexts re-applies localized strings
func (dt *DownloaderTab) refreshTexts() {
	dt.urlEntry.SetPlaceHolder(dt.localization.GetText(KeyEnterURL))
	dt.downloadBtn.SetText(dt.localization.GetText(KeyDownload))
	dt.stopBtn.SetText(dt.localization.GetText(KeyStop))
}

