package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/deskutils/internal/config"
	"github.com/ytget/deskutils/internal/model"
	"github.com/ytget/deskutils/internal/rename"
)

// RenamerTab is the batch renamer: directory picker, rule entries, live
// preview and the Rename action.
type RenamerTab struct {
	window       fyne.Window
	session      *rename.Session
	settings     *config.Settings
	localization *Localization

	dirLabel     *widget.Label
	browseBtn    *widget.Button
	prefixEntry  *widget.Entry
	suffixEntry  *widget.Entry
	findEntry    *widget.Entry
	replaceEntry *widget.Entry
	previewList  *widget.List
	countLabel   *widget.Label
	statusLabel  *widget.Label
	renameBtn    *widget.Button

	preview   model.PreviewMapping
	conflicts map[string]rename.Conflict
	content   fyne.CanvasObject

	// onRenamed is called on the UI goroutine after every rename pass.
	onRenamed func(model.RenameReport, error)
}

// NewRenamerTab builds the renamer tab over session
func NewRenamerTab(window fyne.Window, session *rename.Session, settings *config.Settings, localization *Localization) *RenamerTab {
	rt := &RenamerTab{
		window:       window,
		session:      session,
		settings:     settings,
		localization: localization,
		conflicts:    map[string]rename.Conflict{},
	}
	rt.createUI()

	if dir := settings.GetLastRenameDirectory(); dir != "" {
		if err := rt.OpenDirectory(dir); err != nil {
			log.Debug().Err(err).Str("dir", dir).Msg("last rename directory is gone")
		}
	}
	return rt
}

// Content returns the tab body
func (rt *RenamerTab) Content() fyne.CanvasObject {
	return rt.content
}

func (rt *RenamerTab) createUI() {
	rt.dirLabel = widget.NewLabel(rt.localization.GetText(KeyNoDirectory))
	rt.dirLabel.Truncation = fyne.TextTruncateEllipsis
	rt.browseBtn = widget.NewButton(IconFolder+" "+rt.localization.GetText(KeyBrowse), rt.onBrowse)
	dirRow := container.NewBorder(nil, nil, rt.browseBtn, nil, rt.dirLabel)

	rt.prefixEntry = rt.newRuleEntry(KeyPrefix)
	rt.suffixEntry = rt.newRuleEntry(KeySuffix)
	rt.findEntry = rt.newRuleEntry(KeyFind)
	rt.replaceEntry = rt.newRuleEntry(KeyReplace)
	rules := container.NewGridWithColumns(4,
		rt.prefixEntry, rt.suffixEntry, rt.findEntry, rt.replaceEntry,
	)

	rt.previewList = widget.NewList(
		func() int { return len(rt.preview) },
		func() fyne.CanvasObject {
			return container.NewGridWithColumns(3,
				widget.NewLabel(""), widget.NewLabel(""), widget.NewLabel(""),
			)
		},
		rt.updatePreviewRow,
	)

	rt.countLabel = widget.NewLabel("")
	rt.statusLabel = widget.NewLabel(rt.localization.GetText(KeyAwaitingDirectory))
	rt.statusLabel.Wrapping = fyne.TextWrapWord

	rt.renameBtn = widget.NewButton(rt.localization.GetText(KeyRename), rt.onRenameClick)
	rt.renameBtn.Importance = widget.HighImportance
	rt.renameBtn.Disable()

	bottom := container.NewBorder(nil, nil, nil, rt.renameBtn, container.NewVBox(rt.countLabel, rt.statusLabel))

	rt.content = container.NewBorder(
		container.NewVBox(dirRow, rules, widget.NewSeparator()),
		bottom,
		nil,
		nil,
		rt.previewList,
	)
}

func (rt *RenamerTab) newRuleEntry(labelKey string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(rt.localization.GetText(labelKey))
	entry.OnChanged = func(string) { rt.onRulesChanged() }
	return entry
}

func (rt *RenamerTab) updatePreviewRow(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(rt.preview) {
		return
	}
	entry := rt.preview[id]
	cells := item.(*fyne.Container).Objects
	cells[0].(*widget.Label).SetText(entry.Original)

	newLabel := cells[1].(*widget.Label)
	newLabel.SetText(IconArrow + " " + entry.New)
	newLabel.Importance = widget.MediumImportance

	marker := cells[2].(*widget.Label)
	marker.Importance = widget.MediumImportance
	switch c, ok := rt.conflicts[entry.Original]; {
	case ok:
		marker.SetText(IconConflict + " " + string(c.Reason))
		marker.Importance = widget.DangerImportance
	case entry.Changed():
		marker.SetText("")
		newLabel.Importance = widget.SuccessImportance
	default:
		marker.SetText(DashPlaceholder)
	}
	newLabel.Refresh()
	marker.Refresh()
}

func (rt *RenamerTab) onBrowse() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		if err := rt.OpenDirectory(uri.Path()); err != nil {
			dialog.ShowError(fmt.Errorf("%s: %w", rt.localization.GetText(KeyErrorOpeningDir), err), rt.window)
		}
	}, rt.window)
}

// OpenDirectory loads dir into the session and refreshes the preview
func (rt *RenamerTab) OpenDirectory(dir string) error {
	if err := rt.session.Open(dir); err != nil {
		return err
	}
	rt.settings.SetLastRenameDirectory(dir)
	rt.dirLabel.SetText(dir)
	rt.refreshPreview()

	if len(rt.preview) == 0 {
		rt.setStatus(rt.localization.GetText(KeyNoFilesFound))
	} else {
		rt.setStatus(rt.localization.GetText(KeyDirectorySelected))
	}
	return nil
}

// Rules returns the rules currently typed into the entries
func (rt *RenamerTab) Rules() model.RenameRules {
	return model.RenameRules{
		Prefix:  rt.prefixEntry.Text,
		Suffix:  rt.suffixEntry.Text,
		Find:    rt.findEntry.Text,
		Replace: rt.replaceEntry.Text,
	}
}

func (rt *RenamerTab) onRulesChanged() {
	if err := rt.session.SetRules(rt.Rules()); err != nil {
		// Busy: the preview is rebuilt from the entries when the pass ends.
		return
	}
	rt.refreshPreview()
}

// refreshPreview pulls the preview and conflicts from the session
func (rt *RenamerTab) refreshPreview() {
	rt.preview = rt.session.Preview()
	rt.conflicts = rename.ConflictIndex(rt.session.Conflicts())
	rt.previewList.Refresh()

	if rt.session.State() == rename.StateIdle {
		rt.countLabel.SetText("")
	} else {
		rt.countLabel.SetText(fmt.Sprintf(rt.localization.GetText(KeyPreviewCountFormat),
			len(rt.preview), rt.preview.ChangedCount(), len(rt.conflicts)))
	}
	rt.updateRenameButton()
}

func (rt *RenamerTab) updateRenameButton() {
	if rt.session.State() == rename.StateReady && len(rt.preview) > 0 {
		rt.renameBtn.Enable()
	} else {
		rt.renameBtn.Disable()
	}
}

func (rt *RenamerTab) setStatus(text string) {
	rt.statusLabel.SetText(text)
}

func (rt *RenamerTab) onRenameClick() {
	if len(rt.preview) == 0 {
		dialog.ShowInformation(rt.localization.GetText(KeyRename), rt.localization.GetText(KeyNoFilesToRename), rt.window)
		return
	}
	changed := rt.preview.ChangedCount()
	if changed == 0 {
		dialog.ShowInformation(rt.localization.GetText(KeyRename), rt.localization.GetText(KeyNothingToRename), rt.window)
		return
	}

	message := fmt.Sprintf(rt.localization.GetText(KeyConfirmRenameFormat), changed, len(rt.preview))
	dialog.ShowConfirm(rt.localization.GetText(KeyConfirmRename), message, func(ok bool) {
		if ok {
			rt.startRename()
		}
	}, rt.window)
}

// startRename runs the pass off the UI goroutine
func (rt *RenamerTab) startRename() {
	rt.renameBtn.Disable()
	rt.browseBtn.Disable()
	rt.setStatus(rt.localization.GetText(KeyRenaming))

	go func() {
		report, err := rt.applyRenames()
		fyne.Do(func() {
			rt.finishRename(report, err)
		})
	}()
}

func (rt *RenamerTab) applyRenames() (model.RenameReport, error) {
	policy := rename.ContinueOnError
	if rt.settings.GetRenameStopOnError() {
		policy = rename.StopOnError
	}
	rt.session.SetPolicy(policy)
	return rt.session.Apply()
}

// finishRename reports the outcome and rebuilds the preview from the fresh listing
func (rt *RenamerTab) finishRename(report model.RenameReport, err error) {
	rt.browseBtn.Enable()

	// Rules typed while renaming were rejected by the session.
	_ = rt.session.SetRules(rt.Rules())
	rt.refreshPreview()

	summary := fmt.Sprintf(rt.localization.GetText(KeyRenameSummaryFormat),
		report.Succeeded, report.Skipped, len(report.Failed))

	switch {
	case err != nil:
		rt.setStatus(rt.localization.GetText(KeyRenamingFailed) + " " + err.Error())
		dialog.ShowError(err, rt.window)
	case report.OK():
		rt.setStatus(rt.localization.GetText(KeyRenamingComplete) + " " + summary)
	default:
		rt.setStatus(rt.localization.GetText(KeyRenamingFailed) + " " + summary)
		dialog.ShowInformation(rt.localization.GetText(KeyRenamingFailed), failureDetails(rt.localization, summary, report), rt.window)
	}

	if rt.onRenamed != nil {
		rt.onRenamed(report, err)
	}
}

// failureDetails lists each failed entry under the summary
func failureDetails(l *Localization, summary string, report model.RenameReport) string {
	text := summary
	for _, f := range report.Failed {
		text += fmt.Sprintf("\n%s %s %s %s: %s", IconError, f.Original, IconArrow, f.Target, f.Message())
	}
	if len(report.NotAttempted) > 0 {
		text += "\n" + fmt.Sprintf(l.GetText(KeyNotAttemptedFormat), len(report.NotAttempted))
	}
	return text
}

// refreshTexts re-applies localized strings
func (rt *RenamerTab) refreshTexts() {
	rt.browseBtn.SetText(IconFolder + " " + rt.localization.GetText(KeyBrowse))
	rt.prefixEntry.SetPlaceHolder(rt.localization.GetText(KeyPrefix))
	rt.suffixEntry.SetPlaceHolder(rt.localization.GetText(KeySuffix))
	rt.findEntry.SetPlaceHolder(rt.localization.GetText(KeyFind))
	rt.replaceEntry.SetPlaceHolder(rt.localization.GetText(KeyReplace))
	rt.renameBtn.SetText(rt.localization.GetText(KeyRename))
	if rt.session.State() == rename.StateIdle {
		rt.dirLabel.SetText(rt.localization.GetText(KeyNoDirectory))
		rt.setStatus(rt.localization.GetText(KeyAwaitingDirectory))
	}
	rt.refreshPreview()
}
