package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/deskutils/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog

	downloadDirEntry *widget.Entry
	qualitySelect    *widget.Select
	filenameEntry    *widget.Entry
	autoRevealCheck  *widget.Check
	languageSelect   *widget.Select
	stopOnErrorCheck *widget.Check

	// languageCodes maps the select's display names back to codes
	languageCodes map[string]string

	onSaved func()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder(config.DefaultDownloadDirectory())
	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	qualityOptions := []string{}
	for _, preset := range sd.settings.GetQualityPresetOptions() {
		qualityOptions = append(qualityOptions, string(preset))
	}
	sd.qualitySelect = widget.NewSelect(qualityOptions, nil)

	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder(config.DefaultFilenameTemplate)

	sd.autoRevealCheck = widget.NewCheck(sd.localization.GetText(KeyAutoReveal), nil)
	sd.stopOnErrorCheck = widget.NewCheck(sd.localization.GetText(KeyStopOnError), nil)

	sd.languageCodes = map[string]string{}
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(sd.localization.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(sd.localization.GetText(KeyQualityPreset), sd.qualitySelect),
		widget.NewFormItem(sd.localization.GetText(KeyFilenameTemplate), sd.filenameEntry),
		widget.NewFormItem("", sd.autoRevealCheck),
		widget.NewFormItem(sd.localization.GetText(KeyRenamerTab), sd.stopOnErrorCheck),
		widget.NewFormItem(sd.localization.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.qualitySelect.SetSelected(string(sd.settings.GetQualityPreset()))
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.stopOnErrorCheck.SetChecked(sd.settings.GetRenameStopOnError())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave persists the dialog fields; empty fields keep the stored value
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

func (sd *SettingsDialog) save() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if preset := config.QualityPreset(sd.qualitySelect.Selected); preset.Valid() {
		sd.settings.SetQualityPreset(preset)
	}

	if sd.filenameEntry.Text != "" {
		sd.settings.SetFilenameTemplate(sd.filenameEntry.Text)
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)
	sd.settings.SetRenameStopOnError(sd.stopOnErrorCheck.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// refreshTexts rebuilds the dialog so its labels follow the current language
func (sd *SettingsDialog) refreshTexts() {
	sd.createUI()
}
