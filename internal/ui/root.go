package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"github.com/rs/zerolog/log"

	"github.com/ytget/deskutils/internal/config"
	"github.com/ytget/deskutils/internal/download"
	"github.com/ytget/deskutils/internal/rename"
)

// RootUI represents the main window: a renamer tab and a downloader tab
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization

	tabs          *container.AppTabs
	renamerItem   *container.TabItem
	downloadItem  *container.TabItem
	renamer       *RenamerTab
	downloader    *DownloaderTab
	settingsPanel *SettingsDialog
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, session *rename.Session, downloadSvc download.Downloader) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.renamer = NewRenamerTab(window, session, settings, localization)
	ui.downloader = NewDownloaderTab(window, downloadSvc, settings, localization)
	ui.settingsPanel = NewSettingsDialog(settings, localization, window)
	ui.settingsPanel.onSaved = ui.onSettingsSaved

	ui.setupUI()
	log.Debug().Str("language", localization.GetCurrentLanguage()).Msg("UI setup completed")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.renamerItem = container.NewTabItem(ui.localization.GetText(KeyRenamerTab), ui.renamer.Content())
	ui.downloadItem = container.NewTabItem(ui.localization.GetText(KeyDownloadTab), ui.downloader.Content())
	ui.tabs = container.NewAppTabs(ui.renamerItem, ui.downloadItem)
	ui.tabs.SetTabLocation(container.TabLocationTop)

	ui.window.SetContent(ui.tabs)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(IconSettings+" "+ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(code)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

func (ui *RootUI) onShowSettings() {
	ui.settingsPanel.Show()
}

func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.renamerItem.Text = ui.localization.GetText(KeyRenamerTab)
	ui.downloadItem.Text = ui.localization.GetText(KeyDownloadTab)
	ui.tabs.Refresh()

	ui.renamer.refreshTexts()
	ui.downloader.refreshTexts()
	ui.settingsPanel.refreshTexts()

	// Recreate menu to update labels and checkmarks
	ui.createMenu()
}
