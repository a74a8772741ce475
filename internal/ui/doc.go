// Package ui contains the Fyne desktop interface: a batch renamer tab backed
// by rename.Session and a downloader tab backed by the download service.
// All UI strings are localized via Localization.
package ui
