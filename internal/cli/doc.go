// Package cli implements the headless deskutils commands: a batch renamer
// that previews and applies prefix/suffix/find-replace rules, and a single
// video downloader with a terminal progress bar.
package cli
