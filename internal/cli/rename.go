package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ytget/deskutils/internal/logging"
	"github.com/ytget/deskutils/internal/model"
	"github.com/ytget/deskutils/internal/rename"
)

// Messages shared with the desktop renamer
const (
	MsgNoFiles         = "No files found in the selected directory."
	MsgRenamingDone    = "Renaming complete."
	MsgRenamingFailed  = "Renaming failed."
	MsgNothingToRename = "Nothing to rename."
)

type renameOptions struct {
	dir         string
	rules       model.RenameRules
	apply       bool
	stopOnError bool
	logLevel    string
}

func parseRenameFlags(args []string, stderr io.Writer) (renameOptions, error) {
	var opts renameOptions
	flags := flag.NewFlagSet("rename", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.dir, "dir", ".", "Directory whose files are renamed")
	flags.StringVar(&opts.rules.Prefix, "prefix", "", "Text prepended to every stem")
	flags.StringVar(&opts.rules.Suffix, "suffix", "", "Text appended to every stem, before the extension")
	flags.StringVar(&opts.rules.Find, "find", "", "Substring replaced in every stem")
	flags.StringVar(&opts.rules.Replace, "replace", "", "Replacement for -find")
	flags.BoolVar(&opts.apply, "apply", false, "Perform the renames instead of only previewing them")
	flags.BoolVar(&opts.stopOnError, "stop-on-error", false, "Stop at the first failed rename")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	return opts, nil
}

func (a *App) runRename(args []string) int {
	opts, err := parseRenameFlags(args, a.Stderr)
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

	session := rename.NewSession(a.FS)
	if opts.stopOnError {
		session.SetPolicy(rename.StopOnError)
	}
	if err := session.Open(opts.dir); err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitFailure
	}
	if err := session.SetRules(opts.rules); err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitFailure
	}

	st := newStyles(a.Stdout)
	preview := session.Preview()
	fmt.Fprintf(a.Stdout, "%s %s\n", st.title.Render("Directory:"), session.Directory())
	if len(preview) == 0 {
		fmt.Fprintln(a.Stdout, MsgNoFiles)
		return ExitOK
	}

	conflicts := session.Conflicts()
	renderPreview(a.Stdout, st, preview, rename.ConflictIndex(conflicts))
	fmt.Fprintf(a.Stdout, "%d files, %d to rename, %d conflicts\n", len(preview), preview.ChangedCount(), len(conflicts))

	if !opts.apply {
		if preview.ChangedCount() > 0 {
			fmt.Fprintln(a.Stdout, st.muted.Render("Run again with -apply to rename."))
		}
		return ExitOK
	}
	if preview.ChangedCount() == 0 {
		fmt.Fprintln(a.Stdout, MsgNothingToRename)
		return ExitOK
	}

	report, err := session.Apply()
	renderReport(a.Stdout, st, report)
	if err != nil {
		log.Error().Err(err).Str("dir", opts.dir).Msg("listing after rename failed")
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitFailure
	}

	fmt.Fprintln(a.Stdout, st.title.Render("Files now:"))
	for _, e := range session.Entries() {
		fmt.Fprintf(a.Stdout, "  %s\n", e.Name)
	}

	if !report.OK() {
		return ExitFailure
	}
	return ExitOK
}

// renderPreview prints an aligned ORIGINAL / NEW table with a status column
func renderPreview(w io.Writer, st styles, preview model.PreviewMapping, conflicts map[string]rename.Conflict) {
	originals := make([]string, len(preview))
	targets := make([]string, len(preview))
	for i, e := range preview {
		originals[i] = e.Original
		targets[i] = e.New
	}
	origWidth := columnWidth("ORIGINAL", originals)
	newWidth := columnWidth("NEW", targets)

	fmt.Fprintln(w, st.header.Render(pad("ORIGINAL", origWidth)+"   "+pad("NEW", newWidth)+"   STATUS"))
	for _, e := range preview {
		var status string
		switch c, ok := conflicts[e.Original]; {
		case ok:
			status = st.errText.Render("! " + string(c.Reason))
		case e.Changed():
			status = st.changed.Render("rename")
		default:
			status = st.muted.Render("unchanged")
		}
		fmt.Fprintf(w, "%s   %s   %s\n", pad(e.Original, origWidth), pad(e.New, newWidth), status)
	}
}

func renderReport(w io.Writer, st styles, report model.RenameReport) {
	fmt.Fprintf(w, "Renamed %d, skipped %d, failed %d\n", report.Succeeded, report.Skipped, len(report.Failed))
	for _, f := range report.Failed {
		fmt.Fprintf(w, "  %s %s -> %s: %s\n", st.errText.Render("x"), f.Original, f.Target, f.Message())
	}
	if len(report.NotAttempted) > 0 {
		fmt.Fprintf(w, "Not attempted: %s\n", strings.Join(report.NotAttempted, ", "))
	}
	if report.OK() {
		fmt.Fprintln(w, MsgRenamingDone)
	} else {
		fmt.Fprintln(w, st.errText.Render(MsgRenamingFailed))
	}
}
