package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jnldoc/internal/docsync"
	"github.com/gorewood/jnldoc/internal/output"
)

// actionOrder is the order summary counts are printed in.
var actionOrder = []docsync.Action{
	docsync.Created,
	docsync.Updated,
	docsync.UpToDate,
	docsync.Unchanged,
	docsync.Skipped,
	docsync.Failed,
}

// dirReport is the JSON form of one directory's result.
type dirReport struct {
	Dir    string   `json:"dir"`
	Action string   `json:"action"`
	Files  []string `json:"files,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// syncReport is the JSON output of sync and status.
type syncReport struct {
	DryRun      bool            `json:"dry_run"`
	Directories []dirReport     `json:"directories"`
	Summary     docsync.Summary `json:"summary"`
}

func newSyncReport(results []docsync.Result, dryRun bool) syncReport {
	report := syncReport{
		DryRun:      dryRun,
		Directories: make([]dirReport, 0, len(results)),
		Summary:     docsync.Summarize(results),
	}
	for _, r := range results {
		report.Directories = append(report.Directories, toDirReport(r))
	}
	return report
}

func toDirReport(r docsync.Result) dirReport {
	d := dirReport{Dir: r.Dir, Action: string(r.Action), Files: r.Files}
	if r.Err != nil {
		d.Error = r.Err.Error()
	}
	return d
}

// newSyncCmd creates the sync command.
func newSyncCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate the documentation of every journal directory",
		Long: `Regenerate the generated block of each subdirectory's README.

Each first-level subdirectory with journal files gets a README whose text
from the marker line onward lists every journal as pseudo-code. A README
without the marker has the block appended; a missing README is created.

Exits 2 if any directory could not be processed.

Examples:
  jnldoc sync             # Update all READMEs
  jnldoc sync --dry-run   # Show what would change
  jnldoc --dir docs sync  # Work on another directory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")

	return cmd
}

// runSync executes the sync command.
func runSync(cmd *cobra.Command, dryRun bool) error {
	printer := newPrinter(cmd)

	env, err := loadAppEnv(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer func() { _ = env.log.Sync() }()

	results, err := runSyncer(cmd, env, printer, dryRun)
	if err != nil {
		printer.Error(err)
		return err
	}

	report := newSyncReport(results, dryRun)
	if printer.IsJSON() {
		if err := printer.WriteJSON(report); err != nil {
			return err
		}
	} else {
		printSyncSummary(printer, report.Summary, dryRun)
	}

	if n := report.Summary.Failures(); n > 0 {
		err := output.NewSystemError(fmt.Sprintf("%d %s failed", n, plural(n, "directory", "directories")))
		if !printer.IsJSON() {
			printer.Error(err)
		}
		return err
	}
	return nil
}

// runSyncer runs one full pass. Progress lines are printed in human mode only.
func runSyncer(cmd *cobra.Command, env *appEnv, printer *output.Printer, dryRun bool) ([]docsync.Result, error) {
	var progress docsync.Progress
	if !printer.IsJSON() {
		progress = printer
	}
	syncer := docsync.New(env.ws, docsync.Options{Marker: env.cfg.Marker, DryRun: dryRun}, progress, env.log)

	results, err := syncer.Run(cmd.Context())
	if err != nil {
		return results, output.NewSystemErrorWithCause("sync: "+err.Error(), err)
	}
	return results, nil
}

// printSyncSummary writes one line of per-action counts.
func printSyncSummary(printer *output.Printer, summary docsync.Summary, dryRun bool) {
	line := summaryLine(summary)
	if dryRun {
		line += " (dry run)"
	}
	level := output.LevelOK
	switch {
	case summary.Failures() > 0:
		level = output.LevelFail
	case len(summary) == 0:
		level = output.LevelInfo
	}
	printer.Println(printer.Status(line, level))
}

// summaryLine formats counts as "1 created, 2 up-to-date".
func summaryLine(summary docsync.Summary) string {
	var parts []string
	for _, action := range actionOrder {
		if n := summary[action]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, action))
		}
	}
	if len(parts) == 0 {
		return "no directories"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
