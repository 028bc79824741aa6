package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/jnldoc/internal/docsync"
	"github.com/gorewood/jnldoc/internal/output"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which READMEs are out of date",
		Long: `Show, per directory, what a sync would do. Nothing is written.

With --check the command exits 3 when any README would be created or
updated, and 2 when any directory fails, which makes it usable as a
pre-commit or CI gate.

Examples:
  jnldoc status           # Table of directories
  jnldoc status --check   # Fail if documentation is stale
  jnldoc status --json    # Machine-readable report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Exit 3 if any documentation is stale")

	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, check bool) error {
	printer := newPrinter(cmd)

	env, err := loadAppEnv(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer func() { _ = env.log.Sync() }()

	syncer := docsync.New(env.ws, docsync.Options{Marker: env.cfg.Marker, DryRun: true}, nil, env.log)
	results, err := syncer.Run(cmd.Context())
	if err != nil {
		err = output.NewSystemErrorWithCause("status: "+err.Error(), err)
		printer.Error(err)
		return err
	}

	report := newSyncReport(results, true)
	if printer.IsJSON() {
		if err := printer.WriteJSON(report); err != nil {
			return err
		}
	} else {
		printHumanStatus(printer, results, report.Summary)
	}

	if !check {
		return nil
	}
	if n := report.Summary.Failures(); n > 0 {
		return checkFailed(printer, output.NewSystemError(fmt.Sprintf("%d %s failed", n, plural(n, "directory", "directories"))))
	}
	if n := report.Summary.Stale(); n > 0 {
		msg := fmt.Sprintf("%d %s out of date; run 'jnldoc sync'", n, plural(n, "README is", "READMEs are"))
		return checkFailed(printer, output.NewConflictError(msg))
	}
	return nil
}

// checkFailed reports a --check failure. JSON mode already carries it in
// the report.
func checkFailed(printer *output.Printer, err *output.ExitError) error {
	if !printer.IsJSON() {
		printer.Error(err)
	}
	return err
}

// printHumanStatus writes the per-directory table and any failure details.
func printHumanStatus(printer *output.Printer, results []docsync.Result, summary docsync.Summary) {
	printer.Section("Documentation")
	if len(results) == 0 {
		printer.Println(printer.Status("no directories", output.LevelInfo))
		return
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Dir, strconv.Itoa(len(r.Files)), statusLabel(r.Action)})
	}
	printer.Table([]string{"DIRECTORY", "JOURNALS", "STATUS"}, rows)

	for _, r := range results {
		if r.Err != nil {
			printer.Warn("%s: %v", r.Dir, r.Err)
		}
	}

	printer.Println()
	switch {
	case summary.Failures() > 0:
		printer.Println(printer.Status(summaryLine(summary), output.LevelFail))
	case summary.Stale() > 0:
		printer.Println(printer.Status(summaryLine(summary), output.LevelWarn))
	default:
		printer.Println(printer.Status("all documentation up to date", output.LevelOK))
	}
}

// statusLabel describes a dry-run action.
func statusLabel(action docsync.Action) string {
	switch action {
	case docsync.Created:
		return "missing"
	case docsync.Updated:
		return "stale"
	case docsync.UpToDate:
		return "ok"
	case docsync.Unchanged:
		return "marker unusable"
	default:
		return string(action)
	}
}
