// Package main provides the entry point for the jnldoc CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/jnldoc/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// lookupFlag finds a flag on cmd or, failing that, a persistent flag on the root.
func lookupFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return lookupFlag(cmd, "json") == "true"
}

// useColor combines --color with terminal detection on the command's output.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(lookupFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter builds the printer every command reports through. Warnings
// and errors go to the command's stderr in human mode.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(handleError))
	return output.GetExitCode(err)
}

// handleError leaves *output.ExitError values alone, since commands report
// them through their Printer before returning. Anything else (flag parsing,
// unknown commands) gets fang's default rendering.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// newRootCmd creates the root command for the jnldoc CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jnldoc",
		Short: "Generate pseudo-code documentation from journal files",
		Long: `jnldoc - keeps README files in step with the journals next to them.

For every subdirectory of the working directory that contains journal
files (.jnl), jnldoc renders each journal's description and code tree as
pseudo-code and writes the result below a marker line in the directory's
README.md. Text above the marker is never touched, and a second run with
unchanged journals leaves every file as it is.

Running jnldoc without a subcommand is the same as 'jnldoc sync'.
All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, false)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := output.ValidateColorMode(lookupFlag(cmd, "color")); err != nil {
			exitErr := output.NewUserError(err.Error())
			newPrinter(cmd).Error(exitErr)
			return exitErr
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always, never")
	cmd.PersistentFlags().Bool("verbose", false, "Write debug logs to stderr")
	cmd.PersistentFlags().StringP("dir", "C", ".", "Directory whose subdirectories hold journals")
	cmd.PersistentFlags().String("config", "", "Config file (default .jnldoc.yml, then the user config)")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newSyncCmd(), "core")
	addGroupedCommand(cmd, newStatusCmd(), "core")
	addGroupedCommand(cmd, newRenderCmd(), "core")
	addGroupedCommand(cmd, newWatchCmd(), "core")

	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newHooksCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
