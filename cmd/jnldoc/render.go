package main

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/gorewood/jnldoc/internal/journal"
	"github.com/gorewood/jnldoc/internal/output"
	"github.com/gorewood/jnldoc/internal/workspace"
)

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Print one journal as pseudo-code",
		Long: `Parse a single journal file and print its description and code.
No README is read or written.

Examples:
  jnldoc render checkout/login.jnl
  jnldoc render checkout/login.jnl --json`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}
}

// runRender executes the render command.
func runRender(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	path, err := filepath.Abs(args[0])
	if err != nil {
		err = output.NewUserError("invalid path: " + err.Error())
		printer.Error(err)
		return err
	}

	ws := workspace.New(osfs.New(filepath.Dir(path)), workspace.Options{})
	doc, err := ws.LoadJournal(".", filepath.Base(path))
	if err != nil {
		err = renderError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"file":        doc.Filename(),
			"description": doc.Description(),
			"code":        doc.Code(),
		})
	}

	description := doc.Description()
	if description == "" {
		description = printer.Status("(no description)", output.LevelInfo)
	}
	printer.Box(doc.Filename(), description)
	printer.Println(doc.Code())
	return nil
}

// renderError maps bad or missing journals to user errors and other I/O
// failures to system errors.
func renderError(err error) error {
	if journal.IsJournalError(err) || errors.Is(err, fs.ErrNotExist) {
		return &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}
	return output.NewSystemErrorWithCause(err.Error(), err)
}
