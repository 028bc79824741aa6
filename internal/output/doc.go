// Package output renders jnldoc command results for people and for tools.
//
// Every command writes through a Printer, which switches between styled
// human output and JSON on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Section("Documentation")
//	printer.Table([]string{"DIRECTORY", "ACTION"}, rows)
//	printer.Error(err)
//
// In JSON mode errors are written as {"error": "...", "code": N} on stdout.
// In human mode they go to the stderr writer set with WithStderr.
//
// Styling uses lipgloss and is dropped when the output is not a terminal,
// or when --color=never.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, unreadable config
//	output.ExitSystemError // 2: I/O failure, journal that cannot be rendered
//	output.ExitConflict    // 3: documentation out of date, hook already present
//
// Commands return *ExitError values built with NewUserError, NewSystemError
// or NewConflictError; main passes the result through GetExitCode.
package output
