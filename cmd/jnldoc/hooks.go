package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/jnldoc/internal/output"
	"github.com/gorewood/jnldoc/internal/setup"
)

// hookTarget locates the pre-commit hook for the repository holding --dir.
type hookTarget struct {
	path string
	// rel is --dir relative to the repository root, passed to the hook.
	rel string
}

func resolveHookTarget(cmd *cobra.Command) (*hookTarget, error) {
	dir, err := filepath.Abs(lookupFlag(cmd, "dir"))
	if err != nil {
		return nil, output.NewUserError("invalid --dir: " + err.Error())
	}
	hooksDir, err := setup.HooksDir(dir)
	if err != nil {
		return nil, err
	}
	root, err := setup.RepoRoot(dir)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to resolve --dir", err)
	}
	return &hookTarget{path: filepath.Join(hooksDir, "pre-commit"), rel: rel}, nil
}

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the jnldoc git hook",
		Long: `Manage a pre-commit hook that runs 'jnldoc status --check'.

The hook blocks a commit while any README is out of date with its
journals. Run 'jnldoc sync', stage the READMEs and commit again.

Subcommands:
  install    Install the pre-commit hook
  uninstall  Remove the hook, restoring any backup
  status     Show whether the hook is installed

Examples:
  jnldoc hooks status
  jnldoc hooks install           # Install pre-commit hook
  jnldoc hooks install --chain   # Keep an existing hook and run it first
  jnldoc hooks uninstall         # Remove hook, restore backup`,
	}

	cmd.AddCommand(newHooksStatusCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// newHooksStatusCmd creates the hooks status subcommand.
func newHooksStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the pre-commit hook is installed",
		Args:  cobra.NoArgs,
		RunE:  runHooksStatus,
	}
}

// runHooksStatus executes the hooks status command.
func runHooksStatus(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	target, err := resolveHookTarget(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	status := setup.CheckHookStatus(target.path)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"pre_commit": map[string]any{
				"path":      target.path,
				"installed": status.Installed,
				"chained":   status.Chained,
			},
		})
	}

	printer.Section("Git Hooks")
	statusStr := printer.Status("not installed", output.LevelWarn)
	if status.Installed {
		label := "installed"
		if status.Chained {
			label += " (chained)"
		}
		statusStr = printer.Status(label, output.LevelOK)
	}
	printer.KeyValue("pre-commit", statusStr)
	return nil
}

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var opts setup.HookOptions
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the pre-commit hook",
		Long: `Install the jnldoc pre-commit hook to .git/hooks/.

Use --chain to preserve an existing hook (it runs first).
Use --force to overwrite an existing hook without backup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, opts, dryRun)
		},
	}

	cmd.Flags().BoolVar(&opts.Chain, "chain", false, "Preserve an existing hook, run it first")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing hook without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksInstall executes the hooks install command.
func runHooksInstall(cmd *cobra.Command, opts setup.HookOptions, dryRun bool) error {
	printer := newPrinter(cmd)

	target, err := resolveHookTarget(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	opts.Dir = target.rel
	existingHook := setup.HookExists(target.path)

	if dryRun {
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":          "dry_run",
				"hook":            "pre-commit",
				"exists":          existingHook,
				"would_chain":     opts.Chain && existingHook && !opts.Force,
				"would_overwrite": opts.Force && existingHook,
			})
		}
		printer.Section("Dry Run")
		printer.KeyValue("Hook", "pre-commit")
		printer.KeyValue("Path", target.path)
		printer.KeyValue("Action", setup.DescribeInstallAction(existingHook, opts.Chain, opts.Force))
		return nil
	}

	chained, err := setup.Install(target.path, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"hook":    "pre-commit",
			"chained": chained,
		})
	}
	msg := "Installed pre-commit hook"
	if chained {
		msg += " (existing hook backed up and chained)"
	}
	return printer.Success(map[string]any{"message": msg})
}

// newHooksUninstallCmd creates the hooks uninstall subcommand.
func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the pre-commit hook",
		Long:  `Remove the jnldoc pre-commit hook and restore any backup.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksUninstall executes the hooks uninstall command.
func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := newPrinter(cmd)

	target, err := resolveHookTarget(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		installed := setup.CheckHookStatus(target.path).Installed
		hasBackup := setup.HookExists(target.path + ".backup")
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":        "dry_run",
				"hook":          "pre-commit",
				"installed":     installed,
				"has_backup":    hasBackup,
				"would_restore": installed && hasBackup,
			})
		}
		printer.Section("Dry Run")
		printer.KeyValue("Hook", "pre-commit")
		printer.KeyValue("Path", target.path)
		printer.KeyValue("Action", setup.DescribeUninstallAction(installed, hasBackup))
		return nil
	}

	removed, restored, err := setup.Uninstall(target.path)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":   "ok",
			"hook":     "pre-commit",
			"removed":  removed,
			"restored": restored,
		})
	}
	switch {
	case !removed:
		return printer.Success(map[string]any{"message": "No jnldoc hook installed"})
	case restored:
		return printer.Success(map[string]any{"message": "Removed pre-commit hook and restored original"})
	default:
		return printer.Success(map[string]any{"message": "Removed pre-commit hook"})
	}
}
