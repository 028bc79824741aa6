package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/jnldoc/internal/output"
)

// hookSignature identifies a hook written by Install.
const hookSignature = "jnldoc status --check"

const backupSuffix = ".backup"

// HookStatus describes the pre-commit hook on disk.
type HookStatus struct {
	Installed bool
	Chained   bool
}

// HookOptions configures Install.
type HookOptions struct {
	// Dir is the journal root relative to the repository root; "" or "."
	// means the repository root.
	Dir string
	// Chain backs up an existing hook and runs it before the check.
	Chain bool
	// Force overwrites an existing hook without a backup.
	Force bool
}

// HooksDir finds the hooks directory of the git repository containing
// start. For a linked worktree, whose .git file points at
// .git/worktrees/<name>, this is the hooks directory of the main repository,
// which git shares across worktrees.
func HooksDir(start string) (string, error) {
	_, gitDir, err := findGitDir(start)
	if err != nil {
		return "", err
	}
	common, err := commonDir(gitDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(common, "hooks"), nil
}

// commonDir resolves gitDir/commondir, which linked worktrees carry, to the
// shared git directory. Without that file gitDir is its own common dir.
func commonDir(gitDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return gitDir, nil
		}
		return "", output.NewSystemErrorWithCause("failed to read commondir", err)
	}
	common := strings.TrimSpace(string(data))
	if common == "" {
		return gitDir, nil
	}
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Clean(common), nil
}

// RepoRoot returns the top-level directory of the repository containing start.
func RepoRoot(start string) (string, error) {
	root, _, err := findGitDir(start)
	return root, err
}

func findGitDir(start string) (root, gitDir string, err error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", "", output.NewSystemErrorWithCause("failed to resolve "+start, err)
	}
	for {
		candidate := filepath.Join(dir, ".git")
		info, statErr := os.Stat(candidate)
		if statErr == nil {
			if info.IsDir() {
				return dir, candidate, nil
			}
			target, linkErr := readGitFile(candidate)
			if linkErr != nil {
				return "", "", linkErr
			}
			return dir, target, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", output.NewUserError("not in a git repository")
		}
		dir = parent
	}
}

// readGitFile resolves a "gitdir: <path>" file.
func readGitFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read "+path, err)
	}
	target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", output.NewSystemError("unrecognized .git file: " + path)
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}

// HookExists reports whether a file exists at path.
func HookExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckHookStatus reports whether the hook at hookPath was written by
// Install, and whether it chains to a backup.
func CheckHookStatus(hookPath string) HookStatus {
	content, err := os.ReadFile(hookPath)
	if err != nil || !strings.Contains(string(content), hookSignature) {
		return HookStatus{}
	}
	return HookStatus{
		Installed: true,
		Chained:   strings.Contains(string(content), backupSuffix),
	}
}

// GeneratePreCommitHook returns the hook script. dir is passed to --dir
// when it is not the repository root. A non-empty chainTo is the path of a
// backed-up hook that runs first; its failure blocks the commit.
func GeneratePreCommitHook(dir, chainTo string) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# jnldoc pre-commit hook\n")
	b.WriteString("# Blocks commits while generated journal documentation is out of date.\n")

	if chainTo != "" {
		backup := shellQuote(filepath.ToSlash(chainTo))
		b.WriteString(`
if [ -x ` + backup + ` ]; then
  ` + backup + ` "$@" || exit $?
fi
`)
	}

	check := "jnldoc status --check"
	if dir = filepath.ToSlash(filepath.Clean(dir)); dir != "." && dir != "" {
		check = fmt.Sprintf("jnldoc --dir %q status --check", dir)
	}
	b.WriteString(`
if command -v jnldoc >/dev/null 2>&1; then
  ` + check + ` || {
    echo "jnldoc: documentation is out of date; run 'jnldoc sync' and stage the result" >&2
    exit 1
  }
fi
`)
	return b.String()
}

// shellQuote single-quotes s for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// BackupExistingHook moves an existing hook to hookPath.backup.
func BackupExistingHook(hookPath string) error {
	if err := os.Rename(hookPath, hookPath+backupSuffix); err != nil {
		return output.NewSystemErrorWithCause("failed to backup existing hook", err)
	}
	return nil
}

// Install writes the pre-commit hook. It reports whether an existing hook
// was backed up and chained.
func Install(hookPath string, opts HookOptions) (chained bool, err error) {
	existing := HookExists(hookPath)
	if existing && !opts.Force {
		if !opts.Chain {
			return false, output.NewConflictError("hook already exists; use --chain to preserve or --force to overwrite")
		}
		if CheckHookStatus(hookPath).Installed {
			return false, output.NewConflictError("jnldoc hook already installed")
		}
		if err := BackupExistingHook(hookPath); err != nil {
			return false, err
		}
		chained = true
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to create hooks directory", err)
	}
	chainTo := ""
	if chained {
		chainTo = hookPath + backupSuffix
	}
	// #nosec G306 -- hook needs execute permission
	if err := os.WriteFile(hookPath, []byte(GeneratePreCommitHook(opts.Dir, chainTo)), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to write hook", err)
	}
	return chained, nil
}

// Uninstall removes a hook written by Install and restores any backup.
// A hook jnldoc did not write is left alone and reported as not removed.
func Uninstall(hookPath string) (removed, restored bool, err error) {
	if !CheckHookStatus(hookPath).Installed {
		return false, false, nil
	}
	if err := os.Remove(hookPath); err != nil {
		return false, false, output.NewSystemErrorWithCause("failed to remove hook", err)
	}

	backup := hookPath + backupSuffix
	if err := os.Rename(backup, hookPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, false, nil
		}
		return true, false, output.NewSystemErrorWithCause("failed to restore backup", err)
	}
	return true, true, nil
}

// DescribeInstallAction says what Install would do.
func DescribeInstallAction(existingHook, chain, force bool) string {
	if !existingHook {
		return "would install"
	}
	switch {
	case force:
		return "would overwrite existing hook"
	case chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// DescribeUninstallAction says what Uninstall would do.
func DescribeUninstallAction(installed, hasBackup bool) string {
	switch {
	case !installed:
		return "no jnldoc hook installed"
	case hasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}
