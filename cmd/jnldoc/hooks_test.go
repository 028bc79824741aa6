package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/jnldoc/internal/output"
)

// newRepo creates a directory with an empty .git directory.
func newRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestHooks_InstallStatusUninstall(t *testing.T) {
	root := newRepo(t)
	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")

	stdout, _, err := execute(t, "--dir", root, "hooks", "install")
	if err != nil {
		t.Fatalf("install error = %v", err)
	}
	if !strings.Contains(stdout, "Installed pre-commit hook") {
		t.Errorf("install stdout = %q", stdout)
	}
	if !strings.Contains(readFile(t, hookPath), "jnldoc status --check") {
		t.Error("hook does not run the check")
	}

	stdout, _, err = execute(t, "--json", "--dir", root, "hooks", "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	var status struct {
		PreCommit struct {
			Installed bool `json:"installed"`
			Chained   bool `json:"chained"`
		} `json:"pre_commit"`
	}
	if err := json.Unmarshal([]byte(stdout), &status); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if !status.PreCommit.Installed || status.PreCommit.Chained {
		t.Errorf("status = %+v", status)
	}

	_, _, err = execute(t, "--dir", root, "hooks", "install")
	if got := output.GetExitCode(err); got != output.ExitConflict {
		t.Errorf("second install exit code = %d, want %d", got, output.ExitConflict)
	}

	stdout, _, err = execute(t, "--dir", root, "hooks", "uninstall")
	if err != nil {
		t.Fatalf("uninstall error = %v", err)
	}
	if !strings.Contains(stdout, "Removed pre-commit hook") {
		t.Errorf("uninstall stdout = %q", stdout)
	}
	if _, err := os.Stat(hookPath); !os.IsNotExist(err) {
		t.Errorf("hook still present (stat err %v)", err)
	}
}

func TestHooks_InstallSubdirectory(t *testing.T) {
	root := newRepo(t)
	docs := filepath.Join(root, "docs")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "--dir", docs, "hooks", "install"); err != nil {
		t.Fatalf("install error = %v", err)
	}
	hook := readFile(t, filepath.Join(root, ".git", "hooks", "pre-commit"))
	if !strings.Contains(hook, `jnldoc --dir "docs" status --check`) {
		t.Errorf("hook does not pass --dir:\n%s", hook)
	}
}

func TestHooks_InstallDryRun(t *testing.T) {
	root := newRepo(t)

	stdout, _, err := execute(t, "--dir", root, "hooks", "install", "--dry-run")
	if err != nil {
		t.Fatalf("install --dry-run error = %v", err)
	}
	if !strings.Contains(stdout, "would install") {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(root, ".git", "hooks", "pre-commit")); !os.IsNotExist(err) {
		t.Errorf("dry run wrote a hook (stat err %v)", err)
	}
}

func TestHooks_NotARepo(t *testing.T) {
	_, stderr, err := execute(t, "--dir", t.TempDir(), "hooks", "status")
	if err == nil {
		t.Fatal("hooks status outside a repository error = nil")
	}
	if !strings.Contains(stderr, "not in a git repository") {
		t.Errorf("stderr = %q", stderr)
	}
}
