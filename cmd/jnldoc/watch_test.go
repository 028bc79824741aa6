package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatch_SyncsThenStopsOnCancel(t *testing.T) {
	isolateConfig(t)
	root := writeTree(t, map[string]string{"p/a.jnl": journalA})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	cmd := newRootCmd()
	stdout := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--dir", root, "watch"})

	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("watch error = %v", err)
	}
	if !strings.Contains(stdout.String(), "... created") {
		t.Errorf("stdout = %q, want the initial sync", stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "p", "README.md")); err != nil {
		t.Errorf("initial sync did not write README: %v", err)
	}
}
