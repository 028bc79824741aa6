package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/jnldoc/internal/output"
)

func TestRender(t *testing.T) {
	root := writeTree(t, map[string]string{"p/a.jnl": journalA})

	stdout, _, err := execute(t, "render", filepath.Join(root, "p", "a.jnl"))
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	want := "a.jnl\n\nTest journal\n# hi\nTrace(x)\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_JSON(t *testing.T) {
	root := writeTree(t, map[string]string{"a.jnl": journalA})

	stdout, _, err := execute(t, "--json", "render", filepath.Join(root, "a.jnl"))
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	want := map[string]string{"file": "a.jnl", "description": "Test journal", "code": "# hi\nTrace(x)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Errors(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.jnl":    "<Journal>",
		"nocode.jnl": "<Journal><Description>d</Description></Journal>",
		"noattr.jnl": "<Journal><Description/><CodeBlock><TraceEntry/></CodeBlock></Journal>",
	})

	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{"malformed", "bad.jnl", "bad.jnl"},
		{"missing section", "nocode.jnl", "CodeBlock"},
		{"missing attribute", "noattr.jnl", "Expression"},
		{"missing file", "nope.jnl", "nope.jnl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, "render", filepath.Join(root, tt.file))
			if got := output.GetExitCode(err); got != output.ExitUserError {
				t.Fatalf("exit code = %d, want %d (err %v)", got, output.ExitUserError, err)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantErr)
			}
		})
	}
}
