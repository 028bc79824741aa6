package mcp

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/jnldoc/internal/docsync"
)

// --- render_journal ---

// RenderInput is the input for the render_journal tool.
type RenderInput struct {
	Path string `json:"path" jsonschema:"journal path relative to the working directory, as dir/name.jnl"`
}

// RenderOutput is the output for the render_journal tool.
type RenderOutput struct {
	File        string `json:"file"        jsonschema:"journal file name"`
	Description string `json:"description" jsonschema:"journal description, empty when the journal has none"`
	Code        string `json:"code"        jsonschema:"transpiled pseudo-code"`
}

func handleRenderJournal(env Env) mcp.ToolHandlerFor[RenderInput, RenderOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RenderInput) (*mcp.CallToolResult, RenderOutput, error) {
		dir, name, err := splitJournalPath(input.Path)
		if err != nil {
			return nil, RenderOutput{}, err
		}
		if !env.Workspace.IsJournal(name) {
			return nil, RenderOutput{}, fmt.Errorf("%s is not a journal file", input.Path)
		}

		doc, err := env.Workspace.LoadJournal(dir, name)
		if err != nil {
			return nil, RenderOutput{}, fmt.Errorf("rendering %s: %w", input.Path, err)
		}
		return nil, RenderOutput{
			File:        doc.Filename(),
			Description: doc.Description(),
			Code:        doc.Code(),
		}, nil
	}
}

// splitJournalPath accepts exactly "dir/name" inside the working directory.
func splitJournalPath(p string) (dir, name string, err error) {
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	dir, name = path.Split(clean)
	dir = strings.TrimSuffix(dir, "/")
	if p == "" || path.IsAbs(clean) || dir == "" || strings.Contains(dir, "/") || dir == ".." || name == ".." {
		return "", "", fmt.Errorf("path %q must have the form dir/name.jnl", p)
	}
	return dir, name, nil
}

// --- docs_status and sync_docs ---

// DirStatus is one directory's outcome.
type DirStatus struct {
	Dir    string   `json:"dir"             jsonschema:"directory name"`
	Action string   `json:"action"          jsonschema:"created, up-to-date, updated, unchanged, skipped or failed"`
	Files  []string `json:"files,omitempty" jsonschema:"journal files in the directory"`
	Error  string   `json:"error,omitempty" jsonschema:"failure detail"`
}

// SyncOutput is the output for docs_status and sync_docs.
type SyncOutput struct {
	Directories []DirStatus `json:"directories" jsonschema:"per-directory outcomes in lexical order"`
	Stale       int         `json:"stale"       jsonschema:"directories whose documentation was or would be rewritten"`
	Failed      int         `json:"failed"      jsonschema:"directories that could not be processed"`
}

// StatusInput is the input for the docs_status tool (no parameters needed).
type StatusInput struct{}

// SyncInput is the input for the sync_docs tool.
type SyncInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"only sync this directory"`
}

func handleDocsStatus(env Env) mcp.ToolHandlerFor[StatusInput, SyncOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, SyncOutput, error) {
		results, err := newSyncer(env, true).Run(ctx)
		if err != nil {
			return nil, SyncOutput{}, err
		}
		return nil, toSyncOutput(results), nil
	}
}

func handleSyncDocs(env Env) mcp.ToolHandlerFor[SyncInput, SyncOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SyncInput) (*mcp.CallToolResult, SyncOutput, error) {
		syncer := newSyncer(env, false)
		if input.Dir == "" {
			results, err := syncer.Run(ctx)
			if err != nil {
				return nil, SyncOutput{}, err
			}
			return nil, toSyncOutput(results), nil
		}

		dirs, err := env.Workspace.Directories()
		if err != nil {
			return nil, SyncOutput{}, err
		}
		if !slices.Contains(dirs, input.Dir) {
			return nil, SyncOutput{}, errors.New("unknown directory: " + input.Dir)
		}
		return nil, toSyncOutput([]docsync.Result{syncer.SyncDir(ctx, input.Dir)}), nil
	}
}

func newSyncer(env Env, dryRun bool) *docsync.Syncer {
	return docsync.New(env.Workspace, docsync.Options{Marker: env.Marker, DryRun: dryRun}, nil, env.Logger)
}

func toSyncOutput(results []docsync.Result) SyncOutput {
	out := SyncOutput{Directories: make([]DirStatus, 0, len(results))}
	for _, r := range results {
		status := DirStatus{Dir: r.Dir, Action: string(r.Action), Files: r.Files}
		if r.Err != nil {
			status.Error = r.Err.Error()
		}
		out.Directories = append(out.Directories, status)
	}
	sum := docsync.Summarize(results)
	out.Stale = sum.Stale()
	out.Failed = sum.Failures()
	return out
}
