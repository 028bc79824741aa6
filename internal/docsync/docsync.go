// Package docsync regenerates the documentation block of every journal
// directory in a workspace.
package docsync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gorewood/jnldoc/internal/docblock"
	"github.com/gorewood/jnldoc/internal/merge"
	"github.com/gorewood/jnldoc/internal/workspace"
)

// Action is the per-directory outcome of a sync.
type Action string

// Sync outcomes. The first three mirror the merge outcomes.
const (
	Created   = Action(merge.Created)
	UpToDate  = Action(merge.UpToDate)
	Updated   = Action(merge.Updated)
	Unchanged Action = "unchanged"
	Skipped   Action = "skipped"
	Failed    Action = "failed"
)

// Result reports what happened to one directory.
type Result struct {
	Dir    string
	Files  []string
	Action Action
	Err    error
}

// Stale reports whether the directory's documentation did not (or, in a
// dry run, does not) match its journals.
func (r Result) Stale() bool {
	return r.Action == Created || r.Action == Updated
}

// Progress receives human-readable progress lines. *output.Printer
// satisfies it.
type Progress interface {
	Print(format string, args ...any)
	Warn(format string, args ...any)
}

// NopProgress discards progress.
type NopProgress struct{}

func (NopProgress) Print(string, ...any) {}
func (NopProgress) Warn(string, ...any)  {}

// Options configures a Syncer.
type Options struct {
	// Marker is the sentinel line that starts the generated block.
	Marker string
	// DryRun computes actions without writing any file.
	DryRun bool
}

// Syncer runs the collect, render, merge, write pipeline.
type Syncer struct {
	ws       *workspace.Workspace
	builder  *docblock.Builder
	dryRun   bool
	progress Progress
	log      *zap.Logger
}

// New creates a Syncer. A nil progress or logger discards output.
func New(ws *workspace.Workspace, opts Options, progress Progress, log *zap.Logger) *Syncer {
	if progress == nil {
		progress = NopProgress{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{
		ws:       ws,
		builder:  docblock.New(opts.Marker),
		dryRun:   opts.DryRun,
		progress: progress,
		log:      log,
	}
}

// Run syncs every directory of the workspace in lexical order. Directory
// failures are reported in the results; the returned error is set only
// when the directories cannot be listed or ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) ([]Result, error) {
	dirs, err := s.ws.Directories()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(dirs))
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, s.SyncDir(ctx, dir))
	}
	return results, nil
}

// SyncDir syncs a single directory.
func (s *Syncer) SyncDir(ctx context.Context, dir string) Result {
	s.progress.Print("Entering directory %s...\n", dir)
	res := s.syncDir(ctx, dir)
	s.progress.Print("... %s\n\n", res.Action)

	fields := []zap.Field{zap.String("dir", dir), zap.String("action", string(res.Action)), zap.Int("files", len(res.Files))}
	if res.Err != nil {
		s.log.Warn("sync directory", append(fields, zap.Error(res.Err))...)
	} else {
		s.log.Debug("sync directory", fields...)
	}
	return res
}

func (s *Syncer) syncDir(ctx context.Context, dir string) Result {
	res := Result{Dir: dir}

	files, err := s.ws.JournalFiles(dir)
	if err != nil {
		res.Action, res.Err = Failed, err
		return res
	}
	res.Files = files
	if len(files) == 0 {
		res.Action = Skipped
		return res
	}

	sources, err := s.loadAll(ctx, dir, files)
	if err != nil {
		res.Action, res.Err = Failed, err
		return res
	}

	existing, _, err := s.ws.ReadDoc(dir)
	if err != nil {
		res.Action, res.Err = Failed, err
		return res
	}

	merged, err := merge.Reconcile(existing, s.builder.Build(sources), s.builder.Marker())
	if err != nil {
		var patchErr *merge.PatchApplicationError
		if errors.As(err, &patchErr) {
			s.progress.Warn("%s: %v", s.ws.DocPath(dir), err)
			res.Action, res.Err = Unchanged, err
			return res
		}
		res.Action, res.Err = Failed, err
		return res
	}

	res.Action = Action(merged.Action)
	if !merged.Changed() || s.dryRun {
		return res
	}
	if err := s.ws.WriteDoc(dir, merged.Text); err != nil {
		res.Action, res.Err = Failed, err
		return res
	}
	s.log.Debug("wrote documentation", zap.String("file", s.ws.DocPath(dir)), zap.Int("bytes", len(merged.Text)))
	return res
}

// loadAll renders every journal in dir. A failing journal does not stop
// the others from being parsed, so all problems are reported in one pass,
// but any failure fails the directory.
func (s *Syncer) loadAll(ctx context.Context, dir string, files []string) ([]docblock.Source, error) {
	sources := make([]docblock.Source, 0, len(files))
	var errs []error
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.progress.Print("  %s\n", name)

		doc, err := s.ws.LoadJournal(dir, name)
		if err != nil {
			s.progress.Warn("%s: %v", dir, err)
			s.log.Debug("journal failed", zap.String("dir", dir), zap.String("file", name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		sources = append(sources, doc)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%d of %d journals failed: %w", len(errs), len(files), errors.Join(errs...))
	}
	return sources, nil
}

// Summary counts results per action.
type Summary map[Action]int

// Summarize counts results per action.
func Summarize(results []Result) Summary {
	sum := Summary{}
	for _, r := range results {
		sum[r.Action]++
	}
	return sum
}

// Stale is the number of directories whose documentation was (or would be)
// rewritten.
func (s Summary) Stale() int {
	return s[Created] + s[Updated]
}

// Failures is the number of directories that could not be synced.
func (s Summary) Failures() int {
	return s[Failed]
}
