// Package watch reports journal directories whose files changed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a directory must stay quiet before its
// change is reported.
const DefaultDebounce = 250 * time.Millisecond

const minTick = 10 * time.Millisecond

// ErrClosed is returned by Run when the event source shuts down by itself.
var ErrClosed = errors.New("watcher closed")

// eventSource is the subset of *fsnotify.Watcher the loop needs.
type eventSource interface {
	Add(name string) error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Close() error
}

type fsnotifySource struct {
	w *fsnotify.Watcher
}

func (s fsnotifySource) Add(name string) error          { return s.w.Add(name) }
func (s fsnotifySource) Events() <-chan fsnotify.Event { return s.w.Events }
func (s fsnotifySource) Errors() <-chan error          { return s.w.Errors }
func (s fsnotifySource) Close() error                  { return s.w.Close() }

// Options configures a Watcher.
type Options struct {
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// IsJournal selects the files whose changes count.
	IsJournal func(name string) bool
	// IsExcluded selects first-level directories to ignore.
	IsExcluded func(dir string) bool
	Logger     *zap.Logger
}

// Watcher watches the first-level subdirectories of a root directory.
type Watcher struct {
	root       string
	src        eventSource
	debounce   time.Duration
	isJournal  func(string) bool
	isExcluded func(string) bool
	log        *zap.Logger
	pending    map[string]time.Time
}

// New creates a Watcher over root and its subdirectories dirs.
func New(root string, dirs []string, opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := newWatcher(root, fsnotifySource{w: fw}, opts)
	if err := w.addAll(dirs); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

func newWatcher(root string, src eventSource, opts Options) *Watcher {
	w := &Watcher{
		root:       filepath.Clean(root),
		src:        src,
		debounce:   opts.Debounce,
		isJournal:  opts.IsJournal,
		isExcluded: opts.IsExcluded,
		log:        opts.Logger,
		pending:    make(map[string]time.Time),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.isJournal == nil {
		w.isJournal = func(string) bool { return true }
	}
	if w.isExcluded == nil {
		w.isExcluded = func(string) bool { return false }
	}
	if w.log == nil {
		w.log = zap.NewNop()
	}
	return w
}

func (w *Watcher) addAll(dirs []string) error {
	if err := w.src.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	for _, dir := range dirs {
		if err := w.src.Add(filepath.Join(w.root, dir)); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return nil
}

// Run delivers changed directories to onChange until ctx is cancelled.
// Calls to onChange are serialized on the calling goroutine. The event
// source is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func(dir string)) error {
	defer func() { _ = w.src.Close() }()

	ticker := time.NewTicker(max(w.debounce/2, minTick))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.src.Events():
			if !ok {
				return ErrClosed
			}
			w.handle(event)
		case err, ok := <-w.src.Errors():
			if !ok {
				return ErrClosed
			}
			w.log.Warn("watch error", zap.Error(err))
		case now := <-ticker.C:
			for _, dir := range w.settled(now) {
				onChange(dir)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	switch len(parts) {
	case 1:
		// A new first-level directory. Files created in the root are not
		// watched.
		if event.Has(fsnotify.Create) && !w.isExcluded(parts[0]) && isDir(event.Name) {
			if err := w.src.Add(event.Name); err == nil {
				w.log.Debug("watching new directory", zap.String("dir", parts[0]))
			}
		}
	case 2:
		dir, name := parts[0], parts[1]
		if w.isExcluded(dir) || !w.isJournal(name) {
			return
		}
		w.log.Debug("journal changed", zap.String("dir", dir), zap.String("file", name), zap.String("op", event.Op.String()))
		w.pending[dir] = time.Now()
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// settled removes and returns, in lexical order, the directories that have
// been quiet for the debounce interval.
func (w *Watcher) settled(now time.Time) []string {
	var dirs []string
	for dir, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			dirs = append(dirs, dir)
			delete(w.pending, dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}
