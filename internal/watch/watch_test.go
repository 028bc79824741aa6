package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/goleak"
)

type fakeSource struct {
	mu     sync.Mutex
	added  []string
	events chan fsnotify.Event
	errs   chan error
	closed bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		events: make(chan fsnotify.Event),
		errs:   make(chan error),
	}
}

func (f *fakeSource) Add(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, name)
	return nil
}

func (f *fakeSource) Events() <-chan fsnotify.Event { return f.events }
func (f *fakeSource) Errors() <-chan error          { return f.errs }

func (f *fakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSource) wasClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeSource) addedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.added...)
}

const root = "/work"

func testOptions() Options {
	return Options{
		Debounce:   20 * time.Millisecond,
		IsJournal:  func(name string) bool { return strings.HasSuffix(name, ".jnl") },
		IsExcluded: func(dir string) bool { return dir == ".git" },
	}
}

// start runs the watcher and returns a channel of reported directories and
// a stop function that waits for Run to return.
func start(t *testing.T, w *Watcher) (<-chan string, func() error) {
	t.Helper()
	changes := make(chan string, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(dir string) { changes <- dir })
	}()
	return changes, func() error {
		cancel()
		return <-done
	}
}

func expectChange(t *testing.T, changes <-chan string, want string) {
	t.Helper()
	select {
	case got := <-changes:
		if got != want {
			t.Errorf("changed dir = %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported for %q", want)
	}
}

func expectQuiet(t *testing.T, changes <-chan string) {
	t.Helper()
	select {
	case got := <-changes:
		t.Errorf("unexpected change for %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRun_DebouncesPerDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := newFakeSource()
	w := newWatcher(root, src, testOptions())
	changes, stop := start(t, w)

	for range 3 {
		src.events <- fsnotify.Event{Name: filepath.Join(root, "p", "a.jnl"), Op: fsnotify.Write}
	}
	expectChange(t, changes, "p")
	expectQuiet(t, changes)

	if err := stop(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if !src.wasClosed() {
		t.Error("event source not closed")
	}
}

func TestRun_IgnoresIrrelevantEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := newFakeSource()
	w := newWatcher(root, src, testOptions())
	changes, stop := start(t, w)

	ignored := []fsnotify.Event{
		{Name: filepath.Join(root, "p", "README.md"), Op: fsnotify.Write},
		{Name: filepath.Join(root, "p", ".jnldoc-123"), Op: fsnotify.Rename},
		{Name: filepath.Join(root, "p", "a.jnl"), Op: fsnotify.Chmod},
		{Name: filepath.Join(root, ".git", "a.jnl"), Op: fsnotify.Write},
		{Name: filepath.Join(root, "p", "deep", "a.jnl"), Op: fsnotify.Write},
		{Name: filepath.Join(root, "top.jnl"), Op: fsnotify.Write},
		{Name: "/elsewhere/p/a.jnl", Op: fsnotify.Write},
	}
	for _, ev := range ignored {
		src.events <- ev
	}
	expectQuiet(t, changes)

	if err := stop(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRun_ReportsEachDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := newFakeSource()
	w := newWatcher(root, src, testOptions())
	changes, stop := start(t, w)

	src.events <- fsnotify.Event{Name: filepath.Join(root, "q", "b.jnl"), Op: fsnotify.Create}
	src.events <- fsnotify.Event{Name: filepath.Join(root, "p", "a.jnl"), Op: fsnotify.Remove}

	got := map[string]bool{}
	for range 2 {
		select {
		case dir := <-changes:
			got[dir] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for changes")
		}
	}
	if !got["p"] || !got["q"] {
		t.Errorf("changed dirs = %v, want p and q", got)
	}

	if err := stop(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRun_WatchesNewDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	for _, sub := range []string{"new", ".git"} {
		if err := os.Mkdir(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "x.jnl"), []byte("<Journal/>"), 0o600); err != nil {
		t.Fatal(err)
	}

	src := newFakeSource()
	w := newWatcher(dir, src, testOptions())
	_, stop := start(t, w)

	src.events <- fsnotify.Event{Name: filepath.Join(dir, "new"), Op: fsnotify.Create}
	src.events <- fsnotify.Event{Name: filepath.Join(dir, ".git"), Op: fsnotify.Create}
	src.events <- fsnotify.Event{Name: filepath.Join(dir, "x.jnl"), Op: fsnotify.Create}
	src.events <- fsnotify.Event{Name: filepath.Join(dir, "gone"), Op: fsnotify.Create}
	if err := stop(); err != nil {
		t.Errorf("Run() error = %v", err)
	}

	added := src.addedPaths()
	if len(added) != 1 || added[0] != filepath.Join(dir, "new") {
		t.Errorf("added = %v, want only %s", added, filepath.Join(dir, "new"))
	}
}

func TestRun_SourceClosed(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := newFakeSource()
	w := newWatcher(root, src, testOptions())
	close(src.events)

	err := w.Run(context.Background(), func(string) {})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Run() error = %v, want ErrClosed", err)
	}
}

func TestAddAll(t *testing.T) {
	src := newFakeSource()
	w := newWatcher(root, src, testOptions())
	if err := w.addAll([]string{"a", "b"}); err != nil {
		t.Fatalf("addAll() error = %v", err)
	}

	want := []string{root, filepath.Join(root, "a"), filepath.Join(root, "b")}
	got := src.addedPaths()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("added = %v, want %v", got, want)
	}
}

func TestSettled(t *testing.T) {
	w := newWatcher(root, newFakeSource(), Options{Debounce: time.Second})
	now := time.Now()
	w.pending["b"] = now.Add(-2 * time.Second)
	w.pending["a"] = now.Add(-time.Second)
	w.pending["c"] = now

	got := w.settled(now)
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("settled() = %v, want [a b]", got)
	}
	if _, ok := w.pending["c"]; !ok || len(w.pending) != 1 {
		t.Errorf("pending = %v, want only c", w.pending)
	}
}
