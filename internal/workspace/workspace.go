// Package workspace reads journals and reads and writes documentation files
// in the first-level subdirectories of a working directory.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/gorewood/jnldoc/internal/journal"
	"github.com/gorewood/jnldoc/internal/output"
)

const (
	// DefaultDocFile is the documentation file maintained in each directory.
	DefaultDocFile = "README.md"

	tempPrefix = ".jnldoc-"
	docMode    = fs.FileMode(0o644)
)

var (
	// DefaultExtensions are the journal file extensions, matched exactly.
	DefaultExtensions = []string{".jnl", ".JNL"}
	// DefaultExcludeDirs are never treated as journal directories.
	DefaultExcludeDirs = []string{".git", ".hg", ".svn"}
)

// Options configures a Workspace. Zero values select the defaults.
type Options struct {
	DocFile     string
	Extensions  []string
	ExcludeDirs []string
}

// Workspace is a working directory seen through a billy.Filesystem rooted
// at it. All paths it accepts and returns are relative to that root.
type Workspace struct {
	fs          billy.Filesystem
	docFile     string
	extensions  []string
	excludeDirs []string
}

// New creates a Workspace over fsys.
func New(fsys billy.Filesystem, opts Options) *Workspace {
	ws := &Workspace{
		fs:          fsys,
		docFile:     opts.DocFile,
		extensions:  opts.Extensions,
		excludeDirs: opts.ExcludeDirs,
	}
	if ws.docFile == "" {
		ws.docFile = DefaultDocFile
	}
	if len(ws.extensions) == 0 {
		ws.extensions = DefaultExtensions
	}
	if len(ws.excludeDirs) == 0 {
		ws.excludeDirs = DefaultExcludeDirs
	}
	return ws
}

// Root returns the underlying filesystem's root path.
func (w *Workspace) Root() string {
	return w.fs.Root()
}

// DocFile returns the documentation file name used in every directory.
func (w *Workspace) DocFile() string {
	return w.docFile
}

// DocPath returns the documentation file path for dir.
func (w *Workspace) DocPath(dir string) string {
	return w.fs.Join(dir, w.docFile)
}

// IsJournal reports whether name carries one of the journal extensions.
func (w *Workspace) IsJournal(name string) bool {
	for _, ext := range w.extensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether dir is one of the excluded directory names.
func (w *Workspace) IsExcluded(dir string) bool {
	return slices.Contains(w.excludeDirs, dir)
}

// Directories returns the first-level subdirectories in lexical order,
// without the excluded ones.
func (w *Workspace) Directories() ([]string, error) {
	infos, err := w.fs.ReadDir(".")
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to list working directory", err)
	}

	var dirs []string
	for _, info := range infos {
		if !info.IsDir() || w.IsExcluded(info.Name()) {
			continue
		}
		dirs = append(dirs, info.Name())
	}
	slices.Sort(dirs)
	return dirs, nil
}

// JournalFiles returns the names of the journal files in dir in lexical
// order. Subdirectories are not searched.
func (w *Workspace) JournalFiles(dir string) ([]string, error) {
	infos, err := w.fs.ReadDir(dir)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to list "+dir, err)
	}

	var names []string
	for _, info := range infos {
		if !info.Mode().IsRegular() || !w.IsJournal(info.Name()) {
			continue
		}
		names = append(names, info.Name())
	}
	slices.Sort(names)
	return names, nil
}

// OpenJournal opens a journal for reading. The caller closes it.
func (w *Workspace) OpenJournal(dir, name string) (io.ReadCloser, error) {
	f, err := w.fs.Open(w.fs.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return f, nil
}

// ReadDoc returns the documentation text of dir. A missing file reads as
// empty with exists false.
func (w *Workspace) ReadDoc(dir string) (text string, exists bool, err error) {
	path := w.DocPath(dir)
	data, err := util.ReadFile(w.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, output.NewSystemErrorWithCause("failed to read "+path, err)
	}
	return string(data), true, nil
}

// WriteDoc replaces the documentation file of dir with text. The content is
// written to a temporary file next to it and renamed into place, so readers
// see either the old or the new document. An existing file's mode is kept.
func (w *Workspace) WriteDoc(dir, text string) error {
	path := w.DocPath(dir)
	if err := w.atomicWrite(dir, path, []byte(text)); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

func (w *Workspace) atomicWrite(dir, path string, data []byte) error {
	mode := docMode
	if info, err := w.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := w.fs.TempFile(dir, tempPrefix)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = w.fs.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if ch, ok := w.fs.(billy.Change); ok {
		_ = ch.Chmod(tmpPath, mode)
	}
	if err := w.fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// LoadJournal parses and renders one journal. The file is closed before
// LoadJournal returns.
func (w *Workspace) LoadJournal(dir, name string) (*journal.Document, error) {
	rc, err := w.OpenJournal(dir, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return journal.Parse(name, rc)
}
