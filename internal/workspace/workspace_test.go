package workspace

import (
	"io"
	"strings"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	if err := util.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func newFixture(t *testing.T) (billy.Filesystem, *Workspace) {
	t.Helper()
	fs := memfs.New()
	writeFile(t, fs, "zeta/b.jnl", "b")
	writeFile(t, fs, "zeta/a.JNL", "a")
	writeFile(t, fs, "zeta/notes.txt", "x")
	writeFile(t, fs, "zeta/.jnl", "hidden")
	writeFile(t, fs, "zeta/nested/c.jnl", "c")
	writeFile(t, fs, "alpha/README.md", "# Alpha\n")
	writeFile(t, fs, ".git/config", "")
	writeFile(t, fs, "top.jnl", "ignored")
	return fs, New(fs, Options{})
}

func TestDirectories(t *testing.T) {
	_, ws := newFixture(t)

	got, err := ws.Directories()
	if err != nil {
		t.Fatalf("Directories() error = %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, got); diff != "" {
		t.Errorf("Directories() mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectories_CustomExcludes(t *testing.T) {
	fs, _ := newFixture(t)
	ws := New(fs, Options{ExcludeDirs: []string{"alpha"}})

	got, err := ws.Directories()
	if err != nil {
		t.Fatalf("Directories() error = %v", err)
	}
	if diff := cmp.Diff([]string{".git", "zeta"}, got); diff != "" {
		t.Errorf("Directories() mismatch (-want +got):\n%s", diff)
	}
}

func TestJournalFiles(t *testing.T) {
	_, ws := newFixture(t)

	got, err := ws.JournalFiles("zeta")
	if err != nil {
		t.Fatalf("JournalFiles() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a.JNL", "b.jnl"}, got); diff != "" {
		t.Errorf("JournalFiles() mismatch (-want +got):\n%s", diff)
	}

	got, err = ws.JournalFiles("alpha")
	if err != nil {
		t.Fatalf("JournalFiles(alpha) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("JournalFiles(alpha) = %v, want none", got)
	}
}

func TestIsJournal(t *testing.T) {
	ws := New(memfs.New(), Options{})
	tests := []struct {
		name string
		want bool
	}{
		{"macro.jnl", true},
		{"MACRO.JNL", true},
		{"macro.Jnl", false},
		{"macro.jnl.bak", false},
		{".jnl", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ws.IsJournal(tt.name); got != tt.want {
				t.Errorf("IsJournal(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestOpenJournal(t *testing.T) {
	_, ws := newFixture(t)

	rc, err := ws.OpenJournal("zeta", "b.jnl")
	if err != nil {
		t.Fatalf("OpenJournal() error = %v", err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "b" {
		t.Errorf("content = %q, want %q", data, "b")
	}

	if _, err := ws.OpenJournal("zeta", "missing.jnl"); err == nil {
		t.Error("OpenJournal(missing) error = nil")
	}
}

func TestReadDoc(t *testing.T) {
	_, ws := newFixture(t)

	text, exists, err := ws.ReadDoc("alpha")
	if err != nil || !exists || text != "# Alpha\n" {
		t.Errorf("ReadDoc(alpha) = %q, %v, %v", text, exists, err)
	}

	text, exists, err = ws.ReadDoc("zeta")
	if err != nil || exists || text != "" {
		t.Errorf("ReadDoc(zeta) = %q, %v, %v; want empty, false, nil", text, exists, err)
	}
}

func TestWriteDoc(t *testing.T) {
	fs, ws := newFixture(t)

	if err := ws.WriteDoc("zeta", "generated\n"); err != nil {
		t.Fatalf("WriteDoc(new) error = %v", err)
	}
	if err := ws.WriteDoc("alpha", "# Alpha\nmore\n"); err != nil {
		t.Fatalf("WriteDoc(existing) error = %v", err)
	}

	for dir, want := range map[string]string{"zeta": "generated\n", "alpha": "# Alpha\nmore\n"} {
		text, exists, err := ws.ReadDoc(dir)
		if err != nil || !exists {
			t.Fatalf("ReadDoc(%s) = %v, %v", dir, exists, err)
		}
		if text != want {
			t.Errorf("ReadDoc(%s) = %q, want %q", dir, text, want)
		}
	}

	for _, dir := range []string{"zeta", "alpha"} {
		infos, err := fs.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir(%s): %v", dir, err)
		}
		for _, info := range infos {
			if strings.HasPrefix(info.Name(), tempPrefix) {
				t.Errorf("temp file left behind in %s: %s", dir, info.Name())
			}
		}
	}
}

func TestWriteDoc_CustomDocFile(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "d/x.jnl", "")
	ws := New(fs, Options{DocFile: "JOURNALS.md"})

	if err := ws.WriteDoc("d", "text"); err != nil {
		t.Fatalf("WriteDoc() error = %v", err)
	}
	if _, err := fs.Stat("d/JOURNALS.md"); err != nil {
		t.Errorf("Stat(d/JOURNALS.md) error = %v", err)
	}
	if ws.DocPath("d") != "d/JOURNALS.md" {
		t.Errorf("DocPath() = %q", ws.DocPath("d"))
	}
}

func TestLoadJournal(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "d/ok.jnl", `<Journal><Description>d</Description><CodeBlock><TraceEntry Expression="x"/></CodeBlock></Journal>`)
	writeFile(t, fs, "d/bad.jnl", `<Journal>`)
	ws := New(fs, Options{})

	doc, err := ws.LoadJournal("d", "ok.jnl")
	if err != nil {
		t.Fatalf("LoadJournal(ok) error = %v", err)
	}
	if doc.Filename() != "ok.jnl" || doc.Code() != "Trace(x)" {
		t.Errorf("LoadJournal(ok) = %q, %q", doc.Filename(), doc.Code())
	}

	if _, err := ws.LoadJournal("d", "bad.jnl"); err == nil {
		t.Error("LoadJournal(bad) error = nil")
	}
}
