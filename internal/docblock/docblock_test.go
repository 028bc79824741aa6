package docblock

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testMarker = "<!-- generated -->"

type fakeSource struct {
	name, desc, code string
}

func (f fakeSource) Filename() string    { return f.name }
func (f fakeSource) Description() string { return f.desc }
func (f fakeSource) Code() string        { return f.code }

func TestBuild(t *testing.T) {
	b := New(testMarker)
	got := b.Build([]Source{
		fakeSource{name: "a.jnl", desc: "Test journal", code: "# hi\nTrace(x)"},
		fakeSource{name: "b.jnl", code: "Trace(y)"},
	})

	want := strings.Join([]string{
		testMarker,
		"Source Code",
		"-----------",
		"a.jnl:",
		"```python",
		"'''",
		"Test journal",
		"'''",
		"# hi",
		"Trace(x)",
		"```",
		"",
		"b.jnl:",
		"```python",
		"Trace(y)",
		"```",
		"",
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_NoSources(t *testing.T) {
	got := New(testMarker).Build(nil)
	want := testMarker + "\nSource Code\n-----------"
	if got != want {
		t.Errorf("Build(nil) = %q, want %q", got, want)
	}
}

func TestBuild_WrapsDescription(t *testing.T) {
	desc := strings.Repeat("describe the acquisition steps ", 8)
	got := New(testMarker).Build([]Source{fakeSource{name: "a.jnl", desc: desc}})

	lines := strings.Split(got, "\n")
	start := indexOf(lines, "'''")
	if start < 0 {
		t.Fatalf("no opening quote in %q", got)
	}
	end := indexOf(lines[start+1:], "'''")
	if end < 2 {
		t.Fatalf("expected a multi-line description, got %q", got)
	}
	for _, line := range lines[start+1 : start+1+end] {
		if len(line) > descriptionWidth {
			t.Errorf("description line is %d chars: %q", len(line), line)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	sources := []Source{
		fakeSource{name: "b.jnl", desc: "second", code: "Trace(b)"},
		fakeSource{name: "a.jnl", desc: "first", code: "Trace(a)"},
	}
	b := New(testMarker)
	first := b.Build(sources)
	for range 5 {
		if got := b.Build(sources); got != first {
			t.Fatalf("Build() not deterministic:\n%s\n---\n%s", first, got)
		}
	}
	if strings.Index(first, "b.jnl:") > strings.Index(first, "a.jnl:") {
		t.Error("Build() reordered sources")
	}
}

func indexOf(lines []string, target string) int {
	for i, line := range lines {
		if line == target {
			return i
		}
	}
	return -1
}
