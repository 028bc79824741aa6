// Package docblock composes rendered journals into the generated section of
// a directory's documentation file.
package docblock

import (
	"strings"

	"github.com/gorewood/jnldoc/internal/textwrap"
)

const (
	// Title heads the generated section.
	Title = "Source Code"

	fenceOpen        = "```python"
	fenceClose       = "```"
	descriptionQuote = "'''"
	descriptionWidth = 78
)

// Source is one rendered journal. *journal.Document satisfies it.
type Source interface {
	Filename() string
	Description() string
	Code() string
}

// Builder renders the generated block for a fixed marker.
type Builder struct {
	marker string
}

// New returns a Builder whose blocks start with marker.
func New(marker string) *Builder {
	return &Builder{marker: marker}
}

// Marker returns the sentinel line every block starts with.
func (b *Builder) Marker() string {
	return b.marker
}

// Build renders the block for sources in the order given. The same sources
// in the same order always produce the same bytes.
func (b *Builder) Build(sources []Source) string {
	lines := []string{
		b.marker,
		Title,
		strings.Repeat("-", len(Title)),
	}
	for _, src := range sources {
		lines = append(lines, section(src)...)
	}
	return strings.Join(lines, "\n")
}

// section renders one journal: heading, fenced code with the description as
// a quoted header, and a trailing blank line.
func section(src Source) []string {
	lines := []string{
		src.Filename() + ":",
		fenceOpen,
	}
	if desc := textwrap.Lines(src.Description(), descriptionWidth); len(desc) > 0 {
		lines = append(lines, descriptionQuote)
		lines = append(lines, desc...)
		lines = append(lines, descriptionQuote)
	}
	return append(lines, src.Code(), fenceClose, "")
}
