// Package textwrap wraps prose into lines of bounded width.
package textwrap

import (
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/go-wordwrap"
)

// Lines word-wraps text so that no returned line is longer than width runes.
//
// Runs of whitespace (including newlines) collapse to a single space before
// wrapping. A word longer than width is broken to fill the rest of the current
// line, and the words after it continue on the line holding its last piece.
// Text without any words yields nil.
func Lines(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width < 1 {
		width = 1
	}

	for _, w := range words {
		if utf8.RuneCountInString(w) > width {
			return fill(words, width)
		}
	}

	wrapped := wordwrap.WrapString(strings.Join(words, " "), uint(width))

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		lines = append(lines, hardBreak(line, width)...)
	}
	return lines
}

// Prefixed wraps text at width and prepends prefix to every line.
// The prefix does not count toward width.
func Prefixed(text string, width int, prefix string) string {
	lines := Lines(text, width)
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// fill greedily packs words and the spaces between them into lines, splitting
// any word wider than the limit at the space left on the current line.
func fill(words []string, width int) []string {
	chunks := make([][]rune, 0, 2*len(words))
	for i, w := range words {
		if i > 0 {
			chunks = append(chunks, []rune{' '})
		}
		chunks = append(chunks, []rune(w))
	}

	var lines []string
	for len(chunks) > 0 {
		if len(lines) > 0 && string(chunks[0]) == " " {
			chunks = chunks[1:]
			continue
		}
		var cur []rune
		for len(chunks) > 0 && len(cur)+len(chunks[0]) <= width {
			cur = append(cur, chunks[0]...)
			chunks = chunks[1:]
		}
		if len(chunks) > 0 && len(chunks[0]) > width {
			end := width - len(cur)
			cur = append(cur, chunks[0][:end]...)
			chunks[0] = chunks[0][end:]
		}
		if line := strings.TrimRight(string(cur), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// hardBreak splits a line that wordwrap left over-long into width-sized chunks.
func hardBreak(line string, width int) []string {
	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var chunks []string
	runes := []rune(line)
	for len(runes) > 0 {
		n := min(width, len(runes))
		chunk := strings.TrimSpace(string(runes[:n]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = runes[n:]
	}
	return chunks
}
