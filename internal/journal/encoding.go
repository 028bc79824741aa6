package journal

import (
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newUTF8Reader strips a UTF-8 byte-order mark and transcodes UTF-16 input
// that starts with one. Input without a BOM passes through untouched so the
// XML declaration can name its own encoding.
func newUTF8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}

// charsetReader decodes the legacy single-byte encodings journal files are
// commonly saved in (windows-1252, iso-8859-1, ...).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "utf-16", "utf-16le", "utf-16be", "utf16":
		// Already transcoded by newUTF8Reader.
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}
