package journal

import (
	"errors"
	"io"
)

// Document is one parsed journal file reduced to its two rendered parts.
// The node tree is discarded once Code has been computed.
type Document struct {
	filename    string
	description string
	code        string
}

// Parse reads a journal from r and renders it. The filename is used for
// error context and as the document's heading.
func Parse(filename string, r io.Reader) (*Document, error) {
	root, err := decodeTree(r)
	if err != nil {
		return nil, &StructuralError{File: filename, Err: err}
	}

	var found sections
	findSections(root, &found)
	if n := len(found.descriptions); n != 1 {
		return nil, &MissingSectionError{File: filename, Section: descriptionTag, Count: n}
	}
	if n := len(found.codeBlocks); n != 1 {
		return nil, &MissingSectionError{File: filename, Section: codeBlockTag, Count: n}
	}

	p := &parser{file: filename}
	block, err := p.codeBlock(found.codeBlocks[0])
	if err != nil {
		return nil, err
	}
	code, err := Transpile(block)
	if err != nil {
		return nil, withFile(err, filename)
	}

	return &Document{
		filename:    filename,
		description: descriptionText(found.descriptions[0]),
		code:        code,
	}, nil
}

// Filename returns the name the document was parsed under.
func (d *Document) Filename() string { return d.filename }

// Description returns the journal's header text, or "" when it has none.
func (d *Document) Description() string { return d.description }

// Code returns the transpiled pseudo-code body.
func (d *Document) Code() string { return d.code }

// withFile fills in the file name of a StructuralError raised by Render,
// which has no file context of its own.
func withFile(err error, filename string) error {
	var se *StructuralError
	if errors.As(err, &se) && se.File == "" {
		return &StructuralError{File: filename, Kind: se.Kind, Err: se.Err}
	}
	return err
}
