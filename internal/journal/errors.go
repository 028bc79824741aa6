package journal

import (
	"errors"
	"fmt"
)

// StructuralError reports a journal that cannot be rendered: malformed XML
// or a node kind outside the recognized set.
type StructuralError struct {
	File string
	Kind string // unrecognized tag, empty for malformed XML
	Err  error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s: unrecognized node kind %q", fileLabel(e.File), e.Kind)
	}
	return fmt.Sprintf("%s: malformed journal: %v", fileLabel(e.File), e.Err)
}

// Unwrap returns the underlying decode error, if any.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

// AttributeMissingError reports a node lacking an attribute its kind requires.
type AttributeMissingError struct {
	File      string
	Kind      Kind
	Attribute string
}

// Error implements the error interface.
func (e *AttributeMissingError) Error() string {
	return fmt.Sprintf("%s: %s is missing required attribute %q", fileLabel(e.File), e.Kind, e.Attribute)
}

// MissingSectionError reports a journal without exactly one Description or
// exactly one top-level CodeBlock.
type MissingSectionError struct {
	File    string
	Section string
	Count   int
}

// Error implements the error interface.
func (e *MissingSectionError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("%s: no %s element", fileLabel(e.File), e.Section)
	}
	return fmt.Sprintf("%s: expected one %s element, found %d", fileLabel(e.File), e.Section, e.Count)
}

// IsJournalError reports whether err is one of the journal error kinds, as
// opposed to an I/O failure while reading the file.
func IsJournalError(err error) bool {
	var structural *StructuralError
	var attr *AttributeMissingError
	var section *MissingSectionError
	return errors.As(err, &structural) || errors.As(err, &attr) || errors.As(err, &section)
}

func fileLabel(file string) string {
	if file == "" {
		return "journal"
	}
	return file
}
