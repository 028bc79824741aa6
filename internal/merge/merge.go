// Package merge reconciles a generated block with an existing document.
//
// The document is split at the first occurrence of the marker: everything
// before it is hand-written and kept byte for byte, everything from the
// marker to the end of the document is generated and replaced wholesale.
//
//	result, err := merge.Reconcile(existing, block, marker)
//	switch result.Action {
//	case merge.Created, merge.Updated:
//	    write(result.Text)
//	case merge.UpToDate:
//	    // nothing to do
//	}
package merge

import (
	"fmt"
	"strings"
)

// Action is the outcome of reconciling a document.
type Action string

// Reconcile outcomes.
const (
	// Created means the marker was absent and the block was appended.
	Created Action = "created"
	// UpToDate means the document already ends with the block.
	UpToDate Action = "up-to-date"
	// Updated means the generated region was replaced.
	Updated Action = "updated"
)

// Result is the reconciled document.
type Result struct {
	Action Action
	// Text is the full document after reconciliation. For UpToDate it is
	// the existing text.
	Text string
}

// Changed reports whether the document needs to be written.
func (r Result) Changed() bool {
	return r.Action != UpToDate
}

// PatchApplicationError reports a document the block cannot safely be
// merged into. The document must be left untouched.
type PatchApplicationError struct {
	Reason string
}

// Error implements the error interface.
func (e *PatchApplicationError) Error() string {
	return "cannot apply generated block: " + e.Reason
}

// Split divides text at the first occurrence of marker. generated starts
// with the marker; found is false when the marker does not occur.
func Split(text, marker string) (prefix, generated string, found bool) {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return text, "", false
	}
	return text[:idx], text[idx:], true
}

// Reconcile merges block into existing. The block must start with marker.
func Reconcile(existing, block, marker string) (Result, error) {
	if err := checkPatchable(existing, block, marker); err != nil {
		return Result{}, err
	}

	prefix, _, found := Split(existing, marker)
	if !found {
		return Result{Action: Created, Text: appendBlock(existing, block)}, nil
	}

	updated := prefix + block
	if updated == existing {
		return Result{Action: UpToDate, Text: existing}, nil
	}
	return Result{Action: Updated, Text: updated}, nil
}

// checkPatchable rejects inputs for which a repeated Reconcile would not
// find its own output again. The existing document is split on bytes, so
// its encoding does not matter.
func checkPatchable(existing, block, marker string) error {
	switch {
	case marker == "":
		return &PatchApplicationError{Reason: "empty marker"}
	case !strings.HasPrefix(block, marker):
		return &PatchApplicationError{Reason: fmt.Sprintf("block does not start with marker %q", marker)}
	}
	return nil
}

// appendBlock adds block to the end of text, starting it on a fresh line.
func appendBlock(text, block string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + block
}
