package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput is the kind shared by every MalformedInputError.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError reports a container element that lacks SHORT-NAME or
// DEFINITION-REF. No record is produced for such a container.
type MalformedInputError struct {
	// Position is the 1-based document-order index of the top-level container
	// the failing element belongs to.
	Position int

	// Depth is 1 for a top-level container, 2 for its sub-containers, and so on.
	Depth int

	// Line is the source line of the container's start tag.
	Line int

	// Path is the element path from the document root.
	Path string

	// ShortName is set when the short name was found but the definition
	// reference was not.
	ShortName string

	// Missing lists the local names of the absent fields.
	Missing []string
}

func (e *MalformedInputError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: container #%d", ErrMalformedInput, e.Position)
	if e.Depth > 1 {
		fmt.Fprintf(&b, " (nested at depth %d)", e.Depth)
	}
	if e.ShortName != "" {
		fmt.Fprintf(&b, " %q", e.ShortName)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	fmt.Fprintf(&b, ": missing %s", strings.Join(e.Missing, ", "))
	return b.String()
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }
