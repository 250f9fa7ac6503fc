// =============================================================================
// ARXML to XLSX Extractor - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - extractor (produces records)
//   - xlsx      (writes and reads records)
//   - converter (hands records from one to the other)
//
// =============================================================================

package types

import "fmt"

// =============================================================================
// RECORD TAGS
// =============================================================================

// Tag identifies the nesting depth of a container record.
type Tag int

const (
	// TagContainer marks a top-level container found under a CONTAINERS group.
	TagContainer Tag = iota + 1

	// TagSubContainer marks a container nested inside another container's
	// SUB-CONTAINERS group.
	TagSubContainer
)

// Cell texts used in the spreadsheet. These match the texts produced by the
// earlier tooling so existing spreadsheets keep comparing equal.
const (
	containerText    = "Container"
	subContainerText = "Sub-container"
)

// String returns the text written to the Tag column.
func (t Tag) String() string {
	switch t {
	case TagContainer:
		return containerText
	case TagSubContainer:
		return subContainerText
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// ParseTag converts a Tag column text back into a Tag.
func ParseTag(s string) (Tag, error) {
	switch s {
	case containerText:
		return TagContainer, nil
	case subContainerText:
		return TagSubContainer, nil
	default:
		return 0, fmt.Errorf("unknown tag %q", s)
	}
}

// =============================================================================
// CONTAINER RECORD
// =============================================================================

// Record is one flattened container: a row in the output spreadsheet.
//
// Both ShortName and DefinitionRef are always non-empty on records produced by
// the extractor. A container missing either one is reported as an error
// instead of becoming a record with empty cells.
type Record struct {
	// Tag is Container for top-level containers, Sub-container otherwise.
	Tag Tag

	// ShortName is the human-readable identifier (SHORT-NAME).
	ShortName string

	// DefinitionRef is the reference path to the container definition
	// (DEFINITION-REF).
	DefinitionRef string
}

// =============================================================================
// SPREADSHEET COLUMNS
// =============================================================================

// Column headers, in output order.
const (
	HeaderTag           = "Tag"
	HeaderShortName     = "Short Name"
	HeaderDefinitionRef = "Definition Ref"
)

// Headers returns the header row of the record sheet.
func Headers() []string {
	return []string{HeaderTag, HeaderShortName, HeaderDefinitionRef}
}

// Row returns the record's cells in column order.
func (r Record) Row() []string {
	return []string{r.Tag.String(), r.ShortName, r.DefinitionRef}
}
