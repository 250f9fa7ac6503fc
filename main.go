// =============================================================================
// ARXML to XLSX Extractor - Main Entry Point
// =============================================================================
//
// This is the main entry point for the ARXML to XLSX Extractor CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   arxml2xlsx process    - Extract containers to a spreadsheet and transform a phrase
//   arxml2xlsx transform  - Transform a phrase only
//   arxml2xlsx version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Document loading, extraction, phrase transform, spreadsheet I/O
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/arxml-to-xlsx/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
