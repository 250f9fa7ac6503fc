// =============================================================================
// ARXML to XLSX Extractor - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the extractor:
//   - Output path resolution (file target vs. directory target)
//   - Output file naming
//   - Error log generation for skipped containers
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// OUTPUT PATHS
// =============================================================================

// outputExtension is the extension excelize needs to pick the workbook format.
const outputExtension = ".xlsx"

// ResolveOutputPath decides where the spreadsheet is written.
//
// PARAMETERS:
//   - output: The --output value. An existing directory means "generate a
//             file name inside it".
//   - sourcePath: The ARXML source, used for the {original} placeholder.
//   - format: The file name format for directory targets.
//
// RETURNS:
//   - The spreadsheet path. Its parent directory exists.
//   - An error if the parent directory cannot be created.
func ResolveOutputPath(output, sourcePath, format string) (string, error) {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		original := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
		name := GenerateOutputFileName(format, map[string]string{"original": original})
		return filepath.Join(output, name), nil
	}

	if filepath.Ext(output) == "" {
		output += outputExtension
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", filepath.Dir(output), err)
	}

	return output, nil
}

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {original}  - Source file name (without extension)
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name, always ending in .xlsx.
//
// EXAMPLE:
//   format: "{original}_{timestamp}.xlsx"
//   params: {"original": "Can_EcucValues"}
//   output: "Can_EcucValues_20240115_143022.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	// One pass over the format: substituted values, such as a source name
	// that itself contains "{uuid}", are never expanded again.
	placeholders := make([]string, 0, len(replacements))
	for placeholder := range replacements {
		placeholders = append(placeholders, placeholder)
	}
	sort.Strings(placeholders)

	pairs := make([]string, 0, 2*len(placeholders))
	for _, placeholder := range placeholders {
		pairs = append(pairs, placeholder, replacements[placeholder])
	}
	result := strings.NewReplacer(pairs...).Replace(format)

	if !strings.HasSuffix(strings.ToLower(result), outputExtension) {
		result += outputExtension
	}

	return result
}

// ErrorLogPath returns the skipped-container log path for a spreadsheet.
func ErrorLogPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".errors.txt"
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry describes one container left out of the spreadsheet.
type ErrorLogEntry struct {
	Position  int
	Depth     int
	Line      int
	Path      string
	ShortName string
	Missing   []string
	Message   string
}

// WriteErrorLog writes error entries to a log file.
//
// PARAMETERS:
//   - entries: The error entries to write.
//   - sourcePath: The ARXML file the entries refer to.
//   - logPath: The file to write.
//
// RETURNS:
//   - An error if writing fails. Nothing is written for zero entries.
func WriteErrorLog(entries []ErrorLogEntry, sourcePath, logPath string) error {
	if len(entries) == 0 {
		return nil
	}

	file, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "ARXML to XLSX Extractor - Skipped Containers\n"+
		"Generated: %s\n"+
		"Source: %s\n"+
		"Total Skipped: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		sourcePath,
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Skipped #%d\n"+
			"  Container:      #%d (depth %d)\n",
			i+1, entry.Position, entry.Depth)
		if entry.ShortName != "" {
			fmt.Fprintf(writer, "  Short Name:     %s\n", entry.ShortName)
		}
		if entry.Line > 0 {
			fmt.Fprintf(writer, "  Line:           %d\n", entry.Line)
		}
		if entry.Path != "" {
			fmt.Fprintf(writer, "  Path:           %s\n", entry.Path)
		}
		fmt.Fprintf(writer, "  Missing:        %s\n", strings.Join(entry.Missing, ", "))
		fmt.Fprintf(writer, "  Message:        %s\n\n", entry.Message)
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush error log: %w", err)
	}

	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
