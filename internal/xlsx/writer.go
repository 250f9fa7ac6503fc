// =============================================================================
// ARXML to XLSX Extractor - Spreadsheet Writer
// =============================================================================
//
// This module serializes a record sequence into an XLSX workbook.
//
// SHEET LAYOUT:
//
//   | Column A      | Column B                 | Column C                                 |
//   |---------------|--------------------------|------------------------------------------|
//   | Tag           | Short Name               | Definition Ref                           |
//   | Container     | CanGeneral               | /AUTOSAR/EcucDefs/Can/CanGeneral         |
//   | Sub-container | CanMainFunctionRWPeriods | /AUTOSAR/EcucDefs/Can/CanGeneral/CanM... |
//
//   - One header row, one row per record, no index column.
//   - Every cell is written as a string so values round-trip unchanged.
//   - Values longer than a cell holds are an error, never truncated.
//
// =============================================================================

package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// OPTIONS
// =============================================================================

// defaultSheet is the sheet every new excelize workbook starts with.
const defaultSheet = "Sheet1"

// ErrCellTooLong is returned for a value longer than a worksheet cell holds.
// excelize would otherwise cut it silently.
var ErrCellTooLong = errors.New("value exceeds the worksheet cell limit")

// Options configures the record sheet.
type Options struct {
	// SheetName is the name of the record sheet.
	// Default: "Sheet1"
	SheetName string

	// BoldHeader renders the header row in bold.
	// Default: true
	BoldHeader bool

	// ColumnWidths are the widths of columns A, B and C. Zero keeps the
	// excelize default for that column.
	ColumnWidths [3]float64
}

// DefaultOptions returns the default sheet options.
func DefaultOptions() Options {
	return Options{
		SheetName:    defaultSheet,
		BoldHeader:   true,
		ColumnWidths: [3]float64{16, 40, 80},
	}
}

// =============================================================================
// WRITING
// =============================================================================

// Write saves the records as an XLSX file at path.
//
// PARAMETERS:
//   - path: The destination file. An existing file is overwritten.
//   - records: The records, written in order.
//   - opts: Sheet options.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func Write(path string, records []types.Record, opts Options) error {
	f, err := build(records, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteTo writes the workbook to w instead of a file.
func WriteTo(w io.Writer, records []types.Record, opts Options) error {
	f, err := build(records, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// build creates the in-memory workbook.
func build(records []types.Record, opts Options) (*excelize.File, error) {
	sheet := opts.SheetName
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()

	// Rename the default sheet rather than adding a second one.
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	// Header row.
	if err := setRow(f, sheet, 1, types.Headers()); err != nil {
		f.Close()
		return nil, err
	}

	if opts.BoldHeader {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create header style: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", "C1", style); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, width := range opts.ColumnWidths {
		if width <= 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}

	// One row per record, starting under the header.
	for i, record := range records {
		if err := setRow(f, sheet, i+2, record.Row()); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// setRow writes string cells into the given 1-based row.
func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		escaped := escapeCell(cell)
		if n := utf8.RuneCountInString(escaped); n > excelize.TotalCellChars {
			col, _ := excelize.ColumnNumberToName(i + 1)
			return fmt.Errorf("row %d column %s: %w (%d > %d characters)",
				row, col, ErrCellTooLong, n, excelize.TotalCellChars)
		}
		values[i] = escaped
	}

	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// escapeCell keeps literal _xHHHH_ sequences intact. excelize decodes them
// when reading and turns _x005F_ back into a plain underscore, so every "_x"
// is stored as "_x005F_x".
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "_x", "_x005F_x")
}
