package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/arxml-to-xlsx/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// READING
// =============================================================================

// Read loads the records back from a workbook written by Write.
//
// PARAMETERS:
//   - path: The XLSX file.
//   - sheet: The record sheet. Empty selects the first sheet.
//
// RETURNS:
//   - The records in row order.
//   - An error if the file cannot be opened, the header row does not match,
//     or a row carries an unknown tag.
func Read(path, sheet string) ([]types.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

// ReadFrom is Read for an in-memory workbook.
func ReadFrom(r io.Reader, sheet string) ([]types.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

func readSheet(f *excelize.File, sheet string) ([]types.Record, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		record, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("error parsing row %d: %w", i+1, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// checkHeader verifies the header row names the expected columns in order.
func checkHeader(row []string) error {
	want := types.Headers()
	for i, name := range want {
		got := ""
		if i < len(row) {
			got = strings.TrimSpace(row[i])
		}
		if got != name {
			return fmt.Errorf("unexpected header in column %d: got %q, want %q", i+1, got, name)
		}
	}
	return nil
}

// parseRow builds a record from one data row. Cell text is taken verbatim.
func parseRow(row []string) (types.Record, error) {
	// GetRows drops trailing empty cells, so short rows are expected.
	getCell := func(index int) string {
		if index < len(row) {
			return row[index]
		}
		return ""
	}

	tag, err := types.ParseTag(getCell(0))
	if err != nil {
		return types.Record{}, err
	}

	return types.Record{
		Tag:           tag,
		ShortName:     getCell(1),
		DefinitionRef: getCell(2),
	}, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
