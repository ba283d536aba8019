// Package csvfile reads comma-delimited text into the canonical table shape.
//
// The dialect is deliberately simple: the first line is the header, fields
// are split on commas, and surrounding double quotes are stripped. Quoting
// does NOT escape embedded commas — a field containing a literal comma will
// misalign the row. That matches the behavior of the upstream data sources
// this package mirrors; do not change it without confirming the data never
// carries such values.
package csvfile

import (
	"fmt"
	"log"
	"os"
	"strings"

	"corrlens/domain/core"
	"corrlens/domain/table"
)

// Parse converts raw delimited text into a Table. It fails when fewer
// than two non-empty lines are present (header plus at least one data row).
// Ragged data rows are tolerated: missing trailing fields become missing cells.
func Parse(raw string) (*table.Table, error) {
	lines := make([]string, 0, 64)
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: need a header and at least one data row, got %d lines", core.ErrEmptyFile, len(lines))
	}

	columns := splitLine(lines[0])
	for i, col := range columns {
		if col == "" {
			columns[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	rows := make([]table.Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitLine(line)
		row := make(table.Row, len(columns))
		for i, col := range columns {
			if i < len(fields) {
				row[col] = table.ParseCell(fields[i])
			} else {
				row[col] = table.Missing()
			}
		}
		rows = append(rows, row)
	}

	return &table.Table{Columns: columns, Rows: rows}, nil
}

// ReadFile loads and parses a CSV file from disk
func ReadFile(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	t, err := Parse(string(data))
	if err != nil {
		return nil, err
	}

	log.Printf("[CSVReader] %s parsed (%d columns, %d rows)", path, t.ColumnCount(), t.RowCount())
	return t, nil
}

// splitLine separates a line on commas and strips surrounding quotes and
// whitespace from each field.
func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	fields := make([]string, len(parts))
	for i, part := range parts {
		field := strings.TrimSpace(part)
		field = strings.Trim(field, `"`)
		fields[i] = strings.TrimSpace(field)
	}
	return fields
}
