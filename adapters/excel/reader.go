// Package excel reads .xlsx workbooks into the canonical table shape.
package excel

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"corrlens/domain/table"
)

// DataReader handles reading Excel workbooks
type DataReader struct {
	filePath string
}

// NewDataReader creates a reader for the given workbook path
func NewDataReader(filePath string) *DataReader {
	return &DataReader{filePath: filePath}
}

// ReadTable reads Sheet1 of the workbook into a Table. The first row is
// the header; short data rows are padded with missing cells.
func (r *DataReader) ReadTable() (*table.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("excel file not found: %s", r.filePath)
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file must have at least a header row and one data row")
	}

	headerRow := rows[0]
	columns := make([]string, len(headerRow))
	for i, header := range headerRow {
		columns[i] = strings.TrimSpace(header)
		if columns[i] == "" {
			columns[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	dataRows := make([]table.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				row[col] = table.ParseCell(raw[i])
			} else {
				row[col] = table.Missing()
			}
		}
		dataRows = append(dataRows, row)
	}

	log.Printf("[ExcelReader] %s processed (%d columns, %d rows)", r.filePath, len(columns), len(dataRows))

	return &table.Table{Columns: columns, Rows: dataRows}, nil
}
