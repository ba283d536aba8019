package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind tags the canonical representation of a single cell value.
// Cells are decided once at ingestion so downstream computation never
// re-parses raw strings.
type CellKind int

const (
	CellMissing CellKind = iota
	CellText
	CellNumber
)

// Cell is a tagged scalar value: missing, text, or a finite number.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Missing returns the missing cell value
func Missing() Cell {
	return Cell{Kind: CellMissing}
}

// Text cell from a raw string
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell from a finite float. Non-finite inputs degrade to missing.
func NumberCell(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing()
	}
	return Cell{Kind: CellNumber, Number: v}
}

// ParseCell decides the canonical representation of a raw string value.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Missing()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return Cell{Kind: CellNumber, Number: v, Text: trimmed}
	}
	return Cell{Kind: CellText, Text: trimmed}
}

// IsMissing reports whether the cell holds no value
func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// Float returns the numeric value and whether the cell holds one
func (c Cell) Float() (float64, bool) {
	if c.Kind != CellNumber {
		return 0, false
	}
	return c.Number, true
}

// Raw returns the original string form of the cell, empty when missing.
func (c Cell) Raw() string {
	if c.Kind == CellMissing {
		return ""
	}
	return c.Text
}

// Row maps column names to cells
type Row map[string]Cell

// Table is an ordered sequence of rows sharing a header
type Table struct {
	Columns []string
	Rows    []Row
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// HasColumn reports whether the header contains the named column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnCells returns all cells for a column in row order
func (t *Table) ColumnCells(name string) []Cell {
	cells := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell, ok := row[name]
		if !ok {
			cell = Missing()
		}
		cells = append(cells, cell)
	}
	return cells
}

// ColumnType classifies a column for statistical purposes
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeDate        ColumnType = "date"
	TypeCategorical ColumnType = "categorical"
)

// Classification assigns every column of a table to exactly one type.
type Classification struct {
	Numeric     []string
	Date        []string
	Categorical []string
}

// TypeOf returns the classified type for a column, defaulting to categorical
// for columns the classifier never saw.
func (c Classification) TypeOf(name string) ColumnType {
	for _, n := range c.Numeric {
		if n == name {
			return TypeNumeric
		}
	}
	for _, n := range c.Date {
		if n == name {
			return TypeDate
		}
	}
	return TypeCategorical
}

// FirstDateColumn returns the first date-classified column, if any
func (c Classification) FirstDateColumn() (string, bool) {
	if len(c.Date) == 0 {
		return "", false
	}
	return c.Date[0], true
}

// dateLayouts covers the formats accepted when parsing date cells.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate attempts to interpret a cell as a calendar date.
// Numeric cells are handled specially: a bare 4-digit year in [1900, 2100)
// maps to Jan 1 of that year, any other number is treated as a Unix epoch
// (seconds or milliseconds depending on magnitude).
func ParseDate(c Cell) (time.Time, bool) {
	switch c.Kind {
	case CellMissing:
		return time.Time{}, false
	case CellNumber:
		v := c.Number
		if v == math.Trunc(v) && v >= 1900 && v < 2100 {
			return time.Date(int(v), time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
		// Heuristic: values past ~1e12 are epoch millis, otherwise seconds
		if math.Abs(v) >= 1e12 {
			return time.UnixMilli(int64(v)).UTC(), true
		}
		return time.Unix(int64(v), 0).UTC(), true
	default:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, c.Text); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
}
