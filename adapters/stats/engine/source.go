package engine

import (
	"context"
	"time"

	"corrlens/domain/correlation"
	"corrlens/domain/table"
	"corrlens/ports"
)

// LocalSource computes correlation matrices in-process. It is the client-side
// fallback behind the same interface as the remote correlation service.
type LocalSource struct{}

// NewLocalSource creates a local matrix source
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

// Resolve implements ports.MatrixSource by filtering rows and building the
// matrix over the requested variables. Insufficient data surfaces as an
// error; degenerate cells inside the matrix are defined zeros.
func (s *LocalSource) Resolve(ctx context.Context, req ports.MatrixRequest) (correlation.Sanitized, error) {
	t := FilterRows(req.Table, req.Filters, req.DateColumn, req.DateRange)

	matrix, err := BuildMatrix(t, req.Variables, req.Method)
	if err != nil {
		return correlation.Sanitized{}, err
	}

	return correlation.Sanitized{
		Matrix:            matrix,
		FilteredVariables: matrix.Variables,
	}, nil
}

// FilterRows returns a table containing only the rows matching every
// configured filter dimension and the optional date window. A filter with
// an empty value set restricts nothing yet; a column absent from the
// filter map is not consulted at all.
func FilterRows(t *table.Table, filters correlation.FilterDimension, dateColumn string, dateRange *ports.DateRange) *table.Table {
	if t == nil {
		return &table.Table{}
	}
	if len(filters) == 0 && (dateColumn == "" || dateRange == nil) {
		return t
	}

	var start, end time.Time
	var haveRange bool
	if dateColumn != "" && dateRange != nil {
		s, okS := table.ParseDate(table.ParseCell(dateRange.Start))
		e, okE := table.ParseDate(table.ParseCell(dateRange.End))
		if okS && okE {
			start, end = s, e
			haveRange = true
		}
	}

	kept := make([]table.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !matchesFilters(row, filters) {
			continue
		}
		if haveRange {
			ts, ok := table.ParseDate(row[dateColumn])
			if !ok || ts.Before(start) || ts.After(end) {
				continue
			}
		}
		kept = append(kept, row)
	}

	return &table.Table{Columns: t.Columns, Rows: kept}
}

func matchesFilters(row table.Row, filters correlation.FilterDimension) bool {
	for column, values := range filters {
		if len(values) == 0 {
			continue
		}
		raw := row[column].Raw()
		matched := false
		for _, v := range values {
			if raw == v {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
