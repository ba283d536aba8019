package ports

import (
	"context"

	"corrlens/domain/correlation"
	"corrlens/domain/table"
)

// MatrixSource produces a sanitized correlation matrix for a request.
// There is exactly one pipeline; local computation and the external
// correlation service are interchangeable implementations behind this
// interface, selected by configuration.
type MatrixSource interface {
	// Resolve returns the matrix over the requested variables. Implementations
	// must return finite values with a unit diagonal; a source may narrow the
	// variable list (e.g. server-side exclusion of non-numeric columns).
	Resolve(ctx context.Context, req MatrixRequest) (correlation.Sanitized, error)
}

// MatrixRequest carries everything a matrix source needs for one invocation.
type MatrixRequest struct {
	// FilePath identifies the dataset for remote sources
	FilePath string
	// Table is the materialized data for local sources
	Table *table.Table
	// Variables are the numeric columns to correlate, in display order
	Variables []string
	Method    correlation.Method
	// Filters restricts rows by categorical column values
	Filters correlation.FilterDimension
	// DateColumn and DateRange optionally restrict rows by time
	DateColumn string
	DateRange  *DateRange
}

// DateRange is an inclusive date window
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TableReader loads a dataset from a storage path into the canonical table.
type TableReader interface {
	ReadTable(path string) (*table.Table, error)
}
