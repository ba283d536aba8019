package correlation

import "corrlens/domain/table"

// SeriesAxis is a pre-fetched x-axis for the comparison series. When
// IsDatetime is set the cells are calendar dates, otherwise ordinal
// positions.
type SeriesAxis struct {
	IsDatetime     bool
	DatetimeColumn string
	X              []table.Cell
}

// SeriesValues carries the two value arrays index-aligned with an axis
type SeriesValues struct {
	Var1 []table.Cell
	Var2 []table.Cell
}
