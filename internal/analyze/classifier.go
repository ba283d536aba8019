// Package analyze infers the statistical type of each table column.
package analyze

import (
	"corrlens/domain/table"
)

const (
	// sampleLimit caps how many leading cells are inspected per column.
	sampleLimit = 10
	// numericRatio is the fraction of sampled cells that must parse as
	// numbers for a column to count as numeric.
	numericRatio = 0.8
	// dateRatio is the fraction of sampled cells that must parse as dates.
	dateRatio = 0.5
	// minDateLength rejects short tokens (bare small integers) that would
	// otherwise masquerade as dates.
	minDateLength = 5
)

// Classify assigns every column of the table to exactly one type by
// sampling its leading cells. Numeric wins over date when both ratios are
// met; anything else is categorical.
func Classify(t *table.Table) table.Classification {
	var out table.Classification
	for _, name := range t.Columns {
		switch classifyColumn(t.ColumnCells(name)) {
		case table.TypeNumeric:
			out.Numeric = append(out.Numeric, name)
		case table.TypeDate:
			out.Date = append(out.Date, name)
		default:
			out.Categorical = append(out.Categorical, name)
		}
	}
	return out
}

func classifyColumn(cells []table.Cell) table.ColumnType {
	sampled := 0
	numeric := 0
	dates := 0

	for _, c := range cells {
		if sampled == sampleLimit {
			break
		}
		if c.IsMissing() {
			continue
		}
		sampled++

		if _, ok := c.Float(); ok {
			numeric++
		}
		if _, ok := table.ParseDate(c); ok && len(c.Raw()) >= minDateLength {
			dates++
		}
	}

	if sampled == 0 {
		return table.TypeCategorical
	}
	if float64(numeric)/float64(sampled) >= numericRatio {
		return table.TypeNumeric
	}
	if float64(dates)/float64(sampled) >= dateRatio {
		return table.TypeDate
	}
	return table.TypeCategorical
}
