// Package profile computes per-column summary statistics for numeric columns.
package profile

import (
	"github.com/montanaflynn/stats"

	"corrlens/domain/table"
)

// ColumnProfile summarizes one numeric column
type ColumnProfile struct {
	Name         string  `json:"name"`
	SampleSize   int     `json:"sample_size"`
	MissingRate  float64 `json:"missing_rate"`
	Cardinality  int     `json:"cardinality"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Median       float64 `json:"median"`
	Q25          float64 `json:"q25"`
	Q75          float64 `json:"q75"`
	ZeroVariance bool    `json:"zero_variance"`
}

// Column profiles a single numeric column of the table. Missing and
// non-numeric cells count toward the missing rate and are excluded from
// the summary statistics.
func Column(t *table.Table, name string) ColumnProfile {
	cells := t.ColumnCells(name)

	values := make([]float64, 0, len(cells))
	seen := make(map[float64]struct{})
	for _, cell := range cells {
		if v, ok := cell.Float(); ok {
			values = append(values, v)
			seen[v] = struct{}{}
		}
	}

	p := ColumnProfile{
		Name:        name,
		SampleSize:  len(cells),
		Cardinality: len(seen),
	}
	if len(cells) > 0 {
		p.MissingRate = 1.0 - float64(len(values))/float64(len(cells))
	}
	if len(values) == 0 {
		p.ZeroVariance = true
		return p
	}

	p.Mean, _ = stats.Mean(values)
	p.StdDev, _ = stats.StandardDeviation(values)
	p.Min, _ = stats.Min(values)
	p.Max, _ = stats.Max(values)
	p.Median, _ = stats.Median(values)
	p.Q25, _ = stats.Percentile(values, 25)
	p.Q75, _ = stats.Percentile(values, 75)

	variance, _ := stats.Variance(values)
	p.ZeroVariance = variance < 1e-10

	return p
}

// Columns profiles every column in the given list, in order.
func Columns(t *table.Table, names []string) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, Column(t, name))
	}
	return profiles
}
