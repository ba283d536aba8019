// Package temporal turns raw rows or server-supplied axes into sorted,
// sanitized time-series pairs for the comparison chart.
package temporal

import (
	"sort"
	"time"

	"corrlens/domain/core"
	"corrlens/domain/correlation"
	"corrlens/domain/table"
)

const (
	// maxRawPoints bounds series built directly from rows
	maxRawPoints = 100
	// maxSyntheticPoints bounds series with fabricated dates
	maxSyntheticPoints = 50
	// maxPresentationPoints is the hard cap applied at the rendering boundary
	maxPresentationPoints = 1000
)

// AlignServerAxis zips a server axis with two parallel value arrays,
// dropping every index where either value is missing or non-finite.
// Date axes convert to epoch millis; ordinal axes keep the plain index.
// The result is stable-sorted ascending by x and de-duplicated on x.
func AlignServerAxis(axis correlation.SeriesAxis, values correlation.SeriesValues) []correlation.TimeSeriesPoint {
	v1, v2 := values.Var1, values.Var2
	limit := len(axis.X)
	if len(v1) < limit {
		limit = len(v1)
	}
	if len(v2) < limit {
		limit = len(v2)
	}

	points := make([]correlation.TimeSeriesPoint, 0, limit)
	for i := 0; i < limit; i++ {
		a, okA := v1[i].Float()
		b, okB := v2[i].Float()
		if !okA || !okB {
			continue
		}

		var x float64
		if axis.IsDatetime {
			t, ok := table.ParseDate(axis.X[i])
			if !ok {
				continue
			}
			x = float64(core.NewTimestamp(t).EpochMillis())
		} else if v, ok := axis.X[i].Float(); ok {
			x = v
		} else {
			x = float64(i)
		}

		points = append(points, correlation.TimeSeriesPoint{X: x, Var1Value: a, Var2Value: b})
	}

	return finalize(points)
}

// AlignRows builds the comparison series directly from table rows.
// With a date column present, each row's date is parsed and rows with an
// unparseable date are discarded; without one, synthetic week-slot dates
// keep the series renderable. Rows where either selected variable is not
// a finite number are dropped in both cases.
func AlignRows(t *table.Table, class table.Classification, pair correlation.VariablePair) []correlation.TimeSeriesPoint {
	if !pair.IsComplete() || t == nil || t.RowCount() == 0 {
		return nil
	}

	dateColumn, hasDate := class.FirstDateColumn()
	if hasDate {
		return alignByDateColumn(t, dateColumn, pair)
	}
	return alignSynthetic(t, pair)
}

func alignByDateColumn(t *table.Table, dateColumn string, pair correlation.VariablePair) []correlation.TimeSeriesPoint {
	points := make([]correlation.TimeSeriesPoint, 0, len(t.Rows))
	for _, row := range t.Rows {
		ts, ok := table.ParseDate(row[dateColumn])
		if !ok {
			continue
		}
		a, okA := row[pair.Var1].Float()
		b, okB := row[pair.Var2].Float()
		if !okA || !okB {
			continue
		}
		points = append(points, correlation.TimeSeriesPoint{
			X:         float64(core.NewTimestamp(ts).EpochMillis()),
			Var1Value: a,
			Var2Value: b,
		})
	}

	points = finalize(points)
	if len(points) > maxRawPoints {
		points = points[:maxRawPoints]
	}
	return points
}

// alignSynthetic fabricates dates on a 4-week-per-month cadence so the
// series stays renderable without real temporal data.
func alignSynthetic(t *table.Table, pair correlation.VariablePair) []correlation.TimeSeriesPoint {
	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	points := make([]correlation.TimeSeriesPoint, 0, maxSyntheticPoints)
	for i, row := range t.Rows {
		if len(points) == maxSyntheticPoints {
			break
		}
		a, okA := row[pair.Var1].Float()
		b, okB := row[pair.Var2].Float()
		if !okA || !okB {
			continue
		}

		month := i / 4
		week := i % 4
		ts := base.AddDate(0, month, week*7)
		points = append(points, correlation.TimeSeriesPoint{
			X:         float64(core.NewTimestamp(ts).EpochMillis()),
			Var1Value: a,
			Var2Value: b,
		})
	}
	return points
}

// CapForPresentation applies the rendering-boundary hard cap.
func CapForPresentation(points []correlation.TimeSeriesPoint) []correlation.TimeSeriesPoint {
	if len(points) > maxPresentationPoints {
		return points[:maxPresentationPoints]
	}
	return points
}

// finalize stable-sorts ascending by x and removes duplicate x values,
// keeping the first occurrence.
func finalize(points []correlation.TimeSeriesPoint) []correlation.TimeSeriesPoint {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].X < points[j].X
	})

	out := make([]correlation.TimeSeriesPoint, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && p.X == out[len(out)-1].X {
			continue
		}
		out = append(out, p)
	}
	return out
}
