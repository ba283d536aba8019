// Package testkit provides deterministic synthetic tables for tests.
package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"corrlens/domain/table"
)

// TestKit generates synthetic tabular data with known relationships
type TestKit struct {
	rng *rand.Rand
}

// NewTestKit creates a test kit with a fixed seed so fixtures replay
// identically across runs.
func NewTestKit(seed int64) *TestKit {
	return &TestKit{rng: rand.New(rand.NewSource(seed))}
}

// LinearTable builds a table where column "y" is slope*x + intercept plus
// gaussian noise, alongside a categorical "segment" column and a monthly
// "date" column.
func (k *TestKit) LinearTable(rows int, slope, intercept, noise float64) *table.Table {
	t := &table.Table{Columns: []string{"date", "segment", "x", "y"}}
	segments := []string{"north", "south", "east", "west"}

	for i := 0; i < rows; i++ {
		x := float64(i)
		y := slope*x + intercept + k.rng.NormFloat64()*noise
		row := table.Row{
			"date":    table.ParseCell(fmt.Sprintf("2024-%02d-01", (i%12)+1)),
			"segment": table.TextCell(segments[i%len(segments)]),
			"x":       table.NumberCell(x),
			"y":       table.NumberCell(y),
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ConstantColumn builds a table with one varying and one constant numeric
// column, the degenerate-variance case.
func (k *TestKit) ConstantColumn(rows int) *table.Table {
	t := &table.Table{Columns: []string{"x", "flat"}}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, table.Row{
			"x":    table.NumberCell(float64(i)),
			"flat": table.NumberCell(42.0),
		})
	}
	return t
}

// MonotonicPair returns two sequences related by a strictly increasing
// nonlinear transform, for rank-correlation tests.
func (k *TestKit) MonotonicPair(n int) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		v := k.rng.Float64() * 10
		x[i] = v
		y[i] = math.Exp(v / 5)
	}
	return x, y
}

// CorrelationDict builds a server-style nested dictionary for the given
// variables with plausible symmetric coefficients.
func (k *TestKit) CorrelationDict(variables []string) map[string]map[string]float64 {
	dict := make(map[string]map[string]float64, len(variables))
	for _, v := range variables {
		dict[v] = make(map[string]float64, len(variables))
	}
	for i, a := range variables {
		dict[a][a] = 1.0
		for j := i + 1; j < len(variables); j++ {
			b := variables[j]
			r := k.rng.Float64()*2 - 1
			dict[a][b] = r
			dict[b][a] = r
		}
	}
	return dict
}
