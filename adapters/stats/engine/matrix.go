package engine

import (
	"fmt"
	"math"

	"corrlens/domain/core"
	"corrlens/domain/correlation"
	"corrlens/domain/table"
)

// minPairwiseSamples is the smallest pairwise-complete sample that still
// produces a coefficient; below it a cell is a defined 0.
const minPairwiseSamples = 2

// BuildMatrix computes the local correlation matrix over the given numeric
// columns. Each cell uses only the rows where BOTH columns hold a finite
// number (pairwise-complete-case policy), so different cells may derive
// from different row subsets. That trades strict comparability between
// cells for data utilization, matching the server-side implementation.
func BuildMatrix(t *table.Table, numericColumns []string, method correlation.Method) (correlation.Matrix, error) {
	if len(numericColumns) < 2 {
		return correlation.Matrix{}, fmt.Errorf("%w: got %d", core.ErrNoNumericColumns, len(numericColumns))
	}
	if method != correlation.MethodPearson && method != correlation.MethodSpearman {
		return correlation.Matrix{}, fmt.Errorf("%w: %q", core.ErrUnknownMethod, method)
	}

	columns := make(map[string][]table.Cell, len(numericColumns))
	for _, name := range numericColumns {
		columns[name] = t.ColumnCells(name)
	}

	n := len(numericColumns)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		values[i][i] = 1.0
		for j := i + 1; j < n; j++ {
			x, y := pairwiseComplete(columns[numericColumns[i]], columns[numericColumns[j]])

			coeff := 0.0
			if len(x) >= minPairwiseSamples {
				switch method {
				case correlation.MethodSpearman:
					coeff = Spearman(x, y)
				default:
					coeff = Pearson(x, y)
				}
			}
			if math.IsNaN(coeff) || math.IsInf(coeff, 0) {
				coeff = 0.0
			}

			values[i][j] = coeff
			values[j][i] = coeff
		}
	}

	return correlation.Matrix{
		Variables: append([]string(nil), numericColumns...),
		Values:    values,
	}, nil
}

// pairwiseComplete extracts the parallel samples where both cells hold a
// finite number.
func pairwiseComplete(a, b []table.Cell) ([]float64, []float64) {
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}

	x := make([]float64, 0, limit)
	y := make([]float64, 0, limit)
	for i := 0; i < limit; i++ {
		va, okA := a[i].Float()
		vb, okB := b[i].Float()
		if !okA || !okB {
			continue
		}
		x = append(x, va)
		y = append(y, vb)
	}
	return x, y
}
