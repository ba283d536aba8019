package correlation

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the correlation coefficient
type Method string

const (
	MethodPearson  Method = "pearson"
	MethodSpearman Method = "spearman"
)

// ParseMethod validates a method name
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodPearson:
		return MethodPearson, nil
	case MethodSpearman:
		return MethodSpearman, nil
	default:
		return "", fmt.Errorf("unknown correlation method: %q", s)
	}
}

// Matrix is a square correlation matrix indexed by Variables.
// Row/column i corresponds to Variables[i]. Every cell is finite,
// and the diagonal is always 1.0.
type Matrix struct {
	Variables []string    `json:"variables"`
	Values    [][]float64 `json:"values"`
}

// Size returns the matrix dimension
func (m Matrix) Size() int {
	return len(m.Variables)
}

// At returns the coefficient for the (i, j) cell
func (m Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Validate checks the structural invariants: squareness, a unit diagonal,
// and finiteness of every cell.
func (m Matrix) Validate() error {
	if len(m.Values) != len(m.Variables) {
		return fmt.Errorf("matrix has %d rows for %d variables", len(m.Values), len(m.Variables))
	}
	for i, row := range m.Values {
		if len(row) != len(m.Variables) {
			return fmt.Errorf("matrix row %d has %d columns, expected %d", i, len(row), len(m.Variables))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("matrix cell (%d,%d) is not finite", i, j)
			}
		}
		if m.Values[i][i] != 1.0 {
			return fmt.Errorf("matrix diagonal (%d,%d) is %v, expected 1.0", i, i, m.Values[i][i])
		}
	}
	return nil
}

// Identity builds an identity correlation matrix over the given variables.
func Identity(variables []string) Matrix {
	values := make([][]float64, len(variables))
	for i := range values {
		values[i] = make([]float64, len(variables))
		values[i][i] = 1.0
	}
	return Matrix{Variables: append([]string(nil), variables...), Values: values}
}

// StrongestPair scans for the off-diagonal cell with the largest absolute
// coefficient. Returns false when the matrix has fewer than two variables.
func (m Matrix) StrongestPair() (Pair, bool) {
	best := Pair{}
	found := false
	for i := 0; i < m.Size(); i++ {
		for j := i + 1; j < m.Size(); j++ {
			if !found || math.Abs(m.Values[i][j]) > math.Abs(best.Value) {
				best = Pair{Column1: m.Variables[i], Column2: m.Variables[j], Value: m.Values[i][j]}
				found = true
			}
		}
	}
	return best, found
}

// Pair names two variables and the coefficient between them
type Pair struct {
	Column1 string  `json:"column1"`
	Column2 string  `json:"column2"`
	Value   float64 `json:"correlation_value"`
}

// VariablePair holds the two variables selected for time-series comparison.
// Either side may be unset, in which case no series is computed.
type VariablePair struct {
	Var1 string `json:"var1"`
	Var2 string `json:"var2"`
}

// IsComplete reports whether both variables are selected
func (p VariablePair) IsComplete() bool {
	return p.Var1 != "" && p.Var2 != ""
}

// FilterDimension maps a categorical column to its selected values.
// An empty value set means the filter exists but restricts nothing yet;
// a column absent from the map is not filtered at all.
type FilterDimension map[string][]string

// TimeSeriesPoint is one aligned observation of the selected pair.
// X is epoch millis for date axes or an ordinal index otherwise.
type TimeSeriesPoint struct {
	X         float64 `json:"x"`
	Var1Value float64 `json:"var1Value"`
	Var2Value float64 `json:"var2Value"`
}
