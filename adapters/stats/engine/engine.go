// Package engine implements the correlation coefficient calculators.
//
// Degenerate inputs are defined results, not faults: length mismatches,
// empty sequences, and zero-variance denominators all yield a coefficient
// of 0 so downstream rendering never sees NaN.
package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson computes the product-moment correlation coefficient of two
// equal-length numeric sequences. Returns 0 when lengths differ, either
// sequence is empty, or the denominator is zero.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	n := float64(len(x))
	sumX, sumY := 0.0, 0.0
	sumXY, sumX2, sumY2 := 0.0, 0.0, 0.0

	for i := 0; i < len(x); i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))

	if denominator == 0 {
		return 0
	}

	r := numerator / denominator

	// Floating point can push a perfect relationship past the valid range
	if r > 1.0 {
		r = 1.0
	} else if r < -1.0 {
		r = -1.0
	}
	return r
}

// Spearman computes the rank correlation coefficient: both sequences are
// rank-transformed and the result is the Pearson coefficient of the ranks.
func Spearman(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}
	return Pearson(ranks(x), ranks(y))
}

// PValue returns the two-tailed p-value for a coefficient r observed over
// n samples, using the t-distribution with n-2 degrees of freedom.
func PValue(r float64, n int) float64 {
	if n < 3 {
		return 1.0
	}
	df := float64(n - 2)
	if math.Abs(r) >= 1.0 {
		return 0.0
	}
	t := r * math.Sqrt(df/(1.0-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

// ranks converts values to 1-based ranks. Ties are broken by stable sort
// on value, the rank being the position after sorting.
func ranks(data []float64) []float64 {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return data[idx[a]] < data[idx[b]]
	})

	out := make([]float64, n)
	for pos, i := range idx {
		out[i] = float64(pos + 1)
	}
	return out
}
