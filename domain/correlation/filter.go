package correlation

import "math"

// significanceThreshold is the fixed cutoff below which a variable counts
// as uncorrelated with everything but itself.
const significanceThreshold = 0.1

// SignificantVariables decides which variables are worth displaying.
// With showAll set, the full list comes back unchanged. Otherwise a
// variable is dropped when every off-diagonal coefficient in its row has
// absolute value at or below the threshold.
func SignificantVariables(m Matrix, showAll bool) []string {
	if showAll {
		return append([]string(nil), m.Variables...)
	}

	kept := make([]string, 0, len(m.Variables))
	for i, name := range m.Variables {
		for j := range m.Variables {
			if i == j {
				continue
			}
			if math.Abs(m.Values[i][j]) > significanceThreshold {
				kept = append(kept, name)
				break
			}
		}
	}
	return kept
}
