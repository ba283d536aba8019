package correlation

import "math"

// Sanitized is the always-renderable output of Transform: a dense finite
// matrix over the variables that survived server-side exclusion.
type Sanitized struct {
	Matrix            Matrix
	FilteredVariables []string
}

// Transform converts an externally supplied variable→variable→coefficient
// dictionary into a dense matrix. It never fails: malformed or missing
// entries are absorbed into defined values so the visualization layer
// always receives something renderable.
//
// Rules:
//   - A variable survives only if the dictionary holds a nested map for it,
//     mirroring the server's exclusion of non-numeric columns.
//   - An entirely empty dictionary is the distinguished degraded branch:
//     the original variable list is kept unfiltered under an identity matrix.
//   - If no variable survives a non-empty dictionary, a 1×1 unit matrix over
//     the first requested variable (or "Unknown") is returned.
//   - The diagonal is forced to 1.0 regardless of the dictionary; any other
//     cell that is absent or non-finite becomes 0.0.
func Transform(dict map[string]map[string]float64, requested []string) (out Sanitized) {
	defer func() {
		if r := recover(); r != nil {
			vars := requested
			if len(vars) == 0 {
				vars = []string{"Unknown"}
			}
			out = Sanitized{Matrix: Identity(vars), FilteredVariables: append([]string(nil), vars...)}
		}
	}()

	if len(dict) == 0 {
		vars := requested
		if len(vars) == 0 {
			vars = []string{"Unknown"}
		}
		return Sanitized{Matrix: Identity(vars), FilteredVariables: append([]string(nil), vars...)}
	}

	survivors := make([]string, 0, len(requested))
	for _, v := range requested {
		if row, ok := dict[v]; ok && row != nil {
			survivors = append(survivors, v)
		}
	}

	if len(survivors) == 0 {
		placeholder := "Unknown"
		if len(requested) > 0 {
			placeholder = requested[0]
		}
		return Sanitized{
			Matrix:            Identity([]string{placeholder}),
			FilteredVariables: []string{placeholder},
		}
	}

	values := make([][]float64, len(survivors))
	for i, rowVar := range survivors {
		values[i] = make([]float64, len(survivors))
		for j, colVar := range survivors {
			if rowVar == colVar {
				values[i][j] = 1.0
				continue
			}
			v, ok := dict[rowVar][colVar]
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				values[i][j] = 0.0
				continue
			}
			values[i][j] = v
		}
	}

	return Sanitized{
		Matrix:            Matrix{Variables: survivors, Values: values},
		FilteredVariables: survivors,
	}
}
