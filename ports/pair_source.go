package ports

import (
	"context"

	"corrlens/domain/correlation"
)

// PairSource asks an external service for the strongest correlated pair
// of a dataset. Local computation scans the matrix instead; the two are
// interchangeable behind this interface.
type PairSource interface {
	HighestPair(ctx context.Context, filePath string, method correlation.Method) (correlation.Pair, error)
}
