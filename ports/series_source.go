package ports

import (
	"context"

	"corrlens/domain/correlation"
)

// SeriesSource fetches a pre-computed axis and value arrays for a variable
// pair from an external service. Alignment of the fetched data stays in
// the synchronous core.
type SeriesSource interface {
	FetchAxis(ctx context.Context, filePath string, pair correlation.VariablePair) (correlation.SeriesAxis, correlation.SeriesValues, error)
}
