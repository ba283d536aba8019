package app

import (
	"context"
	"log"

	"corrlens/adapters/stats/temporal"
	"corrlens/domain/correlation"
	"corrlens/domain/table"
	"corrlens/ports"
)

// TimeSeriesService produces the aligned comparison series for the
// selected variable pair. When a remote series source is configured it is
// preferred; the raw-rows alignment is the client-side fallback.
type TimeSeriesService struct {
	series ports.SeriesSource // nil means local-only
}

// SeriesRequest defines one series computation
type SeriesRequest struct {
	Table          *table.Table
	Classification table.Classification
	FilePath       string
	Pair           correlation.VariablePair
}

// NewTimeSeriesService creates a time-series service
func NewTimeSeriesService(series ports.SeriesSource) *TimeSeriesService {
	return &TimeSeriesService{series: series}
}

// Series computes the sorted, sanitized point sequence. An incomplete
// variable pair yields an empty series rather than an error.
func (s *TimeSeriesService) Series(ctx context.Context, req SeriesRequest) []correlation.TimeSeriesPoint {
	if !req.Pair.IsComplete() {
		return nil
	}

	if s.series != nil && req.FilePath != "" {
		axis, values, err := s.series.FetchAxis(ctx, req.FilePath, req.Pair)
		if err == nil {
			return temporal.AlignServerAxis(axis, values)
		}
		log.Printf("[TimeSeriesService] remote axis unavailable, falling back to rows: %v", err)
	}

	return temporal.AlignRows(req.Table, req.Classification, req.Pair)
}
