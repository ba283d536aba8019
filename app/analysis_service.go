package app

import (
	"context"
	"log"
	"time"

	"corrlens/adapters/stats/engine"
	"corrlens/adapters/stats/profile"
	"corrlens/domain/core"
	"corrlens/domain/correlation"
	"corrlens/domain/table"
	"corrlens/internal/analyze"
	"corrlens/ports"
)

// AnalysisService runs the full correlation pipeline for one invocation:
// classify columns, resolve the matrix through the configured source,
// filter insignificant variables, and profile the numeric columns.
// Each invocation is a pure, independent transformation; the service
// carries no state between calls beyond its collaborators.
type AnalysisService struct {
	source ports.MatrixSource
	pairs  ports.PairSource         // nil means pairs are found locally
	repo   ports.AnalysisRepository // nil disables persistence
}

// AnalysisRequest defines one pipeline invocation
type AnalysisRequest struct {
	Table    *table.Table
	FilePath string
	Method   correlation.Method
	// MeasureColumns optionally restricts which numeric columns are
	// correlated; empty means all numeric columns in header order.
	MeasureColumns []string
	Filters        correlation.FilterDimension
	DateRange      *ports.DateRange
	ShowAll        bool
}

// AnalysisResult is the complete output of one pipeline invocation
type AnalysisResult struct {
	AnalysisID       core.AnalysisID         `json:"analysis_id"`
	Method           correlation.Method      `json:"method"`
	Classification   table.Classification    `json:"-"`
	Matrix           correlation.Matrix      `json:"matrix"`
	Variables        []string                `json:"variables"`
	DisplayVariables []string                `json:"display_variables"`
	Profiles         []profile.ColumnProfile `json:"profiles"`
	StrongestPair    *correlation.Pair       `json:"strongest_pair,omitempty"`
	RuntimeMs        int64                   `json:"runtime_ms"`
}

// NewAnalysisService creates an analysis service. The pair source and the
// repository may both be nil; persistence failures never fail an analysis
// either way.
func NewAnalysisService(source ports.MatrixSource, pairs ports.PairSource, repo ports.AnalysisRepository) *AnalysisService {
	return &AnalysisService{source: source, pairs: pairs, repo: repo}
}

// Analyze executes the pipeline. Parse and insufficient-data errors
// surface to the caller; degenerate computation outcomes are normalized
// inside the matrix instead.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	startTime := time.Now()

	classification := analyze.Classify(req.Table)

	variables := selectMeasures(classification.Numeric, req.MeasureColumns)
	if len(variables) < 2 {
		return nil, core.ErrNoNumericColumns
	}

	dateColumn, _ := classification.FirstDateColumn()
	sanitized, err := s.source.Resolve(ctx, ports.MatrixRequest{
		FilePath:   req.FilePath,
		Table:      req.Table,
		Variables:  variables,
		Method:     req.Method,
		Filters:    req.Filters,
		DateColumn: dateColumn,
		DateRange:  req.DateRange,
	})
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		AnalysisID:       core.AnalysisID(core.NewID()),
		Method:           req.Method,
		Classification:   classification,
		Matrix:           sanitized.Matrix,
		Variables:        sanitized.FilteredVariables,
		DisplayVariables: correlation.SignificantVariables(sanitized.Matrix, req.ShowAll),
		Profiles:         profile.Columns(req.Table, sanitized.FilteredVariables),
		RuntimeMs:        time.Since(startTime).Milliseconds(),
	}

	if pair, ok := sanitized.Matrix.StrongestPair(); ok {
		result.StrongestPair = &pair
	}

	s.persist(ctx, req, result)
	return result, nil
}

// HighestPair finds the strongest correlated pair for a dataset. With a
// pair source configured the remote service answers; otherwise, or when
// the remote call fails, the full matrix is computed and scanned locally.
func (s *AnalysisService) HighestPair(ctx context.Context, req AnalysisRequest) (correlation.Pair, error) {
	if s.pairs != nil && req.FilePath != "" {
		pair, err := s.pairs.HighestPair(ctx, req.FilePath, req.Method)
		if err == nil {
			return pair, nil
		}
		log.Printf("[AnalysisService] remote highest-pair unavailable, computing locally: %v", err)
	}

	req.ShowAll = true
	result, err := s.Analyze(ctx, req)
	if err != nil {
		return correlation.Pair{}, err
	}
	if result.StrongestPair == nil {
		return correlation.Pair{}, core.ErrInsufficientData
	}
	return *result.StrongestPair, nil
}

// PairPValue computes the two-tailed p-value for a coefficient between
// two variables, using the pairwise-complete sample size.
func (s *AnalysisService) PairPValue(t *table.Table, pair correlation.Pair) float64 {
	n := 0
	for _, row := range t.Rows {
		_, okA := row[pair.Column1].Float()
		_, okB := row[pair.Column2].Float()
		if okA && okB {
			n++
		}
	}
	return engine.PValue(pair.Value, n)
}

func (s *AnalysisService) persist(ctx context.Context, req AnalysisRequest, result *AnalysisResult) {
	if s.repo == nil {
		return
	}
	record := &ports.AnalysisRecord{
		ID:        result.AnalysisID,
		FilePath:  req.FilePath,
		Method:    req.Method,
		Variables: result.Variables,
		Matrix:    result.Matrix,
		CreatedAt: core.Now(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		log.Printf("[AnalysisService] failed to persist analysis %s: %v", result.AnalysisID, err)
	}
}

// selectMeasures intersects the classified numeric columns with an
// optional explicit selection, preserving classification order.
func selectMeasures(numeric, requested []string) []string {
	if len(requested) == 0 {
		return numeric
	}
	wanted := make(map[string]struct{}, len(requested))
	for _, name := range requested {
		wanted[name] = struct{}{}
	}
	selected := make([]string, 0, len(requested))
	for _, name := range numeric {
		if _, ok := wanted[name]; ok {
			selected = append(selected, name)
		}
	}
	return selected
}
