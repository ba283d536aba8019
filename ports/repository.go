package ports

import (
	"context"

	"corrlens/domain/core"
	"corrlens/domain/correlation"
)

// AnalysisRecord is a persisted correlation run
type AnalysisRecord struct {
	ID        core.AnalysisID    `db:"id" json:"id"`
	FilePath  string             `db:"file_path" json:"file_path"`
	Method    correlation.Method `db:"method" json:"method"`
	Variables []string           `db:"-" json:"variables"`
	Matrix    correlation.Matrix `db:"-" json:"matrix"`
	CreatedAt core.Timestamp     `db:"created_at" json:"created_at"`
}

// AnalysisRepository persists completed correlation runs. This is the thin,
// replaceable persistence layer outside the core; the computation never
// depends on it.
type AnalysisRepository interface {
	Save(ctx context.Context, record *AnalysisRecord) error
	GetByID(ctx context.Context, id core.AnalysisID) (*AnalysisRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*AnalysisRecord, error)
}
