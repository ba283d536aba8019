package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"corrlens/domain/core"
	"corrlens/domain/correlation"
	apperrors "corrlens/internal/errors"
	"corrlens/ports"
)

// analysisRepository implements the AnalysisRepository interface
type analysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &analysisRepository{db: db}
}

// Migrate creates the analyses table if it does not exist
func Migrate(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		file_path TEXT NOT NULL,
		method TEXT NOT NULL,
		variables JSONB NOT NULL,
		matrix JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.Exec(schema); err != nil {
		return apperrors.DatabaseError("failed to migrate analyses table", err)
	}
	return nil
}

// Save inserts a completed analysis run
func (r *analysisRepository) Save(ctx context.Context, record *ports.AnalysisRecord) error {
	variablesJSON, err := json.Marshal(record.Variables)
	if err != nil {
		return fmt.Errorf("failed to marshal variables: %w", err)
	}
	matrixJSON, err := json.Marshal(record.Matrix)
	if err != nil {
		return fmt.Errorf("failed to marshal matrix: %w", err)
	}

	query := `INSERT INTO analyses (id, file_path, method, variables, matrix, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		record.ID.String(), record.FilePath, string(record.Method),
		variablesJSON, matrixJSON, record.CreatedAt.Time(),
	)
	if err != nil {
		return apperrors.DatabaseError(fmt.Sprintf("failed to save analysis %s", record.ID), err)
	}
	return nil
}

// GetByID retrieves an analysis run by its ID
func (r *analysisRepository) GetByID(ctx context.Context, id core.AnalysisID) (*ports.AnalysisRecord, error) {
	query := `SELECT id, file_path, method, variables, matrix, created_at
		FROM analyses WHERE id = $1`

	record, err := r.scanRecord(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: analysis with id %s", core.ErrAnalysisNotFound, id)
		}
		return nil, apperrors.DatabaseError("failed to get analysis", err)
	}
	return record, nil
}

// ListRecent returns the most recent analysis runs
func (r *analysisRepository) ListRecent(ctx context.Context, limit int) ([]*ports.AnalysisRecord, error) {
	query := `SELECT id, file_path, method, variables, matrix, created_at
		FROM analyses ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list analyses", err)
	}
	defer rows.Close()

	var records []*ports.AnalysisRecord
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan analysis")
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *analysisRepository) scanRecord(row rowScanner) (*ports.AnalysisRecord, error) {
	var record ports.AnalysisRecord
	var id, method string
	var variablesJSON, matrixJSON []byte
	var createdAt time.Time

	if err := row.Scan(&id, &record.FilePath, &method, &variablesJSON, &matrixJSON, &createdAt); err != nil {
		return nil, err
	}

	record.ID = core.AnalysisID(id)
	record.Method = correlation.Method(method)
	record.CreatedAt = core.NewTimestamp(createdAt)
	if err := json.Unmarshal(variablesJSON, &record.Variables); err != nil {
		return nil, fmt.Errorf("failed to unmarshal variables: %w", err)
	}
	if err := json.Unmarshal(matrixJSON, &record.Matrix); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matrix: %w", err)
	}
	return &record, nil
}
