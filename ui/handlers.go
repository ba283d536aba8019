package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"corrlens/adapters/csvfile"
	"corrlens/adapters/excel"
	"corrlens/adapters/stats/temporal"
	"corrlens/app"
	"corrlens/domain/core"
	"corrlens/domain/correlation"
	"corrlens/domain/table"
	"corrlens/internal/analyze"
	apperrors "corrlens/internal/errors"
	"corrlens/internal/report"
	"corrlens/ports"
)

// correlationPayload is the request body for /api/correlation
type correlationPayload struct {
	FilePath          string                   `json:"file_path"`
	Method            string                   `json:"method"`
	MeasureColumns    []string                 `json:"measure_columns,omitempty"`
	IdentifierFilters []identifierFilter       `json:"identifier_filters,omitempty"`
	DateRangeFilter   *ports.DateRange         `json:"date_range_filter,omitempty"`
	ShowAll           bool                     `json:"show_all,omitempty"`
}

type identifierFilter struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

type timeSeriesPayload struct {
	FilePath string `json:"file_path"`
	Var1     string `json:"var1"`
	Var2     string `json:"var2"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload stores an uploaded dataset and returns its parsed shape
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(a.config.Data.MaxFileSize); err != nil {
		respondError(w, fmt.Errorf("%w: %v", core.ErrMalformedFile, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, core.NewParseError("no file provided"))
		return
	}
	defer file.Close()

	if header.Size > a.config.Data.MaxFileSize {
		respondError(w, core.NewValidationError("file", "exceeds maximum size"))
		return
	}

	path, datasetID, err := a.storeUpload(file, header.Filename)
	if err != nil {
		respondError(w, err)
		return
	}

	t, err := readTable(path)
	if err != nil {
		respondError(w, err)
		return
	}

	classification := analyze.Classify(t)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id":          datasetID,
		"file_path":           path,
		"columns":             t.Columns,
		"row_count":           t.RowCount(),
		"numeric_columns":     classification.Numeric,
		"date_columns":        classification.Date,
		"categorical_columns": classification.Categorical,
	})
}

// handleCorrelation runs the full pipeline for a stored dataset
func (a *App) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	var payload correlationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, core.NewParseError("invalid request body"))
		return
	}

	method, err := correlation.ParseMethod(payload.Method)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", core.ErrUnknownMethod, err))
		return
	}

	t, err := readTable(payload.FilePath)
	if err != nil {
		respondError(w, err)
		return
	}

	filters := make(correlation.FilterDimension, len(payload.IdentifierFilters))
	for _, f := range payload.IdentifierFilters {
		filters[f.Column] = f.Values
	}

	result, err := a.analysis.Analyze(r.Context(), app.AnalysisRequest{
		Table:          t,
		FilePath:       payload.FilePath,
		Method:         method,
		MeasureColumns: payload.MeasureColumns,
		Filters:        filters,
		DateRange:      payload.DateRangeFilter,
		ShowAll:        payload.ShowAll,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleHighestPair returns the strongest off-diagonal pair for a dataset
func (a *App) handleHighestPair(w http.ResponseWriter, r *http.Request) {
	var payload correlationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, core.NewParseError("invalid request body"))
		return
	}

	method, err := correlation.ParseMethod(payload.Method)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", core.ErrUnknownMethod, err))
		return
	}

	t, err := readTable(payload.FilePath)
	if err != nil {
		respondError(w, err)
		return
	}

	pair, err := a.analysis.HighestPair(r.Context(), app.AnalysisRequest{
		Table:    t,
		FilePath: payload.FilePath,
		Method:   method,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"column1":           pair.Column1,
		"column2":           pair.Column2,
		"correlation_value": pair.Value,
		"p_value":           a.analysis.PairPValue(t, pair),
	})
}

// handleTimeSeries computes the aligned comparison series for a pair
func (a *App) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	var payload timeSeriesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, core.NewParseError("invalid request body"))
		return
	}

	t, err := readTable(payload.FilePath)
	if err != nil {
		respondError(w, err)
		return
	}

	points := a.timeseries.Series(r.Context(), app.SeriesRequest{
		Table:          t,
		Classification: analyze.Classify(t),
		FilePath:       payload.FilePath,
		Pair:           correlation.VariablePair{Var1: payload.Var1, Var2: payload.Var2},
	})
	points = temporal.CapForPresentation(points)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"points": points,
		"count":  len(points),
	})
}

// handleReport renders the HTML analysis summary
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	var payload correlationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, core.NewParseError("invalid request body"))
		return
	}

	method, err := correlation.ParseMethod(payload.Method)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", core.ErrUnknownMethod, err))
		return
	}

	t, err := readTable(payload.FilePath)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := a.analysis.Analyze(r.Context(), app.AnalysisRequest{
		Table:    t,
		FilePath: payload.FilePath,
		Method:   method,
		ShowAll:  true,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML(result))
}

// handleListAnalyses returns recent persisted runs
func (a *App) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		respondJSON(w, http.StatusOK, []interface{}{})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	records, err := a.repo.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// handleGetAnalysis returns one persisted run by ID
func (a *App) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		respondError(w, core.ErrAnalysisNotFound)
		return
	}

	id, err := core.ParseAnalysisID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	record, err := a.repo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// storeUpload writes an uploaded file into the configured upload directory
// under a freshly minted dataset identity.
func (a *App) storeUpload(file io.Reader, filename string) (string, core.DatasetID, error) {
	if err := os.MkdirAll(a.config.Data.UploadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	datasetID := core.DatasetID(core.NewID())
	name := fmt.Sprintf("%s_%s", datasetID, filepath.Base(filename))
	path := filepath.Join(a.config.Data.UploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path, datasetID, nil
}

// readTable loads a dataset by extension: .xlsx through the Excel reader,
// anything else through the CSV reader.
func readTable(path string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return excel.NewDataReader(path).ReadTable()
	}
	return csvfile.ReadFile(path)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[UI] failed to encode response: %v", err)
	}
}

// respondError maps the error taxonomy onto HTTP statuses: parse and
// validation problems are the client's fault, missing data is 404,
// insufficient data is unprocessable, remote trouble is a bad gateway.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsParseError(err), errors.Is(err, core.ErrUnknownMethod):
		status = http.StatusBadRequest
	case core.IsInsufficientDataError(err):
		status = http.StatusUnprocessableEntity
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrRemoteUnavailable):
		status = http.StatusBadGateway
	case os.IsNotExist(errors.Unwrap(err)), os.IsNotExist(err):
		status = http.StatusNotFound
	case apperrors.IsAppError(err):
		switch apperrors.GetCode(err) {
		case apperrors.CodeInvalidInput, apperrors.CodeConfigInvalid:
			status = http.StatusBadRequest
		case apperrors.CodeExternalService:
			status = http.StatusBadGateway
		}
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}
