// Package corrapi is the HTTP client for the external correlation service.
//
// The service's response framing is loosely shaped: the correlation matrix
// may sit at the top level or nested one level under "results". The client
// extracts it tolerantly and hands the raw dictionary to the sanitizer, so
// a malformed body degrades to a renderable fallback instead of an error.
package corrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"corrlens/domain/core"
	"corrlens/domain/correlation"
	"corrlens/domain/table"
	apperrors "corrlens/internal/errors"
	"corrlens/ports"
)

// matrixPaths are tried in order; the first hit wins.
var matrixPaths = []string{
	"correlation_results.correlation_matrix",
	"results.correlation_results.correlation_matrix",
}

// Client talks to the correlation service
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a correlation service client
func NewClient(config Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Resolve implements ports.MatrixSource against the remote service.
func (c *Client) Resolve(ctx context.Context, req ports.MatrixRequest) (correlation.Sanitized, error) {
	wireReq := CorrelationRequest{
		FilePath:       req.FilePath,
		Method:         string(req.Method),
		MeasureColumns: req.Variables,
		DateColumn:     req.DateColumn,
	}
	if req.DateRange != nil {
		wireReq.DateRangeFilter = req.DateRange
	}
	for column, values := range req.Filters {
		wireReq.IdentifierFilters = append(wireReq.IdentifierFilters, IdentifierFilter{
			Column: column,
			Values: values,
		})
	}

	body, err := c.post(ctx, "/correlation/compute", wireReq)
	if err != nil {
		return correlation.Sanitized{}, remoteError(err)
	}

	dict := extractMatrix(body)
	requested := req.Variables
	if len(requested) == 0 {
		// Fall back to the columns the server actually used
		for _, col := range gjson.GetBytes(body, "columns_used").Array() {
			requested = append(requested, col.String())
		}
	}

	return correlation.Transform(dict, requested), nil
}

// FetchSeries retrieves the axis and both value arrays for a variable
// pair. The two requests are issued concurrently; alignment itself stays
// synchronous in the caller.
func (c *Client) FetchSeries(ctx context.Context, filePath string, pair correlation.VariablePair) (AxisResponse, ValuesResponse, error) {
	if !pair.IsComplete() {
		return AxisResponse{}, ValuesResponse{}, core.ErrVariablePairUnset
	}

	var axis AxisResponse
	var values ValuesResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := c.post(gctx, "/timeseries/axis", map[string]string{"file_path": filePath})
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &axis)
	})
	g.Go(func() error {
		body, err := c.post(gctx, "/timeseries/values", map[string]string{
			"file_path": filePath,
			"column1":   pair.Var1,
			"column2":   pair.Var2,
		})
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &values)
	})

	if err := g.Wait(); err != nil {
		return AxisResponse{}, ValuesResponse{}, remoteError(err)
	}
	return axis, values, nil
}

// FetchAxis implements ports.SeriesSource: the wire axis and values are
// converted into tagged cells ready for alignment.
func (c *Client) FetchAxis(ctx context.Context, filePath string, pair correlation.VariablePair) (correlation.SeriesAxis, correlation.SeriesValues, error) {
	axis, values, err := c.FetchSeries(ctx, filePath, pair)
	if err != nil {
		return correlation.SeriesAxis{}, correlation.SeriesValues{}, err
	}
	return correlation.SeriesAxis{
			IsDatetime:     axis.HasDatetime,
			DatetimeColumn: axis.DatetimeColumn,
			X:              ParseAxisCells(axis.XValues),
		}, correlation.SeriesValues{
			Var1: ParseAxisCells(values.Column1Values),
			Var2: ParseAxisCells(values.Column2Values),
		}, nil
}

// HighestPair asks the service for the strongest correlated pair
func (c *Client) HighestPair(ctx context.Context, filePath string, method correlation.Method) (correlation.Pair, error) {
	body, err := c.post(ctx, "/correlation/highest-pair", map[string]string{
		"file_path": filePath,
		"method":    string(method),
	})
	if err != nil {
		return correlation.Pair{}, remoteError(err)
	}

	var resp HighestPairResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return correlation.Pair{}, fmt.Errorf("%w: %v", core.ErrMalformedRemoteData, err)
	}
	return correlation.Pair{Column1: resp.Column1, Column2: resp.Column2, Value: resp.CorrelationValue}, nil
}

// remoteError tags a transport failure with both the domain sentinel and
// the application error code.
func remoteError(err error) error {
	return apperrors.ExternalServiceError("correlation",
		fmt.Errorf("%w: %v", core.ErrRemoteUnavailable, err))
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// extractMatrix pulls the variable→variable→coefficient dictionary out of
// a response body, probing both documented locations. A missing or
// malformed matrix yields an empty dictionary, which the sanitizer turns
// into its identity fallback.
func extractMatrix(body []byte) map[string]map[string]float64 {
	dict := make(map[string]map[string]float64)
	for _, path := range matrixPaths {
		result := gjson.GetBytes(body, path)
		if !result.Exists() || !result.IsObject() {
			continue
		}
		result.ForEach(func(rowVar, row gjson.Result) bool {
			if !row.IsObject() {
				return true
			}
			inner := make(map[string]float64)
			row.ForEach(func(colVar, v gjson.Result) bool {
				inner[colVar.String()] = v.Float()
				return true
			})
			dict[rowVar.String()] = inner
			return true
		})
		break
	}
	return dict
}

// ParseAxisCells converts a wire axis into tagged cells
func ParseAxisCells(values []interface{}) []table.Cell {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		cells[i] = cellFromWire(v)
	}
	return cells
}

func cellFromWire(v interface{}) table.Cell {
	switch t := v.(type) {
	case nil:
		return table.Missing()
	case float64:
		return table.NumberCell(t)
	case string:
		return table.ParseCell(t)
	default:
		return table.ParseCell(fmt.Sprintf("%v", t))
	}
}
