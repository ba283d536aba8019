package corrapi

import (
	"time"

	"corrlens/ports"
)

// Config holds connection settings for the correlation service
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DefaultConfig returns sensible client defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// IdentifierFilter restricts rows by a categorical column's values
type IdentifierFilter struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// CorrelationRequest is the wire shape sent to the correlation service
type CorrelationRequest struct {
	FilePath            string             `json:"file_path"`
	Method              string             `json:"method"`
	IdentifierFilters   []IdentifierFilter `json:"identifier_filters,omitempty"`
	IdentifierColumns   []string           `json:"identifier_columns,omitempty"`
	MeasureColumns      []string           `json:"measure_columns,omitempty"`
	DateColumn          string             `json:"date_column,omitempty"`
	DateRangeFilter     *ports.DateRange   `json:"date_range_filter,omitempty"`
	AggregationLevel    string             `json:"aggregation_level,omitempty"`
	IncludePreview      bool               `json:"include_preview,omitempty"`
	PreviewLimit        int                `json:"preview_limit,omitempty"`
	SaveFiltered        bool               `json:"save_filtered,omitempty"`
	IncludeDateAnalysis bool               `json:"include_date_analysis,omitempty"`
}

// AxisResponse is the time-series axis wire shape
type AxisResponse struct {
	HasDatetime    bool          `json:"has_datetime"`
	DatetimeColumn string        `json:"datetime_column,omitempty"`
	XValues        []interface{} `json:"x_values"`
}

// ValuesResponse carries two value arrays index-aligned with the axis
type ValuesResponse struct {
	Column1Values []interface{} `json:"column1_values"`
	Column2Values []interface{} `json:"column2_values"`
}

// HighestPairResponse names the strongest correlated pair
type HighestPairResponse struct {
	Column1          string  `json:"column1"`
	Column2          string  `json:"column2"`
	CorrelationValue float64 `json:"correlation_value"`
}
