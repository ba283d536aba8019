package corrapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corrlens/domain/core"
	"corrlens/domain/correlation"
	apperrors "corrlens/internal/errors"
	"corrlens/ports"
)

func testClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	cfg := DefaultConfig(srv.URL)
	cfg.APIKey = "test-key"
	cfg.Timeout = 5 * time.Second
	return NewClient(cfg), srv
}

func TestResolve_TopLevelMatrix(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/correlation/compute", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req CorrelationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pearson", req.Method)

		w.Write([]byte(`{
			"correlation_results": {
				"correlation_matrix": {
					"a": {"a": 1, "b": 0.5},
					"b": {"a": 0.5, "b": 1}
				}
			}
		}`))
	}))
	defer srv.Close()

	out, err := client.Resolve(context.Background(), ports.MatrixRequest{
		FilePath:  "data.csv",
		Variables: []string{"a", "b"},
		Method:    correlation.MethodPearson,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, out.FilteredVariables)
	assert.Equal(t, 0.5, out.Matrix.Values[0][1])
}

func TestResolve_MatrixNestedUnderResults(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": {
				"correlation_results": {
					"correlation_matrix": {
						"x": {"x": 1, "y": -0.3},
						"y": {"x": -0.3, "y": 1}
					}
				}
			}
		}`))
	}))
	defer srv.Close()

	out, err := client.Resolve(context.Background(), ports.MatrixRequest{
		Variables: []string{"x", "y"},
		Method:    correlation.MethodSpearman,
	})
	require.NoError(t, err)
	assert.Equal(t, -0.3, out.Matrix.Values[0][1])
}

func TestResolve_MalformedBodyDegradesToIdentity(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": "shape"}`))
	}))
	defer srv.Close()

	out, err := client.Resolve(context.Background(), ports.MatrixRequest{
		Variables: []string{"a", "b"},
		Method:    correlation.MethodPearson,
	})
	require.NoError(t, err, "malformed data never errors, it degrades")
	assert.Equal(t, []string{"a", "b"}, out.FilteredVariables)
	require.NoError(t, out.Matrix.Validate())
}

func TestResolve_FallsBackToColumnsUsed(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"columns_used": ["p", "q"],
			"correlation_results": {
				"correlation_matrix": {
					"p": {"p": 1, "q": 0.9},
					"q": {"p": 0.9, "q": 1}
				}
			}
		}`))
	}))
	defer srv.Close()

	out, err := client.Resolve(context.Background(), ports.MatrixRequest{
		Method: correlation.MethodPearson,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q"}, out.FilteredVariables)
}

func TestResolve_ServiceDown(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.Resolve(context.Background(), ports.MatrixRequest{
		Variables: []string{"a", "b"},
		Method:    correlation.MethodPearson,
	})
	assert.True(t, errors.Is(err, core.ErrRemoteUnavailable), "err = %v", err)
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
}

func TestFetchSeries(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/timeseries/axis":
			w.Write([]byte(`{"has_datetime": true, "datetime_column": "day", "x_values": ["2024-01-01", "2024-01-02"]}`))
		case "/timeseries/values":
			w.Write([]byte(`{"column1_values": [1, 2], "column2_values": [3, null]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	pair := correlation.VariablePair{Var1: "a", Var2: "b"}
	axis, values, err := client.FetchSeries(context.Background(), "data.csv", pair)
	require.NoError(t, err)

	assert.True(t, axis.HasDatetime)
	assert.Equal(t, "day", axis.DatetimeColumn)
	assert.Len(t, axis.XValues, 2)
	assert.Len(t, values.Column1Values, 2)
}

func TestFetchSeries_IncompletePair(t *testing.T) {
	client := NewClient(DefaultConfig("http://unused"))
	_, _, err := client.FetchSeries(context.Background(), "data.csv", correlation.VariablePair{Var1: "only"})
	assert.True(t, errors.Is(err, core.ErrVariablePairUnset))
}

func TestFetchAxis_ConvertsWireValues(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/timeseries/axis":
			w.Write([]byte(`{"has_datetime": false, "x_values": [1, 2, 3]}`))
		case "/timeseries/values":
			w.Write([]byte(`{"column1_values": [10, "20", null], "column2_values": [1, 2, 3]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	axis, values, err := client.FetchAxis(context.Background(), "data.csv", correlation.VariablePair{Var1: "a", Var2: "b"})
	require.NoError(t, err)

	assert.False(t, axis.IsDatetime)
	require.Len(t, values.Var1, 3)

	v, ok := values.Var1[0].Float()
	require.True(t, ok)
	assert.Equal(t, 10.0, v)

	v, ok = values.Var1[1].Float()
	require.True(t, ok, "numeric strings convert to number cells")
	assert.Equal(t, 20.0, v)

	assert.True(t, values.Var1[2].IsMissing(), "null converts to missing")
}

func TestHighestPair(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/correlation/highest-pair", r.URL.Path)
		w.Write([]byte(`{"column1": "revenue", "column2": "spend", "correlation_value": 0.87}`))
	}))
	defer srv.Close()

	pair, err := client.HighestPair(context.Background(), "data.csv", correlation.MethodPearson)
	require.NoError(t, err)
	assert.Equal(t, correlation.Pair{Column1: "revenue", Column2: "spend", Value: 0.87}, pair)
}

func TestExtractMatrix_PrefersTopLevel(t *testing.T) {
	body := []byte(`{
		"correlation_results": {"correlation_matrix": {"a": {"a": 1}}},
		"results": {"correlation_results": {"correlation_matrix": {"b": {"b": 1}}}}
	}`)

	dict := extractMatrix(body)
	_, hasA := dict["a"]
	_, hasB := dict["b"]
	assert.True(t, hasA)
	assert.False(t, hasB)
}
