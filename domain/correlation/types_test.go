package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{"pearson", MethodPearson, false},
		{"spearman", MethodSpearman, false},
		{" Pearson ", MethodPearson, false},
		{"SPEARMAN", MethodSpearman, false},
		{"kendall", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatrixValidate(t *testing.T) {
	t.Run("identity is valid", func(t *testing.T) {
		assert.NoError(t, Identity([]string{"a", "b", "c"}).Validate())
	})

	t.Run("ragged rows rejected", func(t *testing.T) {
		m := Matrix{Variables: []string{"a", "b"}, Values: [][]float64{{1, 0}, {0}}}
		assert.Error(t, m.Validate())
	})

	t.Run("broken diagonal rejected", func(t *testing.T) {
		m := Matrix{Variables: []string{"a", "b"}, Values: [][]float64{{0.9, 0}, {0, 1}}}
		assert.Error(t, m.Validate())
	})
}

func TestStrongestPair(t *testing.T) {
	m := Matrix{
		Variables: []string{"a", "b", "c"},
		Values: [][]float64{
			{1.0, 0.3, -0.8},
			{0.3, 1.0, 0.5},
			{-0.8, 0.5, 1.0},
		},
	}

	pair, ok := m.StrongestPair()
	require.True(t, ok)
	assert.Equal(t, "a", pair.Column1)
	assert.Equal(t, "c", pair.Column2)
	assert.Equal(t, -0.8, pair.Value)

	_, ok = Identity([]string{"only"}).StrongestPair()
	assert.False(t, ok)
}

func TestVariablePairIsComplete(t *testing.T) {
	assert.True(t, VariablePair{Var1: "x", Var2: "y"}.IsComplete())
	assert.False(t, VariablePair{Var1: "x"}.IsComplete())
	assert.False(t, VariablePair{}.IsComplete())
}
