package engine

import (
	"errors"
	"math"
	"testing"

	"corrlens/domain/core"
	"corrlens/domain/correlation"
	"corrlens/domain/table"
	"corrlens/internal/testkit"
)

func numericTable(cols map[string][]string) *table.Table {
	t := &table.Table{}
	rows := 0
	for name, values := range cols {
		t.Columns = append(t.Columns, name)
		if len(values) > rows {
			rows = len(values)
		}
	}
	for i := 0; i < rows; i++ {
		row := table.Row{}
		for name, values := range cols {
			if i < len(values) {
				row[name] = table.ParseCell(values[i])
			} else {
				row[name] = table.Missing()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestBuildMatrix_PerfectLinear(t *testing.T) {
	tbl := numericTable(map[string][]string{
		"a": {"1", "2", "3"},
		"b": {"2", "4", "6"},
	})

	m, err := BuildMatrix(tbl, []string{"a", "b"}, correlation.MethodPearson)
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}

	for i := range m.Values {
		for j := range m.Values[i] {
			if math.Abs(m.Values[i][j]-1.0) > 1e-12 {
				t.Errorf("Values[%d][%d] = %v, want 1.0", i, j, m.Values[i][j])
			}
		}
	}
}

func TestBuildMatrix_DiagonalAndSymmetry(t *testing.T) {
	kit := testkit.NewTestKit(7)
	tbl := kit.LinearTable(40, 2.0, 1.0, 3.0)

	m, err := BuildMatrix(tbl, []string{"x", "y"}, correlation.MethodSpearman)
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	for i := range m.Values {
		if m.Values[i][i] != 1.0 {
			t.Errorf("diagonal [%d][%d] = %v, want 1.0", i, i, m.Values[i][i])
		}
		for j := range m.Values[i] {
			if m.Values[i][j] != m.Values[j][i] {
				t.Errorf("asymmetric at [%d][%d]: %v vs %v", i, j, m.Values[i][j], m.Values[j][i])
			}
		}
	}
}

func TestBuildMatrix_NeverNonFinite(t *testing.T) {
	kit := testkit.NewTestKit(11)
	tbl := kit.ConstantColumn(20)

	m, err := BuildMatrix(tbl, []string{"x", "flat"}, correlation.MethodPearson)
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	for i := range m.Values {
		for j := range m.Values[i] {
			v := m.Values[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite value at [%d][%d]: %v", i, j, v)
			}
		}
	}
	// zero-variance column carries no signal
	if m.Values[0][1] != 0 {
		t.Errorf("correlation against constant column = %v, want 0", m.Values[0][1])
	}
}

func TestBuildMatrix_PairwiseCompleteCase(t *testing.T) {
	// a-b overlap on rows 0..2 only; a-c on rows 1..3 only
	tbl := numericTable(map[string][]string{
		"a": {"1", "2", "3", "4"},
		"b": {"2", "4", "6", ""},
		"c": {"", "1", "2", "3"},
	})

	m, err := BuildMatrix(tbl, []string{"a", "b", "c"}, correlation.MethodPearson)
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	ab := m.At(0, 1)
	ac := m.At(0, 2)
	if math.Abs(ab-1.0) > 1e-12 {
		t.Errorf("a-b over shared rows = %v, want 1.0", ab)
	}
	if math.Abs(ac-1.0) > 1e-12 {
		t.Errorf("a-c over shared rows = %v, want 1.0", ac)
	}
}

func TestBuildMatrix_TooFewSharedSamples(t *testing.T) {
	tbl := numericTable(map[string][]string{
		"a": {"1", "", "3"},
		"b": {"2", "4", ""},
	})

	m, err := BuildMatrix(tbl, []string{"a", "b"}, correlation.MethodPearson)
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	if v := m.At(0, 1); v != 0 {
		t.Errorf("single shared sample should yield 0, got %v", v)
	}
}

func TestBuildMatrix_InsufficientColumns(t *testing.T) {
	tbl := numericTable(map[string][]string{"a": {"1", "2"}})

	_, err := BuildMatrix(tbl, []string{"a"}, correlation.MethodPearson)
	if !errors.Is(err, core.ErrNoNumericColumns) {
		t.Fatalf("err = %v, want ErrNoNumericColumns", err)
	}
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("ErrNoNumericColumns should wrap ErrInsufficientData, got %v", err)
	}
}

func TestBuildMatrix_UnknownMethod(t *testing.T) {
	tbl := numericTable(map[string][]string{
		"a": {"1", "2"},
		"b": {"2", "4"},
	})

	_, err := BuildMatrix(tbl, []string{"a", "b"}, correlation.Method("kendall"))
	if !errors.Is(err, core.ErrUnknownMethod) {
		t.Fatalf("err = %v, want ErrUnknownMethod", err)
	}
}
