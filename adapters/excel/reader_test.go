package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadTable(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"name", "score"},
		{"alpha", 1.5},
		{"beta", 2.5},
	})

	tbl, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "score"}, tbl.Columns)
	require.Equal(t, 2, tbl.RowCount())

	v, ok := tbl.Rows[0]["score"].Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, v)
	assert.Equal(t, "alpha", tbl.Rows[0]["name"].Raw())
}

func TestReadTable_ShortRowsPadded(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"a", "b", "c"},
		{1, 2},
	})

	tbl, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)
	assert.True(t, tbl.Rows[0]["c"].IsMissing())
}

func TestReadTable_HeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"a", "b"}})

	_, err := NewDataReader(path).ReadTable()
	assert.Error(t, err)
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "absent.xlsx")).ReadTable()
	assert.Error(t, err)
}
