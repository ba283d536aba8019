package csvfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corrlens/domain/core"
	"corrlens/domain/table"
)

func TestParse_BasicTable(t *testing.T) {
	tbl, err := Parse("a,b,c\n1,2,hello\n3,4,world\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns)
	require.Equal(t, 2, tbl.RowCount())

	v, ok := tbl.Rows[0]["a"].Float()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, "hello", tbl.Rows[0]["c"].Raw())
}

func TestParse_CRLFAndBlankLines(t *testing.T) {
	tbl, err := Parse("a,b\r\n1,2\r\n\r\n3,4\r\n")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.RowCount())
}

func TestParse_QuotedFields(t *testing.T) {
	tbl, err := Parse(`name,score` + "\n" + `"alpha","3.5"` + "\n")
	require.NoError(t, err)

	assert.Equal(t, "alpha", tbl.Rows[0]["name"].Raw())
	v, ok := tbl.Rows[0]["score"].Float()
	require.True(t, ok)
	assert.Equal(t, 3.5, v)
}

func TestParse_RaggedRowsBecomeMissing(t *testing.T) {
	tbl, err := Parse("a,b,c\n1,2\n")
	require.NoError(t, err)

	assert.True(t, tbl.Rows[0]["c"].IsMissing())
	assert.False(t, tbl.Rows[0]["a"].IsMissing())
}

func TestParse_EmptyHeaderNamesSynthesized(t *testing.T) {
	tbl, err := Parse("a,,c\n1,2,3\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "column_2", "c"}, tbl.Columns)
}

func TestParse_EmptyCellsAreMissing(t *testing.T) {
	tbl, err := Parse("a,b\n1,\n,2\n")
	require.NoError(t, err)

	assert.True(t, tbl.Rows[0]["b"].IsMissing())
	assert.True(t, tbl.Rows[1]["a"].IsMissing())
}

func TestParse_TooFewLines(t *testing.T) {
	for _, raw := range []string{"", "header_only\n", "   \n\n"} {
		_, err := Parse(raw)
		assert.True(t, errors.Is(err, core.ErrEmptyFile), "raw=%q err=%v", raw, err)
	}
}

func TestParse_NumericCellsDecidedOnce(t *testing.T) {
	tbl, err := Parse("v\n1.5\nnot_a_number\n")
	require.NoError(t, err)

	assert.Equal(t, table.CellNumber, tbl.Rows[0]["v"].Kind)
	assert.Equal(t, table.CellText, tbl.Rows[1]["v"].Kind)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n2,4\n"), 0o644))

	tbl, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.RowCount())

	_, err = ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
