package excel

import (
	"path/filepath"
	"testing"

	"sheetgen/core/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func itemsWorkbook(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, "Items", [][]any{
		{"编号", "名称", "标签", "", "掉率"},
		{"ID", "Name", "Tags", "", "DropRate"},
		{"int", "string", "array<string>", "", "float"},
		{"1001", "Sword", "weapon", "melee", "0.25"},
		{"1002", "Shield", "armor", "", "0.5"},
		{},
		{"1003", "Potion"},
	})
}

func TestRead(t *testing.T) {
	src, err := NewReader().Read(itemsWorkbook(t), "Items")
	require.NoError(t, err)

	assert.Equal(t, "Items", src.Sheet)
	require.Len(t, src.Columns, 4)
	assert.Equal(t, []string{"ID", "Name", "Tags", "DropRate"}, src.ColumnNames())

	tags := src.Column("Tags")
	require.NotNil(t, tags)
	assert.Equal(t, "array<string>", tags.RawType)
	assert.Equal(t, types.KindArray, tags.Type.Kind)

	// The blank row is skipped entirely.
	require.Len(t, src.Rows, 3)

	// The unnamed column after Tags belongs to it; its cells join with "|".
	assert.Equal(t, "weapon|melee", src.Rows[0]["Tags"])
	assert.Equal(t, "armor", src.Rows[1]["Tags"])

	// Empty cells stay absent.
	_, ok := src.Rows[2]["Tags"]
	assert.False(t, ok)
	_, ok = src.Rows[2]["DropRate"]
	assert.False(t, ok)
}

func TestReadMissingSheet(t *testing.T) {
	_, err := NewReader().Read(itemsWorkbook(t), "Nope")
	assert.Error(t, err)
}

func TestReadMissingHeaders(t *testing.T) {
	path := writeWorkbook(t, "Items", [][]any{{"only one row"}})
	_, err := NewReader().Read(path, "Items")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header rows")
}

func TestReadBadDescriptor(t *testing.T) {
	path := writeWorkbook(t, "Items", [][]any{
		{""},
		{"ID"},
		{"decimal"},
	})
	_, err := NewReader().Read(path, "Items")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	src, err := NewReader().Preview(itemsWorkbook(t), "Items", 1)
	require.NoError(t, err)
	assert.Len(t, src.Rows, 1)
}

func TestSheetNames(t *testing.T) {
	names, err := NewReader().SheetNames(itemsWorkbook(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Items"}, names)
}

func TestValidateFormat(t *testing.T) {
	problems, err := NewReader().ValidateFormat(itemsWorkbook(t), "Items")
	require.NoError(t, err)
	assert.Empty(t, problems)

	path := writeWorkbook(t, "Bad", [][]any{
		{"", "", ""},
		{"ID", "ID", "Level"},
		{"int", "int"},
	})
	problems, err = NewReader().ValidateFormat(path, "Bad")
	require.NoError(t, err)
	assert.Contains(t, problems, `sheet Bad: duplicate column "ID"`)
	assert.Contains(t, problems, `sheet Bad: column "Level" has no type descriptor`)
}
