package format

import (
	"encoding/json"
	"strings"
	"testing"

	"sheetgen/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *dataset.Dataset {
	ds := dataset.NewDataset("ID")
	ds.SetFieldOrder([]string{"ID", "Name", "Tags", "Stats"})
	ds.Put("1001", map[string]any{
		"ID":    int64(1001),
		"Name":  "测试剑",
		"Tags":  []any{"weapon", "melee"},
		"Stats": map[string]any{"Attack": int64(100), "Defense": int64(50)},
	})
	ds.Put("1002", map[string]any{
		"ID":    int64(1002),
		"Name":  "Shield",
		"Tags":  []any{},
		"Stats": map[string]any{},
	})
	return ds
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		f, err := New(name, false)
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	f, err := New("json", false)
	require.NoError(t, err)
	assert.Equal(t, "json_map", f.Name())

	_, err = New("yaml", false)
	assert.Error(t, err)
}

func TestLuaReadable(t *testing.T) {
	f, err := New("lua", false)
	require.NoError(t, err)

	out, err := f.Format(sampleDataset(), "items")
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "-- items\n"))
	assert.Contains(t, text, "[1001] = {")
	assert.Contains(t, text, `Name = "测试剑",`)
	assert.Contains(t, text, "Attack = 100,")
	assert.True(t, strings.HasSuffix(text, "}\n"))

	// Records keep insertion order.
	assert.Less(t, strings.Index(text, "[1001]"), strings.Index(text, "[1002]"))
}

func TestLuaCompact(t *testing.T) {
	f, err := New("lua", true)
	require.NoError(t, err)

	out, err := f.Format(sampleDataset(), "items")
	require.NoError(t, err)

	assert.NotContains(t, string(out), "\n")
	assert.True(t, strings.HasPrefix(string(out), "return {"))
}

func TestLuaNonIdentifierKeys(t *testing.T) {
	ds := dataset.NewDataset("ID")
	ds.Put("boss-1", map[string]any{"max hp": int64(50), "end": "x"})

	f, _ := New("lua", true)
	out, err := f.Format(ds, "bosses")
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `["boss-1"]`)
	assert.Contains(t, text, `["max hp"] = 50`)
	assert.Contains(t, text, `["end"] = "x"`)
}

func TestJSONMap(t *testing.T) {
	f, err := New("json_map", false)
	require.NoError(t, err)

	out, err := f.Format(sampleDataset(), "items")
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Contains(t, decoded, "1001")
	assert.Equal(t, "测试剑", decoded["1001"]["Name"])
	assert.Equal(t, float64(100), decoded["1001"]["Stats"].(map[string]any)["Attack"])

	// Field order follows first appearance, not alphabet.
	assert.Less(t, strings.Index(string(out), `"ID"`), strings.Index(string(out), `"Name"`))
}

func TestJSONArray(t *testing.T) {
	f, err := New("json_array", true)
	require.NoError(t, err)

	out, err := f.Format(sampleDataset(), "items")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "\n")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(1001), decoded[0]["ID"])
	assert.Equal(t, []any{}, decoded[1]["Tags"])
}

func TestJSONPacked(t *testing.T) {
	f, err := New("json_packed", true)
	require.NoError(t, err)

	out, err := f.Format(sampleDataset(), "items")
	require.NoError(t, err)

	var decoded struct {
		PrimaryKey string   `json:"primary_key"`
		Fields     []string `json:"fields"`
		Keys       []string `json:"keys"`
		Rows       [][]any  `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "ID", decoded.PrimaryKey)
	assert.Equal(t, []string{"1001", "1002"}, decoded.Keys)
	require.Len(t, decoded.Rows, 2)
	assert.Len(t, decoded.Rows[0], len(decoded.Fields))

	idx := -1
	for i, name := range decoded.Fields {
		if name == "Name" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "测试剑", decoded.Rows[0][idx])
}

func TestOutputFilename(t *testing.T) {
	lua, _ := New("lua", false)
	assert.Equal(t, "items.lua", OutputFilename(lua, "items"))

	packed, _ := New("json_packed", false)
	assert.Equal(t, "items.json", OutputFilename(packed, "items"))
}
