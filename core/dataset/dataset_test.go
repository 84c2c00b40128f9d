package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetOrder(t *testing.T) {
	ds := NewDataset("ID")
	ds.Put("b", map[string]any{"Name": "two"})
	ds.Put("a", map[string]any{"Name": "one"})
	ds.Put("c", map[string]any{"Name": "three"})

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"b", "a", "c"}, ds.Keys())

	records := ds.Records()
	assert.Equal(t, "b", records[0].Key)
	assert.Equal(t, "three", records[2].Fields["Name"])
}

func TestDatasetPutReplaces(t *testing.T) {
	ds := NewDataset("ID")
	ds.Put("a", map[string]any{"Name": "old"})
	ds.Put("b", map[string]any{"Name": "other"})
	ds.Put("a", map[string]any{"Name": "new"})

	assert.Equal(t, []string{"a", "b"}, ds.Keys())
	rec, ok := ds.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "new", rec["Name"])
}

func TestDatasetFields(t *testing.T) {
	ds := NewDataset("ID")
	ds.Put("a", map[string]any{"Z": 1, "A": 2})
	ds.Put("b", map[string]any{"M": 3})

	// Without an explicit order, fields come back sorted.
	assert.Equal(t, []string{"A", "M", "Z"}, ds.Fields())

	ds.SetFieldOrder([]string{"Z", "A", "M"})
	assert.Equal(t, []string{"Z", "A", "M"}, ds.Fields())
}
