package dataset

import (
	"testing"

	"sheetgen/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeSources(t *testing.T) []*Source {
	t.Helper()
	columns := []Column{
		{Name: "ID", RawType: "int", Type: mustParse(t, "int"), Index: 0},
		{Name: "Name", RawType: "string", Type: mustParse(t, "string"), Index: 1},
	}
	return []*Source{
		{
			File: "a.xlsx", Sheet: "A", Columns: columns,
			Rows: []Row{{"ID": "1", "Name": "one"}, {"ID": "2", "Name": "two"}},
		},
		{
			File: "b.xlsx", Sheet: "B", Columns: columns,
			Rows: []Row{{"ID": "3", "Name": "three"}},
		},
	}
}

func TestMergeDisjoint(t *testing.T) {
	merged, stats, err := Merge(mergeSources(t), "ID")
	require.NoError(t, err)

	assert.Equal(t, "merged", merged.Sheet)
	assert.Len(t, merged.Rows, 3)
	assert.Equal(t, 2, stats.Sources)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, []string{"ID", "Name"}, stats.ColumnNames)
}

func TestMergeSingleSourcePassthrough(t *testing.T) {
	sources := mergeSources(t)[:1]
	merged, stats, err := Merge(sources, "ID")
	require.NoError(t, err)
	assert.Same(t, sources[0], merged)
	assert.Equal(t, 1, stats.Sources)
}

func TestMergeKeyConflict(t *testing.T) {
	sources := mergeSources(t)
	sources[1].Rows = append(sources[1].Rows, Row{"ID": "2", "Name": "dup"})

	_, _, err := Merge(sources, "ID")
	require.Error(t, err)

	var conflict *KeyConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "2", conflict.Key)
	assert.Equal(t, "b.xlsx", conflict.File)
	assert.Equal(t, 2, conflict.Row)
}

func TestMergeNoSources(t *testing.T) {
	_, _, err := Merge(nil, "ID")
	assert.Error(t, err)
}

func TestCheckCompatibility(t *testing.T) {
	sources := mergeSources(t)
	assert.Nil(t, CheckCompatibility(sources))

	// Divergent copy: wrong type on Name, missing ID, extra column.
	sources[1].Columns = []Column{
		{Name: "Name", RawType: "int", Type: mustParse(t, "int")},
		{Name: "Extra", RawType: "string", Type: mustParse(t, "string")},
	}

	err := CheckCompatibility(sources)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), `column "Name" declared int`)
	assert.Contains(t, err.Error(), `missing column "ID"`)
	assert.Contains(t, err.Error(), `extra column "Extra"`)
}

func TestAdvisoryProblemsHonorsOverrides(t *testing.T) {
	sources := mergeSources(t)
	sources[1].Columns = []Column{
		{Name: "ID", RawType: "int", Type: mustParse(t, "int")},
		{Name: "Name", RawType: "int", Type: mustParse(t, "int")},
	}

	exp := &config.Export{Fields: []config.Field{
		{Name: "ID"},
		{Name: "Name", Type: "string"},
	}}

	// The export overrides Name's type, so the disagreement is moot.
	assert.Empty(t, AdvisoryProblems(sources, exp))

	exp.Fields[1].Type = ""
	assert.Len(t, AdvisoryProblems(sources, exp), 1)
}
