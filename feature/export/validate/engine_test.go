package validate

import (
	"fmt"
	"testing"

	"sheetgen/core/config"
	"sheetgen/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *dataset.Dataset {
	ds := dataset.NewDataset("ID")
	ds.SetFieldOrder([]string{"ID", "Name", "Level", "Rarity", "Tags"})
	ds.Put("1", map[string]any{
		"ID": int64(1), "Name": "Sword", "Level": int64(10),
		"Rarity": "rare", "Tags": []any{"weapon"},
	})
	ds.Put("2", map[string]any{
		"ID": int64(2), "Name": "", "Level": int64(200),
		"Rarity": "mythic", "Tags": []any{},
	})
	ds.Put("3", map[string]any{
		"ID": int64(3), "Name": "Sword", "Level": nil,
		"Rarity": "common", "Tags": []any{"a", "b", "c", "d"},
	})
	return ds
}

func exportWith(validators ...config.Validator) *config.Export {
	return &config.Export{PrimaryKey: "ID", Validators: validators}
}

func TestValidateRequired(t *testing.T) {
	problems, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "Name", Name: "required"},
	))
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], `row 2: field "Name"`)
}

func TestValidateRange(t *testing.T) {
	problems, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "Level", Name: "range", Params: map[string]any{"min": int64(1), "max": int64(100)}},
	))
	require.NoError(t, err)
	// Row 2 exceeds the maximum; the nil value in row 3 passes.
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "row 2")
	assert.Contains(t, problems[0], "above maximum")
}

func TestValidateLengthAndPattern(t *testing.T) {
	problems, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "Name", Name: "length", Params: map[string]any{"min": int64(1)}},
		config.Validator{Field: "Rarity", Name: "pattern", Params: map[string]any{"pattern": "^(common|rare|epic)$"}},
	))
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], `row 2: field "Name"`)
	assert.Contains(t, problems[1], `"mythic" does not match`)
}

func TestValidateEnum(t *testing.T) {
	problems, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "Rarity", Name: "enum", Params: map[string]any{"values": []any{"common", "rare", "epic"}}},
	))
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "mythic")
}

func TestValidateArrayLength(t *testing.T) {
	problems, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "Tags", Name: "array_length", Params: map[string]any{"max": int64(3)}},
	))
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "row 3")
}

func TestValidateUnique(t *testing.T) {
	problems, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "Name", Name: "unique"},
	))
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], `row 3: field "Name": duplicate value Sword, first seen at row 1`)
}

func TestValidateSkipsAbsentFields(t *testing.T) {
	// A validator bound to a field the dataset does not carry (excluded by
	// scope, for one) is skipped rather than failing every row.
	problems, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "ServerOnly", Name: "required"},
	))
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestValidateUnknownValidator(t *testing.T) {
	_, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "Name", Name: "nope"},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown validator "nope"`)
}

func TestValidateBadParams(t *testing.T) {
	_, err := NewEngine().Validate(testDataset(), exportWith(
		config.Validator{Field: "Level", Name: "range"},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range requires min or max")
}

type evenLevels struct{}

func (evenLevels) ValidateRow(key string, fields map[string]any) error {
	if lvl, ok := fields["Level"].(int64); ok && lvl%2 != 0 {
		return fmt.Errorf("level %d is odd", lvl)
	}
	return nil
}

func TestValidateCustomRowValidator(t *testing.T) {
	e := NewEngine()
	e.Register("even_levels", func(map[string]any) (any, error) {
		return evenLevels{}, nil
	})

	ds := dataset.NewDataset("ID")
	ds.SetFieldOrder([]string{"ID", "Level"})
	ds.Put("1", map[string]any{"ID": int64(1), "Level": int64(3)})

	problems, err := e.Validate(ds, exportWith(
		config.Validator{Field: "Level", Name: "even_levels"},
	))
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "row 1: level 3 is odd", problems[0])
}
