package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Scalars(t *testing.T) {
	for raw, kind := range map[string]Kind{
		"int":    KindInt,
		"float":  KindFloat,
		"bool":   KindBool,
		"string": KindString,
	} {
		d, err := Parse(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, kind, d.Kind)
		assert.Equal(t, raw, d.String())
	}
}

func TestParse_TrimsWhitespace(t *testing.T) {
	d, err := Parse("  int  ")
	require.NoError(t, err)
	assert.Equal(t, KindInt, d.Kind)
}

func TestParse_Array(t *testing.T) {
	d, err := Parse("array<int>")
	require.NoError(t, err)
	assert.Equal(t, KindArray, d.Kind)
	assert.Equal(t, KindInt, d.Elem.Kind)

	d, err = Parse("array<array<string>>")
	require.NoError(t, err)
	assert.Equal(t, KindArray, d.Kind)
	assert.Equal(t, KindArray, d.Elem.Kind)
	assert.Equal(t, KindString, d.Elem.Elem.Kind)
	assert.Equal(t, "array<array<string>>", d.String())
}

func TestParse_Object(t *testing.T) {
	d, err := Parse("object:Stats")
	require.NoError(t, err)
	assert.Equal(t, KindObject, d.Kind)
	assert.Equal(t, "Stats", d.Schema)
	assert.Equal(t, "object:Stats", d.String())
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{"", "date", "array<>", "array<int", "object:", "array<wat>"} {
		_, err := Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestCheck(t *testing.T) {
	reg := lookup{"Stats": statsSchema()}

	assert.Empty(t, Check("int", reg))
	assert.Empty(t, Check("array<object:Stats>", reg))

	errs := Check("object:Missing", reg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Missing")

	errs = Check("array<object:Missing>", reg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "array element type")

	assert.NotEmpty(t, Check("timestamp", reg))
}
