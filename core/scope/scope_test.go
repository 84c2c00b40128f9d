package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches_TruthTable(t *testing.T) {
	cases := []struct {
		field, export string
		want          bool
	}{
		{"s", "s", true},
		{"c", "s", false},
		{"sc", "s", true},
		{"s", "c", false},
		{"c", "c", true},
		{"sc", "c", true},
		{"s", "sc", true},
		{"c", "sc", true},
		{"sc", "sc", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Matches(tc.field, tc.export), "field=%s export=%s", tc.field, tc.export)
	}
}

func TestMatches_UnknownExportScopeMatchesNothing(t *testing.T) {
	for _, field := range []string{"s", "c", "sc", "x", ""} {
		assert.False(t, Matches(field, "server"))
		assert.False(t, Matches(field, ""))
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("s"))
	assert.True(t, Valid("c"))
	assert.True(t, Valid("sc"))
	assert.False(t, Valid("cs"))
	assert.False(t, Valid(""))
}
