package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[defaults]
separator = ","
primary_key = "ID"

[input]
source_dir = "./sheets"

[object_schemas.Stats]
description = "combat stats"

[[object_schemas.Stats.fields]]
key = "Attack"
type = "int"

[[object_schemas.Stats.fields]]
key = "Defense"
type = "int"

[exports.items]
scope = "c"
fields = [
    "Name",
    { name = "Tags", type = "array<string>", separator = "|" },
    { name = "SecretCost", scope = "s" },
]

[[exports.items.sources]]
file = "items.xlsx"
sheet = "Items"

[[exports.items.validators]]
field = "Name"
name = "required"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResolvesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, ",", cfg.Defaults.Separator)
	assert.Equal(t, ":", cfg.Defaults.KeyValueSeparator)
	assert.Equal(t, "./sheets", cfg.Input.SourceDir)
	assert.Equal(t, "./output", cfg.Input.OutputDir)
	assert.Equal(t, "lua", cfg.Output.Format)

	stats := cfg.ObjectSchemas["Stats"]
	assert.Equal(t, ",", stats.Separator)
	assert.Equal(t, ":", stats.KeyValueSeparator)
	require.Len(t, stats.Fields, 2)
	assert.Equal(t, "Attack", stats.Fields[0].Key)

	items := cfg.Exports["items"]
	assert.Equal(t, "ID", items.PrimaryKey)
	assert.Equal(t, "c", items.Scope)
}

func TestLoadFieldShorthand(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	items := cfg.Exports["items"]
	require.Len(t, items.Fields, 3)

	name := items.FieldByName("Name")
	require.NotNil(t, name)
	assert.Equal(t, "sc", name.Scope)
	assert.Equal(t, ",", name.Separator)
	assert.Empty(t, name.Type)

	tags := items.FieldByName("Tags")
	require.NotNil(t, tags)
	assert.Equal(t, "array<string>", tags.Type)
	assert.Equal(t, "|", tags.Separator)

	secret := items.FieldByName("SecretCost")
	require.NotNil(t, secret)
	assert.Equal(t, "s", secret.Scope)

	assert.Nil(t, items.FieldByName("Missing"))
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STORAGE_BUCKET", "override-bucket")
	t.Setenv("SERVE_PORT", "9090")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "override-bucket", cfg.Storage.Bucket)
	assert.Equal(t, 9090, cfg.Serve.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Empty(t, cfg.Validate())
}

func TestValidateReportsProblems(t *testing.T) {
	const broken = `
[exports.bad]
scope = "x"
fields = [
    "Name",
    "Name",
]

[[exports.bad.validators]]
name = "required"
`
	cfg, err := Load(writeConfig(t, broken))
	require.NoError(t, err)

	problems := cfg.Validate()
	assert.Contains(t, problems, `export "bad": no sources configured`)
	assert.Contains(t, problems, `export "bad": invalid scope "x"`)
	assert.Contains(t, problems, `export "bad": duplicate field "Name"`)
	assert.Contains(t, problems, `export "bad": validator "required" bound to no field`)
}

func TestValidateNoExports(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[defaults]\n"))
	require.NoError(t, err)
	assert.Contains(t, cfg.Validate(), "no exports configured")
}
