package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"sheetgen/core/database"
	"sheetgen/core/logger"
	"sheetgen/core/storage"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults holds the global fallback values applied to exports and object
// schemas at load time.
type Defaults struct {
	// Separator splits array cells and object segments.
	Separator string `mapstructure:"separator" default:","`
	// KeyValueSeparator splits key-value pairs inside object cells.
	KeyValueSeparator string `mapstructure:"key_value_separator" default:":"`
	// PrimaryKey is the field identifying a record when an export does not
	// declare its own.
	PrimaryKey string `mapstructure:"primary_key" default:"ID"`
	// StopOnValidationError aborts the run when a data validator fails.
	StopOnValidationError bool `mapstructure:"stop_on_validation_error" default:"true"`
}

// Input holds source and destination directories.
type Input struct {
	SourceDir   string `mapstructure:"source_dir" default:"./excel"`
	OutputDir   string `mapstructure:"output_dir" default:"./output"`
	FilePattern string `mapstructure:"file_pattern" default:"*.xlsx"`
}

// Output holds serialization settings.
type Output struct {
	// Format is the default output format (lua, json_map, json_array,
	// json_packed).
	Format   string `mapstructure:"format" default:"lua"`
	Encoding string `mapstructure:"encoding" default:"utf-8"`
}

// SchemaMember is one named, scalar-typed member of an object schema.
type SchemaMember struct {
	Key  string `mapstructure:"key"`
	Type string `mapstructure:"type"`
}

// ObjectSchema declares how a delimited cell decodes into a structured
// value.
type ObjectSchema struct {
	Description       string         `mapstructure:"description"`
	Separator         string         `mapstructure:"separator"`
	KeyValueSeparator string         `mapstructure:"key_value_separator"`
	Fields            []SchemaMember `mapstructure:"fields"`
}

// Source names one sheet of one workbook.
type Source struct {
	File  string `mapstructure:"file"`
	Sheet string `mapstructure:"sheet"`
}

// Field declares one exported field. Type, when set, overrides the type
// declared in the source sheet. A bare string in the config file is
// shorthand for a Field with only the name set.
type Field struct {
	Name      string `mapstructure:"name"`
	Type      string `mapstructure:"type"`
	Scope     string `mapstructure:"scope"`
	Separator string `mapstructure:"separator"`
}

// Validator binds a registered validator to a field with optional
// parameters.
type Validator struct {
	Field  string         `mapstructure:"field"`
	Name   string         `mapstructure:"name"`
	Params map[string]any `mapstructure:"params"`
}

// Export declares one output artifact built from one or more sources.
type Export struct {
	Sources    []Source    `mapstructure:"sources"`
	Scope      string      `mapstructure:"scope"`
	PrimaryKey string      `mapstructure:"primary_key"`
	Fields     []Field     `mapstructure:"fields"`
	Validators []Validator `mapstructure:"validators"`
}

// FieldByName returns the declared field with the given name, or nil if the
// export does not declare it.
func (e *Export) FieldByName(name string) *Field {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i]
		}
	}
	return nil
}

// Config is the central repository for all settings: conversion sections
// loaded from the TOML config file, infrastructure sections loaded from
// environment variables and .env.
type Config struct {
	Defaults      Defaults                `mapstructure:"defaults"`
	Input         Input                   `mapstructure:"input"`
	Output        Output                  `mapstructure:"output"`
	ObjectSchemas map[string]ObjectSchema `mapstructure:"object_schemas"`
	Exports       map[string]Export       `mapstructure:"exports"`

	// Storage holds credentials for the publish target (env-backed).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds the export sink connection (env-backed).
	Database database.Config `mapstructure:"database"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Serve holds the preview server settings.
	Serve Serve `mapstructure:"serve"`
}

// Serve holds configuration for the local preview server.
type Serve struct {
	Port int `mapstructure:"port" default:"8080"`
}

// ExportNames returns the configured export names in sorted order.
func (c *Config) ExportNames() []string {
	names := make([]string, 0, len(c.Exports))
	for name := range c.Exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads the TOML config file at path, layers environment variables
// (and a .env file, if present) on top, and resolves defaults.
func Load(path string) (*Config, error) {
	// Ignore error if .env doesn't exist (e.g. CI)
	_ = godotenv.Overload(".env")

	v := viper.New()
	v.SetConfigFile(path)

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. STORAGE_BUCKET ->
	// storage.bucket)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		fieldShorthandHook(),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.resolveDefaults()
	return &cfg, nil
}

// fieldShorthandHook lets an export list fields as bare strings, expanding
// "Name" to { name = "Name" }.
func fieldShorthandHook() mapstructure.DecodeHookFuncType {
	fieldType := reflect.TypeOf(Field{})
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to == fieldType && from.Kind() == reflect.String {
			return map[string]any{"name": data}, nil
		}
		return data, nil
	}
}

// bindValues uses reflection to iterate over the struct and set default
// values in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		switch field.Type.Kind() {
		case reflect.Struct:
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
		case reflect.Map, reflect.Slice:
			// No defaults for collection sections; the config file owns them.
		default:
			// Always set default (even if empty) to register the key for
			// AutomaticEnv
			v.SetDefault(key, field.Tag.Get("default"))
		}
	}
}

// resolveDefaults threads the [defaults] section into schemas, exports and
// fields so later stages never consult global state.
func (c *Config) resolveDefaults() {
	for name, schema := range c.ObjectSchemas {
		if schema.Separator == "" {
			schema.Separator = c.Defaults.Separator
		}
		if schema.KeyValueSeparator == "" {
			schema.KeyValueSeparator = c.Defaults.KeyValueSeparator
		}
		c.ObjectSchemas[name] = schema
	}

	for name, export := range c.Exports {
		if export.PrimaryKey == "" {
			export.PrimaryKey = c.Defaults.PrimaryKey
		}
		for i := range export.Fields {
			if export.Fields[i].Scope == "" {
				export.Fields[i].Scope = "sc"
			}
			if export.Fields[i].Separator == "" {
				export.Fields[i].Separator = c.Defaults.Separator
			}
		}
		c.Exports[name] = export
	}
}
