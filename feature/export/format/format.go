package format

import (
	"fmt"

	"sheetgen/core/dataset"
)

// Formatter renders a converted dataset into one output artifact.
type Formatter interface {
	// Name is the format's configuration name.
	Name() string
	// Extension is the output file extension, dot included.
	Extension() string
	// Format renders the dataset. exportName names the artifact in
	// formats that carry it (the Lua table comment, for one).
	Format(ds *dataset.Dataset, exportName string) ([]byte, error)
}

// New returns the formatter registered under name. Compact mode drops
// indentation and newlines where the format supports it.
func New(name string, compact bool) (Formatter, error) {
	switch name {
	case "lua":
		return &luaFormatter{compact: compact}, nil
	case "json", "json_map":
		return &jsonFormatter{style: styleMap, compact: compact}, nil
	case "json_array":
		return &jsonFormatter{style: styleArray, compact: compact}, nil
	case "json_packed":
		return &packedFormatter{compact: compact}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}

// Names returns the recognized format names.
func Names() []string {
	return []string{"lua", "json_map", "json_array", "json_packed"}
}

// OutputFilename returns the file name an export renders to.
func OutputFilename(f Formatter, exportName string) string {
	return exportName + f.Extension()
}

// recordFields returns a record's field names in dataset field order,
// keeping only fields the record actually carries.
func recordFields(ds *dataset.Dataset, fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for _, name := range ds.Fields() {
		if _, ok := fields[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
