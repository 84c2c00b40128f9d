package config

import (
	"fmt"

	"sheetgen/core/scope"
)

// Validate performs structural checks on the loaded configuration and
// returns a list of human-readable problems. An empty list means the
// configuration is usable. Schema member types and field type descriptors
// are checked separately once the schema registry is built.
func (c *Config) Validate() []string {
	var problems []string

	if len(c.Exports) == 0 {
		problems = append(problems, "no exports configured")
	}

	for _, name := range c.ExportNames() {
		export := c.Exports[name]

		if len(export.Sources) == 0 {
			problems = append(problems, fmt.Sprintf("export %q: no sources configured", name))
		}
		for i, src := range export.Sources {
			if src.File == "" {
				problems = append(problems, fmt.Sprintf("export %q: source %d has no file", name, i))
			}
			if src.Sheet == "" {
				problems = append(problems, fmt.Sprintf("export %q: source %d has no sheet", name, i))
			}
		}

		if export.Scope != "" && !scope.Valid(export.Scope) {
			problems = append(problems, fmt.Sprintf("export %q: invalid scope %q", name, export.Scope))
		}
		if export.PrimaryKey == "" {
			problems = append(problems, fmt.Sprintf("export %q: empty primary key", name))
		}

		seen := make(map[string]bool)
		for _, field := range export.Fields {
			if field.Name == "" {
				problems = append(problems, fmt.Sprintf("export %q: field with empty name", name))
				continue
			}
			if seen[field.Name] {
				problems = append(problems, fmt.Sprintf("export %q: duplicate field %q", name, field.Name))
			}
			seen[field.Name] = true
			if !scope.Valid(field.Scope) {
				problems = append(problems, fmt.Sprintf("export %q: field %q has invalid scope %q", name, field.Name, field.Scope))
			}
		}

		for _, val := range export.Validators {
			if val.Name == "" {
				problems = append(problems, fmt.Sprintf("export %q: validator with empty name", name))
			}
			if val.Field == "" {
				problems = append(problems, fmt.Sprintf("export %q: validator %q bound to no field", name, val.Name))
			}
		}
	}

	return problems
}
