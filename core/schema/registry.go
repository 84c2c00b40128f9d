package schema

import (
	"fmt"
	"sort"

	"sheetgen/core/config"
	"sheetgen/core/types"
)

// Registry holds the object schemas declared in the configuration and
// resolves them by name during conversion.
type Registry struct {
	schemas map[string]*types.ObjectSchema
}

// NewRegistry builds a registry from the configured schema declarations.
// Structural problems (duplicate or empty member keys, non-scalar member
// types, empty separators) are collected and returned alongside the
// registry; a registry with problems should not be used for conversion.
func NewRegistry(declared map[string]config.ObjectSchema) (*Registry, []string) {
	var problems []string
	schemas := make(map[string]*types.ObjectSchema, len(declared))

	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		decl := declared[name]

		if name == "" {
			problems = append(problems, "object schema with empty name")
			continue
		}
		if len(decl.Fields) == 0 {
			problems = append(problems, fmt.Sprintf("object schema %q: no fields", name))
			continue
		}
		if decl.Separator == "" {
			problems = append(problems, fmt.Sprintf("object schema %q: empty separator", name))
		}
		if decl.KeyValueSeparator == "" {
			problems = append(problems, fmt.Sprintf("object schema %q: empty key-value separator", name))
		}

		members := make([]types.Member, 0, len(decl.Fields))
		seen := make(map[string]bool)
		for _, field := range decl.Fields {
			if field.Key == "" {
				problems = append(problems, fmt.Sprintf("object schema %q: member with empty key", name))
				continue
			}
			if seen[field.Key] {
				problems = append(problems, fmt.Sprintf("object schema %q: duplicate member %q", name, field.Key))
				continue
			}
			seen[field.Key] = true

			desc, err := types.Parse(field.Type)
			if err != nil {
				problems = append(problems, fmt.Sprintf("object schema %q: member %q: %v", name, field.Key, err))
				continue
			}
			if !desc.Kind.Scalar() {
				problems = append(problems, fmt.Sprintf("object schema %q: member %q: type %s is not scalar", name, field.Key, desc))
				continue
			}
			members = append(members, types.Member{Key: field.Key, Type: desc.Kind})
		}

		schemas[name] = &types.ObjectSchema{
			Name:              name,
			Description:       decl.Description,
			Separator:         decl.Separator,
			KeyValueSeparator: decl.KeyValueSeparator,
			Members:           members,
		}
	}

	return &Registry{schemas: schemas}, problems
}

// Schema returns the schema registered under name.
func (r *Registry) Schema(name string) (*types.ObjectSchema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns the registered schema names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
