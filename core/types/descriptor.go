package types

import (
	"fmt"
	"strings"
)

// Kind identifies the shape a descriptor converts to.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindArray
	KindObject
)

// String returns the descriptor spelling of a scalar kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Scalar reports whether the kind is one of the four scalar kinds.
func (k Kind) Scalar() bool {
	return k == KindInt || k == KindFloat || k == KindBool || k == KindString
}

// Descriptor is a parsed type descriptor. Exactly one of the composite
// fields is set: Elem for arrays, Schema for objects.
type Descriptor struct {
	Kind   Kind
	Elem   *Descriptor
	Schema string
}

// String renders the descriptor back to its textual form.
func (d Descriptor) String() string {
	switch d.Kind {
	case KindArray:
		return "array<" + d.Elem.String() + ">"
	case KindObject:
		return "object:" + d.Schema
	default:
		return d.Kind.String()
	}
}

var scalarKinds = map[string]Kind{
	"int":    KindInt,
	"float":  KindFloat,
	"bool":   KindBool,
	"string": KindString,
}

// Parse parses a type descriptor string into a Descriptor.
// Unknown or malformed descriptors fail; there is no string fallback.
func Parse(raw string) (Descriptor, error) {
	s := strings.TrimSpace(raw)

	if k, ok := scalarKinds[s]; ok {
		return Descriptor{Kind: k}, nil
	}

	if inner, ok := strings.CutPrefix(s, "array<"); ok {
		inner, ok = strings.CutSuffix(inner, ">")
		if !ok {
			return Descriptor{}, fmt.Errorf("malformed array descriptor %q: missing closing '>'", raw)
		}
		elem, err := Parse(inner)
		if err != nil {
			return Descriptor{}, fmt.Errorf("array element type: %w", err)
		}
		return Descriptor{Kind: KindArray, Elem: &elem}, nil
	}

	if name, ok := strings.CutPrefix(s, "object:"); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return Descriptor{}, fmt.Errorf("malformed object descriptor %q: empty schema name", raw)
		}
		return Descriptor{Kind: KindObject, Schema: name}, nil
	}

	return Descriptor{}, fmt.Errorf("unknown type descriptor %q", raw)
}

// Check parses a descriptor string and validates it against the schema
// lookup without converting any value. It returns one message per problem
// and is meant for configuration-time validation.
func Check(raw string, schemas SchemaLookup) []string {
	d, err := Parse(raw)
	if err != nil {
		return []string{err.Error()}
	}
	return checkDescriptor(d, schemas)
}

func checkDescriptor(d Descriptor, schemas SchemaLookup) []string {
	switch d.Kind {
	case KindArray:
		var errs []string
		for _, e := range checkDescriptor(*d.Elem, schemas) {
			errs = append(errs, "array element type: "+e)
		}
		return errs
	case KindObject:
		if schemas == nil {
			return []string{fmt.Sprintf("object schema %q cannot be resolved: no schema registry", d.Schema)}
		}
		if _, ok := schemas.Schema(d.Schema); !ok {
			return []string{fmt.Sprintf("object schema %q not found", d.Schema)}
		}
		return nil
	default:
		return nil
	}
}
