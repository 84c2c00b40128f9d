package types

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSeparator splits array cells when the field declares no separator.
const DefaultSeparator = ","

// affirmative is the fixed vocabulary that maps to true. Anything else is
// false; boolean conversion never fails.
var affirmative = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"on":   true,
	"是":    true,
	"真":    true,
}

// Converter applies parsed descriptors to raw cell values. It is stateless
// apart from the read-only schema lookup and safe for concurrent use.
type Converter struct {
	schemas SchemaLookup
}

// NewConverter creates a converter resolving object schemas via schemas.
func NewConverter(schemas SchemaLookup) *Converter {
	return &Converter{schemas: schemas}
}

// Convert converts a raw value according to d. Absent values (nil or blank
// text) convert to nil for scalars, an empty slice for arrays, and an empty
// map for objects. The field name is carried into error messages only.
func (c *Converter) Convert(field string, value any, d Descriptor, sep string) (any, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	if absent(value) {
		switch d.Kind {
		case KindArray:
			return []any{}, nil
		case KindObject:
			return map[string]any{}, nil
		default:
			return nil, nil
		}
	}

	switch d.Kind {
	case KindInt:
		return toInt(field, value)
	case KindFloat:
		return toFloat(field, value)
	case KindBool:
		return toBool(value), nil
	case KindString:
		return strings.TrimSpace(stringify(value)), nil
	case KindArray:
		return c.convertArray(field, value, d, sep)
	case KindObject:
		return c.convertObject(field, value, d.Schema)
	default:
		return nil, convErr(field, value, d.String(), "invalid descriptor")
	}
}

func (c *Converter) convertArray(field string, value any, d Descriptor, sep string) ([]any, error) {
	// Already a sequence: convert element-wise.
	if seq, ok := value.([]any); ok {
		out := make([]any, 0, len(seq))
		for i, item := range seq {
			v, err := c.Convert(fmt.Sprintf("%s[%d]", field, i), item, *d.Elem, sep)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	s := strings.TrimSpace(stringify(value))
	if s == "" {
		return []any{}, nil
	}

	out := []any{}
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := c.Convert(field, part, *d.Elem, sep)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Converter) convertObject(field string, value any, name string) (map[string]any, error) {
	if c.schemas == nil {
		return nil, convErr(field, value, "object:"+name, "no schema registry configured")
	}
	schema, ok := c.schemas.Schema(name)
	if !ok {
		return nil, convErr(field, value, "object:"+name, "unknown object schema")
	}

	s := strings.TrimSpace(stringify(value))
	if s == "" {
		return map[string]any{}, nil
	}

	// The key-value separator anywhere in the cell selects key-value
	// notation; otherwise segments are assigned to members by position.
	if strings.Contains(s, schema.KeyValueSeparator) {
		return c.parseKeyValue(field, s, schema)
	}
	return c.parsePositional(field, s, schema)
}

func (c *Converter) parsePositional(field, s string, schema *ObjectSchema) (map[string]any, error) {
	parts := strings.Split(s, schema.Separator)
	result := make(map[string]any, len(schema.Members))

	// Extra segments beyond the declared members are ignored; missing
	// trailing segments leave their members absent.
	for i, m := range schema.Members {
		if i >= len(parts) {
			break
		}
		part := strings.TrimSpace(parts[i])
		if part == "" {
			continue
		}
		v, err := c.Convert(field+"."+m.Key, part, Descriptor{Kind: m.Type}, schema.Separator)
		if err != nil {
			return nil, err
		}
		result[m.Key] = v
	}
	return result, nil
}

func (c *Converter) parseKeyValue(field, s string, schema *ObjectSchema) (map[string]any, error) {
	result := make(map[string]any, len(schema.Members))

	for _, pair := range strings.Split(s, schema.Separator) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, val, found := strings.Cut(pair, schema.KeyValueSeparator)
		if !found {
			return nil, convErr(field, s, "object:"+schema.Name,
				"malformed pair %q, expected key%svalue", pair, schema.KeyValueSeparator)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		kind, ok := schema.MemberType(key)
		if !ok {
			return nil, convErr(field, s, "object:"+schema.Name, "unknown member key %q", key)
		}
		v, err := c.Convert(field+"."+key, val, Descriptor{Kind: kind}, schema.Separator)
		if err != nil {
			return nil, err
		}
		result[key] = v
	}
	return result, nil
}

// toInt truncates floating-point sources; it does not round.
func toInt(field string, value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	s := strings.TrimSpace(stringify(value))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, convErr(field, value, "int", "not an integer")
	}
	return n, nil
}

func toFloat(field string, value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	}
	s := strings.TrimSpace(stringify(value))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, convErr(field, value, "float", "not a number")
	}
	return f, nil
}

func toBool(value any) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	s := strings.ToLower(strings.TrimSpace(stringify(value)))
	return affirmative[s]
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func absent(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
