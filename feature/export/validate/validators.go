package validate

import (
	"fmt"
	"regexp"

	"sheetgen/core/dataset"
)

func registerBuiltins(e *Engine) {
	e.Register("required", newRequired)
	e.Register("range", newRange)
	e.Register("length", newLength)
	e.Register("pattern", newPattern)
	e.Register("enum", newEnum)
	e.Register("array_length", newArrayLength)
	e.Register("unique", newUnique)
}

// paramNumber reads an optional numeric parameter. TOML integers decode as
// int64, floats as float64; both are accepted.
func paramNumber(params map[string]any, key string) (float64, bool, error) {
	raw, ok := params[key]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int64:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case float64:
		return v, true, nil
	default:
		return 0, false, fmt.Errorf("parameter %q: expected a number, got %T", key, raw)
	}
}

func asNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case int64:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// required

type required struct{}

func newRequired(map[string]any) (any, error) { return required{}, nil }

func (required) ValidateField(value any) error {
	switch v := value.(type) {
	case nil:
		return fmt.Errorf("value is required")
	case string:
		if v == "" {
			return fmt.Errorf("value is required")
		}
	case []any:
		if len(v) == 0 {
			return fmt.Errorf("value is required")
		}
	case map[string]any:
		if len(v) == 0 {
			return fmt.Errorf("value is required")
		}
	}
	return nil
}

// range

type numberRange struct {
	min, max       float64
	hasMin, hasMax bool
}

func newRange(params map[string]any) (any, error) {
	min, hasMin, err := paramNumber(params, "min")
	if err != nil {
		return nil, err
	}
	max, hasMax, err := paramNumber(params, "max")
	if err != nil {
		return nil, err
	}
	if !hasMin && !hasMax {
		return nil, fmt.Errorf("range requires min or max")
	}
	return numberRange{min: min, max: max, hasMin: hasMin, hasMax: hasMax}, nil
}

func (r numberRange) ValidateField(value any) error {
	if value == nil {
		return nil
	}
	n, ok := asNumber(value)
	if !ok {
		return fmt.Errorf("expected a number, got %T", value)
	}
	if r.hasMin && n < r.min {
		return fmt.Errorf("value %v below minimum %v", value, r.min)
	}
	if r.hasMax && n > r.max {
		return fmt.Errorf("value %v above maximum %v", value, r.max)
	}
	return nil
}

// length and array_length share the bounds check.

type lengthBounds struct {
	min, max       int
	hasMin, hasMax bool
}

func newBounds(params map[string]any) (lengthBounds, error) {
	min, hasMin, err := paramNumber(params, "min")
	if err != nil {
		return lengthBounds{}, err
	}
	max, hasMax, err := paramNumber(params, "max")
	if err != nil {
		return lengthBounds{}, err
	}
	if !hasMin && !hasMax {
		return lengthBounds{}, fmt.Errorf("requires min or max")
	}
	return lengthBounds{min: int(min), max: int(max), hasMin: hasMin, hasMax: hasMax}, nil
}

func (b lengthBounds) check(n int, unit string) error {
	if b.hasMin && n < b.min {
		return fmt.Errorf("%d %s, minimum is %d", n, unit, b.min)
	}
	if b.hasMax && n > b.max {
		return fmt.Errorf("%d %s, maximum is %d", n, unit, b.max)
	}
	return nil
}

type stringLength struct{ lengthBounds }

func newLength(params map[string]any) (any, error) {
	b, err := newBounds(params)
	if err != nil {
		return nil, fmt.Errorf("length %w", err)
	}
	return stringLength{b}, nil
}

func (l stringLength) ValidateField(value any) error {
	if value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", value)
	}
	return l.check(len([]rune(s)), "characters")
}

type arrayLength struct{ lengthBounds }

func newArrayLength(params map[string]any) (any, error) {
	b, err := newBounds(params)
	if err != nil {
		return nil, fmt.Errorf("array_length %w", err)
	}
	return arrayLength{b}, nil
}

func (l arrayLength) ValidateField(value any) error {
	if value == nil {
		return nil
	}
	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected an array, got %T", value)
	}
	return l.check(len(arr), "elements")
}

// pattern

type pattern struct {
	re *regexp.Regexp
}

func newPattern(params map[string]any) (any, error) {
	raw, ok := params["pattern"].(string)
	if !ok || raw == "" {
		return nil, fmt.Errorf("pattern requires a pattern parameter")
	}
	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return pattern{re: re}, nil
}

func (p pattern) ValidateField(value any) error {
	if value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", value)
	}
	if !p.re.MatchString(s) {
		return fmt.Errorf("value %q does not match %s", s, p.re)
	}
	return nil
}

// enum

type enum struct {
	allowed []any
}

func newEnum(params map[string]any) (any, error) {
	values, ok := params["values"].([]any)
	if !ok || len(values) == 0 {
		return nil, fmt.Errorf("enum requires a non-empty values parameter")
	}
	return enum{allowed: values}, nil
}

func (e enum) ValidateField(value any) error {
	if value == nil {
		return nil
	}
	for _, allowed := range e.allowed {
		if equalValue(value, allowed) {
			return nil
		}
	}
	return fmt.Errorf("value %v not in allowed set %v", value, e.allowed)
}

// equalValue compares loosely across numeric representations, since the
// config decoder and the converter may not agree on int64 versus float64.
func equalValue(a, b any) bool {
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return an == bn
		}
		return false
	}
	return a == b
}

// unique

type unique struct{}

func newUnique(map[string]any) (any, error) { return unique{}, nil }

func (unique) ValidateDataset(ds *dataset.Dataset, field string) []string {
	var problems []string
	firstSeen := make(map[string]string)
	for _, rec := range ds.Records() {
		value, ok := rec.Fields[field]
		if !ok || value == nil {
			continue
		}
		repr := fmt.Sprintf("%T:%v", value, value)
		if first, dup := firstSeen[repr]; dup {
			problems = append(problems, fmt.Sprintf(
				"row %s: field %q: duplicate value %v, first seen at row %s", rec.Key, field, value, first))
			continue
		}
		firstSeen[repr] = rec.Key
	}
	return problems
}
