package types

import "fmt"

// ConversionError reports a single value that failed to convert to its
// declared type. It always names the field, the offending raw value, and
// the target type or schema so the spreadsheet author can find the cell.
type ConversionError struct {
	Field  string
	Value  any
	Target string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("field %q: cannot convert %q to %s: %s", e.Field, fmt.Sprint(e.Value), e.Target, e.Reason)
}

func convErr(field string, value any, target, format string, args ...any) *ConversionError {
	return &ConversionError{
		Field:  field,
		Value:  value,
		Target: target,
		Reason: fmt.Sprintf(format, args...),
	}
}
