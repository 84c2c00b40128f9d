// Package types implements the type system that turns raw spreadsheet cell
// values into typed values.
//
// A type descriptor string ("int", "array<float>", "object:Stats", ...) is
// parsed once into a Descriptor variant; conversion then dispatches on the
// variant instead of re-parsing the string for every cell.
//
// # Supported descriptors
//
//   - Scalars: int, float, bool, string
//   - Arrays: array<T> where T is any descriptor (nesting allowed)
//   - Objects: object:<name>, resolved against a schema registry
//
// Unknown descriptors are a parse-time error. Boolean conversion is total:
// a fixed affirmative vocabulary maps to true, everything else to false.
//
// # Usage
//
//	d, err := types.Parse("array<object:Stats>")
//	conv := types.NewConverter(registry)
//	v, err := conv.Convert("Attributes", "Attack:100,Defense:50", d, ",")
package types
