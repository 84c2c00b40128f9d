// Package scope implements field visibility resolution.
//
// Every field carries a scope tag and every export targets one. The Matches
// predicate is the single source of truth for field inclusion: row
// projection and validation dispatch both consult it, so a field excluded
// from the output is never validated either.
package scope

// Recognized scope tags.
const (
	Server = "s"
	Client = "c"
	All    = "sc"
)

// Matches reports whether a field with fieldScope is included in an export
// targeting exportScope. An unrecognized export scope matches nothing.
func Matches(fieldScope, exportScope string) bool {
	switch exportScope {
	case All:
		return true
	case Server:
		return fieldScope == Server || fieldScope == All
	case Client:
		return fieldScope == Client || fieldScope == All
	default:
		return false
	}
}

// Valid reports whether s is a recognized scope tag.
func Valid(s string) bool {
	return s == Server || s == Client || s == All
}
