// Package format renders converted datasets into the supported output
// formats: a Lua module, JSON keyed by primary key, a JSON array, and a
// columnar packed JSON form. All formats emit records in insertion order
// and sort nested object keys, so output is stable across runs.
package format
