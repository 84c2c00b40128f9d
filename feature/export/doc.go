// Package export drives the conversion pipeline end to end: it reads the
// sources of a configured export, merges them, converts rows into typed
// records, runs the configured validators and writes the formatted output
// file.
package export
