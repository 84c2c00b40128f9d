// Package dataset holds the conversion pipeline's data model and the two
// stages that operate on it: the processor, which turns raw sheet rows
// into typed records keyed by primary key, and the merger, which combines
// the sources of a multi-source export into one virtual source.
package dataset
