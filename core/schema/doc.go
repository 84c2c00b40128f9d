// Package schema turns configured object schema declarations into the
// resolved form the converter consumes, checking them for structural
// problems along the way.
package schema
