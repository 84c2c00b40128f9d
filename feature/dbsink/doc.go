// Package dbsink persists converted datasets into MySQL so game servers
// can query exported records without parsing output files.
package dbsink
