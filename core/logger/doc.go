// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports console encoding for
// interactive CLI use and JSON encoding for CI pipelines.
//
// # Run correlation
//
// Conversion and publish runs are tagged with a run_id field via WithRunID,
// so all entries belonging to one run can be correlated in aggregated logs.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console (development) or json (production)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log)
//	log.Info("conversion started")
package logger
