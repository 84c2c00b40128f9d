// Package publish uploads converted output files to S3-compatible object
// storage. Each run gets a batch id so consumers can correlate uploads
// with pipeline runs.
package publish
