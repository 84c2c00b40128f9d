// Package storage provides the S3/MinIO client used to publish generated
// data files to a bucket consumed by game servers and CDN origins.
//
// The Client interface is the narrow surface the publish feature needs;
// production code wraps minio-go, tests use the hand-written mock under
// storage/mocks.
package storage
