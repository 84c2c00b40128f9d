package publish

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"sheetgen/core/storage"
)

// Service uploads converted output files to object storage so game
// servers and build pipelines can fetch them.
type Service struct {
	client storage.Client
	bucket string
	log    *zap.Logger
}

// NewService returns a publisher targeting the given bucket.
func NewService(client storage.Client, bucket string, log *zap.Logger) *Service {
	return &Service{client: client, bucket: bucket, log: log}
}

// Summary describes one completed publish batch.
type Summary struct {
	// Batch is the unique id of this publish run.
	Batch string
	// Uploaded is the number of files uploaded.
	Uploaded int
	// Bytes is the total payload size.
	Bytes int64
}

// Publish uploads every file under dir to the bucket, keyed by prefix plus
// the file's path relative to dir. The bucket is created if missing.
func (s *Service) Publish(ctx context.Context, dir, prefix string) (*Summary, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		s.log.Info("created bucket", zap.String("bucket", s.bucket))
	}

	summary := &Summary{Batch: uuid.NewString()}

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		object := path.Join(prefix, filepath.ToSlash(rel))

		size, err := s.upload(ctx, p, object)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", object, err)
		}

		summary.Uploaded++
		summary.Bytes += size
		s.log.Debug("uploaded object",
			zap.String("bucket", s.bucket),
			zap.String("object", object),
			zap.Int64("size", size))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("publish complete",
		zap.String("batch", summary.Batch),
		zap.String("bucket", s.bucket),
		zap.Int("files", summary.Uploaded),
		zap.Int64("bytes", summary.Bytes))
	return summary, nil
}

// Prune removes objects under prefix that have no counterpart under dir,
// so deleted exports disappear from the bucket on the next publish.
func (s *Service) Prune(ctx context.Context, dir, prefix string) (int, error) {
	local := make(map[string]bool)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		local[path.Join(prefix, filepath.ToSlash(rel))] = true
		return nil
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return removed, fmt.Errorf("failed to list bucket %s: %w", s.bucket, obj.Err)
		}
		if local[obj.Key] {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", obj.Key, err)
		}
		removed++
		s.log.Debug("removed stale object",
			zap.String("bucket", s.bucket),
			zap.String("object", obj.Key))
	}

	if removed > 0 {
		s.log.Info("pruned stale objects",
			zap.String("bucket", s.bucket),
			zap.Int("removed", removed))
	}
	return removed, nil
}

func (s *Service) upload(ctx context.Context, filePath, object string) (int64, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	_, err = s.client.PutObject(ctx, s.bucket, object, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(filePath),
	})
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func contentType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return "application/json"
	case ".lua":
		return "text/x-lua"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
