package minio

import (
	"context"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/rexfs"
	"github.com/hupe1980/rexfs/objectfs"
)

// FS implements rexfs.FileSystem for MinIO and S3-compatible storage.
//
// Create overwrites existing objects, like the local backend.
type FS struct {
	client  *minio.Client
	bucket  string
	prefix  string
	retries uint64
	logger  *rexfs.Logger
}

var _ rexfs.FileSystem = (*FS)(nil)

// Option configures an FS.
type Option func(*FS)

// WithPrefix prepends prefix to every object key (e.g. "dumps/").
func WithPrefix(prefix string) Option {
	return func(s *FS) {
		s.prefix = prefix
	}
}

// WithStatRetries sets how many times a failed stat is retried before Open
// gives up. Missing objects are never retried. Default: 3.
func WithStatRetries(n uint64) Option {
	return func(s *FS) {
		s.retries = n
	}
}

// WithLogger configures structured logging.
func WithLogger(logger *rexfs.Logger) Option {
	return func(s *FS) {
		if logger == nil {
			logger = rexfs.NoopLogger()
		}
		s.logger = logger
	}
}

// New creates a new MinIO file system over bucket.
func New(client *minio.Client, bucket string, optFns ...Option) *FS {
	s := &FS{
		client:  client,
		bucket:  bucket,
		retries: 3,
		logger:  rexfs.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(s)
	}
	s.logger = s.logger.WithBackend("minio")
	return s
}

func (s *FS) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open stats the object and streams it.
func (s *FS) Open(name string) (rexfs.File, error) {
	ctx := context.Background()
	key := s.key(name)

	op := func() error {
		_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
		if err != nil && isNotFound(err) {
			return backoff.Permanent(&fs.PathError{Op: "open", Path: name, Err: rexfs.ErrNotFound})
		}
		return err
	}
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(50*time.Millisecond),
	), s.retries)

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		s.logger.LogOpen(ctx, name, err)
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	s.logger.LogOpen(ctx, name, err)
	if err != nil {
		return nil, err
	}
	return objectfs.NewReader(name, obj), nil
}

// Create streams writes into a PutObject. The object appears on Close, and
// the upload outcome is logged once it is known.
func (s *FS) Create(name string) (rexfs.File, error) {
	key := s.key(name)

	return objectfs.NewWriter(name, func(body io.Reader) error {
		_, err := s.client.PutObject(context.Background(), s.bucket, key, body, -1, minio.PutObjectOptions{})
		s.logger.LogCreate(context.Background(), name, err)
		return err
	}), nil
}

// Remove deletes an object. Missing objects are not an error.
func (s *FS) Remove(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func isNotFound(err error) bool {
	errResp := minio.ToErrorResponse(err)
	return errResp.Code == "NoSuchKey" || errResp.Code == "NotFound"
}
