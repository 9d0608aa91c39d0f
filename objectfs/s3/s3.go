package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/hupe1980/rexfs"
	"github.com/hupe1980/rexfs/objectfs"
)

// Client is the subset of *s3.Client used by FS.
type Client interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ Client = (*s3.Client)(nil)

// FS implements rexfs.FileSystem for Amazon S3.
//
// By default Create overwrites, like the local backend. WithExclusiveCreate
// switches to conditional writes that fail with rexfs.ErrExist instead.
type FS struct {
	client    Client
	bucket    string
	prefix    string
	exclusive bool
	upload    UploadConfig
	uploader  *manager.Uploader
	logger    *rexfs.Logger
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

// WithExclusiveCreate makes Create fail with rexfs.ErrExist when the key is
// taken, using S3 conditional writes (If-None-Match: *).
//
// The conflict is only known once the upload completes, so the error is
// returned by Close, not by Create. Exclusive uploads are buffered in memory
// and sent as a single PutObject.
func WithExclusiveCreate() Option {
	return func(s *FS) {
		s.exclusive = true
	}
}

// WithUploadConfig overrides DefaultUploadConfig.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(s *FS) {
		s.upload = cfg
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

// New creates a new S3 file system over bucket.
func New(client Client, bucket string, optFns ...Option) *FS {
	s := &FS{
		client: client,
		bucket: bucket,
		upload: DefaultUploadConfig(),
		logger: rexfs.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(s)
	}
	s.uploader = s.upload.newUploader(client)
	s.logger = s.logger.WithBackend("s3")
	return s
}

func (s *FS) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open streams the object.
func (s *FS) Open(name string) (rexfs.File, error) {
	ctx := context.Background()

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			err = &fs.PathError{Op: "open", Path: name, Err: rexfs.ErrNotFound}
		}
		s.logger.LogOpen(ctx, name, err)
		return nil, err
	}

	s.logger.LogOpen(ctx, name, nil)
	return objectfs.NewReader(name, resp.Body), nil
}

// Create streams writes into an upload. The object appears on Close, and
// the upload outcome is logged once it is known.
func (s *FS) Create(name string) (rexfs.File, error) {
	key := s.key(name)

	return objectfs.NewWriter(name, func(body io.Reader) error {
		var err error
		if s.exclusive {
			err = s.putIfAbsent(name, key, body)
		} else {
			_, err = s.uploader.Upload(context.Background(), &s3.PutObjectInput{
				Bucket:            aws.String(s.bucket),
				Key:               aws.String(key),
				Body:              body,
				ChecksumAlgorithm: s.upload.checksumAlgorithm(),
			})
		}
		s.logger.LogCreate(context.Background(), name, err)
		return err
	}), nil
}

func (s *FS) putIfAbsent(name, key string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		IfNoneMatch:   aws.String("*"),
	}
	if s.upload.EnableChecksum {
		input.ChecksumCRC32C = aws.String(crc32c(data))
	}

	_, err = s.client.PutObject(context.Background(), input)
	if err != nil && isPreconditionFailed(err) {
		return &fs.PathError{Op: "create", Path: name, Err: rexfs.ErrExist}
	}
	return err
}

// Remove deletes an object.
func (s *FS) Remove(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}

// isPreconditionFailed reports a lost conditional write: 412 when the key
// exists, 409 when a concurrent conditional write won.
func isPreconditionFailed(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}
	var re *smithyhttp.ResponseError
	if errors.As(err, &re) {
		code := re.HTTPStatusCode()
		return code == http.StatusPreconditionFailed || code == http.StatusConflict
	}
	return false
}
