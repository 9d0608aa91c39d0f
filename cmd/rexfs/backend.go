package main

import (
	"context"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/rexfs"
	"github.com/hupe1980/rexfs/internal/config"
	"github.com/hupe1980/rexfs/localfs"
	"github.com/hupe1980/rexfs/objectfs/minio"
	"github.com/hupe1980/rexfs/objectfs/s3"
)

func openBackend(ctx context.Context, name string, b config.Backend, logger *rexfs.Logger) (rexfs.FileSystem, error) {
	switch b.Type {
	case config.TypeMinIO:
		client, err := miniogo.New(b.Endpoint, &miniogo.Options{
			Creds:  credentials.NewStaticV4(b.AccessKey, b.SecretKey, ""),
			Secure: b.Secure,
			Region: b.Region,
		})
		if err != nil {
			return nil, err
		}
		return minio.New(client, b.Bucket,
			minio.WithPrefix(b.Prefix),
			minio.WithLogger(logger),
		), nil

	case config.TypeS3:
		client, err := s3.NewClient(ctx, s3.ClientConfig{
			Region:       b.Region,
			Endpoint:     b.Endpoint,
			UsePathStyle: b.PathStyle,
			AccessKey:    b.AccessKey,
			SecretKey:    b.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		optFns := []s3.Option{
			s3.WithPrefix(b.Prefix),
			s3.WithLogger(logger),
		}
		if b.ExclusiveCreate {
			optFns = append(optFns, s3.WithExclusiveCreate())
		}
		return s3.New(client, b.Bucket, optFns...), nil

	default:
		return localfs.New(b.Root), nil
	}
}
