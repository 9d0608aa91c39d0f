package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ClientConfig describes how to reach an S3 endpoint.
// Zero values fall back to the default AWS credential and region chain.
type ClientConfig struct {
	Region string
	// Endpoint overrides the service endpoint (S3-compatible stores, localstack).
	Endpoint string
	// UsePathStyle addresses buckets as path segments instead of subdomains.
	UsePathStyle bool
	// AccessKey and SecretKey select static credentials when both are set.
	AccessKey string
	SecretKey string
}

// NewClient builds an *s3.Client from the default AWS config chain plus cfg.
func NewClient(ctx context.Context, cfg ClientConfig) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}
