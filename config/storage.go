package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
	Region     string
	Endpoint   string
}

// NewS3Config initializes the S3 client from the default AWS credential chain.
// A custom endpoint switches to path-style addressing for S3-compatible stores.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Config{
		Client:     client,
		BucketName: cfg.S3BucketName,
		Region:     cfg.AWSRegion,
		Endpoint:   cfg.S3Endpoint,
	}, nil
}

// PublicURL returns the public URL of an object key.
func (s *S3Config) PublicURL(key string) string {
	if s.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.Endpoint, "/"), s.BucketName, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.BucketName, s.Region, key)
}

// KeyFromURL extracts the object key from a URL produced by PublicURL.
// It reports false for URLs that do not point into this bucket.
func (s *S3Config) KeyFromURL(url string) (string, bool) {
	if s.Endpoint != "" {
		prefix := fmt.Sprintf("%s/%s/", strings.TrimRight(s.Endpoint, "/"), s.BucketName)
		if key, ok := strings.CutPrefix(url, prefix); ok && key != "" {
			return key, true
		}
		return "", false
	}
	return KeyFromS3URL(url)
}

// KeyFromS3URL returns the part of an amazonaws URL after the host.
func KeyFromS3URL(url string) (string, bool) {
	_, key, found := strings.Cut(url, "amazonaws.com/")
	if !found || key == "" {
		return "", false
	}
	return key, true
}
