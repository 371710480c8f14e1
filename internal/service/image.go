package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/beginvegan/backend/config"
	"github.com/beginvegan/backend/internal/apperr"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	profileImageDir = "profile"
	reviewImageDir  = "review"

	maxImageBytes    = 10 << 20
	maxReviewImages  = 5
	imageConcurrency = 4
)

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
}

// ImageStore uploads user images and deletes them by URL.
type ImageStore interface {
	Upload(ctx context.Context, dir string, file *multipart.FileHeader) (string, error)
	// Delete removes the object behind url. URLs outside the store, such as
	// the default profile image, are ignored.
	Delete(ctx context.Context, url string) error
}

// S3ImageStore stores images in an S3 bucket with public-read URLs.
type S3ImageStore struct {
	s3 *config.S3Config
}

var _ ImageStore = (*S3ImageStore)(nil)

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3: s3Config}
}

// ValidateImage checks the size and extension of an uploaded image and
// returns its content type.
func ValidateImage(file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageBytes {
		return "", apperr.InvalidInput("image must be 10MB or smaller")
	}
	contentType, ok := allowedImageExt[strings.ToLower(filepath.Ext(file.Filename))]
	if !ok {
		return "", apperr.InvalidInput("unsupported image type")
	}
	return contentType, nil
}

// Upload stores file under dir with a random name and returns its URL.
func (s *S3ImageStore) Upload(ctx context.Context, dir string, file *multipart.FileHeader) (string, error) {
	contentType, err := ValidateImage(file)
	if err != nil {
		return "", err
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	key := fmt.Sprintf("%s/%s%s", dir, uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))
	_, err = s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.s3.BucketName),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", apperr.External("failed to upload image", err)
	}

	url := s.s3.PublicURL(key)
	log.Ctx(ctx).Debug().Str("key", key).Msg("uploaded image")
	return url, nil
}

func (s *S3ImageStore) Delete(ctx context.Context, url string) error {
	key, ok := s.s3.KeyFromURL(url)
	if !ok {
		return nil
	}
	_, err := s.s3.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperr.External("failed to delete image", err)
	}
	return nil
}

// uploadAll uploads files concurrently and returns their URLs in input
// order. If any upload fails the ones that succeeded are removed again.
func uploadAll(ctx context.Context, store ImageStore, dir string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	for _, f := range files {
		if _, err := ValidateImage(f); err != nil {
			return nil, err
		}
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageConcurrency)
	for i, f := range files {
		g.Go(func() error {
			url, err := store.Upload(gctx, dir, f)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var uploaded []string
		for _, u := range urls {
			if u != "" {
				uploaded = append(uploaded, u)
			}
		}
		if derr := deleteAll(context.WithoutCancel(ctx), store, uploaded); derr != nil {
			log.Ctx(ctx).Warn().Err(derr).Msg("failed to clean up partial upload")
		}
		return nil, err
	}
	return urls, nil
}

// deleteAll deletes urls concurrently and returns the first error.
func deleteAll(ctx context.Context, store ImageStore, urls []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageConcurrency)
	for _, u := range urls {
		g.Go(func() error {
			return store.Delete(gctx, u)
		})
	}
	return g.Wait()
}
