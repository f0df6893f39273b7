package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3StorageService implements StorageService on an S3 bucket.
type S3StorageService struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// NewS3StorageService loads the default AWS credential chain for region.
func NewS3StorageService(ctx context.Context, region, bucket string) (*S3StorageService, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket not set in configuration")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3StorageService{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}, nil
}

func (s *S3StorageService) Backend() string { return "s3" }

func (s *S3StorageService) UploadFile(ctx context.Context, r io.Reader, size int64, name, contentType, destFolder string) (string, error) {
	key := path.Join(destFolder, uuid.New().String()+"-"+path.Base(name))
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("S3StorageService: failed to upload file: %w", err)
	}
	return key, nil
}

func (s *S3StorageService) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("S3StorageService: failed to delete file: %w", err)
	}
	return nil
}

// GetDownloadURL presigns a GET for the object.
func (s *S3StorageService) GetDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) { o.Expires = expires })
	if err != nil {
		return "", fmt.Errorf("S3StorageService: presign failed: %w", err)
	}
	return req.URL, nil
}

func (s *S3StorageService) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("S3StorageService: failed to get object: %w", err)
	}
	return out.Body, nil
}
