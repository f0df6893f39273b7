package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// FirebaseStorageService implements StorageService using a Firebase Storage bucket.
type FirebaseStorageService struct {
	client     *storage.Client
	bucketName string
}

// NewFirebaseStorageService creates a new FirebaseStorageService.
func NewFirebaseStorageService(ctx context.Context, serviceAccountJSONPath, bucketName string) (*FirebaseStorageService, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("firebase bucket not set in configuration")
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(serviceAccountJSONPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &FirebaseStorageService{client: client, bucketName: bucketName}, nil
}

func (s *FirebaseStorageService) Backend() string { return "firebase" }

func (s *FirebaseStorageService) UploadFile(ctx context.Context, r io.Reader, size int64, name, contentType, destFolder string) (string, error) {
	objectPath := path.Join(destFolder, uuid.New().String()+"-"+path.Base(name))
	w := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	w.ObjectAttrs.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return objectPath, nil
}

// DeleteFile deletes an object from the bucket.
func (s *FirebaseStorageService) DeleteFile(ctx context.Context, key string) error {
	if err := s.client.Bucket(s.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetDownloadURL returns a V4 signed URL valid for the specified duration.
func (s *FirebaseStorageService) GetDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	url, err := s.client.Bucket(s.bucketName).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expires),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return url, nil
}

func (s *FirebaseStorageService) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.client.Bucket(s.bucketName).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return rc, nil
}

// Close releases the underlying storage client.
func (s *FirebaseStorageService) Close() error {
	return s.client.Close()
}
