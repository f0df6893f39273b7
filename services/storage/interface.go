package storage

import (
	"context"
	"io"
	"time"
)

// StorageService defines the blob operations the file store needs from a backend.
type StorageService interface {
	// Backend names the implementation, recorded on each stored file.
	Backend() string
	// UploadFile stores r under destFolder and returns the permanent object key.
	UploadFile(ctx context.Context, r io.Reader, size int64, name, contentType, destFolder string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error)
	// Download opens the object for reading; the caller closes it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}
