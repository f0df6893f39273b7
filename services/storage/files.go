package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"caseflow/database"
	fileRepo "caseflow/database/repository/file"
	"caseflow/models"
	"caseflow/utils"

	"go.uber.org/zap"
)

// DefaultURLExpiry bounds signed download URLs.
const DefaultURLExpiry = 15 * time.Minute

var ErrFileNotFound = errors.New("file not found")

// FileService pairs blob storage with the StoredFile records that reference it.
type FileService struct {
	Repo    fileRepo.FileRepository
	Storage StorageService
	Folder  string
	// MaxBytes caps ReadAll; zero means unlimited.
	MaxBytes int64
}

// Save uploads r and records it. The record is only written once the blob exists.
func (s *FileService) Save(ctx context.Context, r io.Reader, size int64, name, contentType, createdBy string) (*models.StoredFile, error) {
	logger := utils.GetLogger()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key, err := s.Storage.UploadFile(ctx, r, size, name, contentType, s.Folder)
	if err != nil {
		logger.Error("Blob upload failed", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to upload %s: %w", name, err)
	}

	file := &models.StoredFile{
		Name:        name,
		ContentType: contentType,
		Size:        size,
		Backend:     s.Storage.Backend(),
		ObjectKey:   key,
		CreatedBy:   createdBy,
	}
	if err := s.Repo.Create(ctx, file); err != nil {
		if delErr := s.Storage.DeleteFile(ctx, key); delErr != nil {
			logger.Warn("Failed to remove orphaned blob", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return file, nil
}

func (s *FileService) Get(ctx context.Context, id string) (*models.StoredFile, error) {
	file, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, id)
		}
		return nil, err
	}
	return file, nil
}

// URL resolves a download URL for a stored file.
func (s *FileService) URL(ctx context.Context, id string) (string, error) {
	file, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.Storage.GetDownloadURL(ctx, file.ObjectKey, DefaultURLExpiry)
}

// ReadAll fetches the full contents of a stored file.
func (s *FileService) ReadAll(ctx context.Context, id string) (*models.StoredFile, []byte, error) {
	file, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.Storage.Download(ctx, file.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	var reader io.Reader = rc
	if s.MaxBytes > 0 {
		reader = io.LimitReader(rc, s.MaxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", id, err)
	}
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return nil, nil, fmt.Errorf("file %s exceeds %d bytes", id, s.MaxBytes)
	}
	return file, data, nil
}

// Delete removes the blob and then the record. A missing record is not an error.
func (s *FileService) Delete(ctx context.Context, id string) error {
	file, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil
		}
		return err
	}
	if err := s.Storage.DeleteFile(ctx, file.ObjectKey); err != nil {
		return err
	}
	if err := s.Repo.DeleteByID(ctx, id); err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	return nil
}
