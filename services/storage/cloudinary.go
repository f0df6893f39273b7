package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Documents are stored as raw assets so Cloudinary never transforms them.
const cloudinaryResourceType = "raw"

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld        *cloudinary.Cloudinary
	httpClient *http.Client
}

// NewCloudinaryStorageService creates a Cloudinary-backed StorageService.
func NewCloudinaryStorageService(cloudName, apiKey, apiSecret string) (*CloudinaryStorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &CloudinaryStorageService{
		cld:        cld,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (s *CloudinaryStorageService) Backend() string { return "cloudinary" }

// UploadFile uploads r into destFolder and returns the Cloudinary public ID.
func (s *CloudinaryStorageService) UploadFile(ctx context.Context, r io.Reader, size int64, name, contentType, destFolder string) (string, error) {
	params := uploader.UploadParams{
		Folder:           destFolder,
		ResourceType:     cloudinaryResourceType,
		UseFilename:      boolPtr(true),
		UniqueFilename:   boolPtr(true),
		FilenameOverride: name,
	}
	result, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStorageService: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("CloudinaryStorageService: no public ID returned")
	}
	return result.PublicID, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorageService) DeleteFile(ctx context.Context, key string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     key,
		ResourceType: cloudinaryResourceType,
	})
	if err != nil {
		return fmt.Errorf("CloudinaryStorageService: failed to delete file: %w", err)
	}
	return nil
}

// GetDownloadURL builds the delivery URL of a raw asset. Raw uploads are
// public, so expires is not used.
func (s *CloudinaryStorageService) GetDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	a, err := s.cld.File(key)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to get asset: %w", err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to get URL string: %w", err)
	}
	return url, nil
}

// Download fetches the asset bytes through its delivery URL.
func (s *CloudinaryStorageService) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	url, err := s.GetDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorageService: download failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("CloudinaryStorageService: download returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func boolPtr(b bool) *bool { return &b }
