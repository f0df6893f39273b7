package storage

import (
	"context"
	"fmt"

	"caseflow/config"
)

// New builds the StorageService selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config) (StorageService, error) {
	switch cfg.StorageBackend {
	case "", "cloudinary":
		return NewCloudinaryStorageService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "firebase":
		return NewFirebaseStorageService(ctx, cfg.FirebaseCredentialsFile, cfg.FirebaseBucket)
	case "s3":
		return NewS3StorageService(ctx, cfg.S3Region, cfg.S3Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
