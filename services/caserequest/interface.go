package caserequest

import (
	"context"
	"io"
	"time"

	caseRequestRepo "caseflow/database/repository/caserequest"
	"caseflow/models"
)

type CaseRequestService interface {
	CreateRequest(ctx context.Context, input models.CaseRequestInput, uploads []Upload, createdBy string) (*models.CaseRequest, error)
	// UpdateRequest overwrites every field and appends new uploads to the stored references.
	UpdateRequest(ctx context.Context, id string, input models.CaseRequestInput, uploads []Upload) (*models.CaseRequest, error)
	GetRequest(ctx context.Context, id string) (*models.CaseRequest, error)
	ListRequests(ctx context.Context) ([]models.CaseRequest, error)

	// RequestDeletion issues the token that ConfirmDeletion must present.
	RequestDeletion(ctx context.Context, id string) (*DeleteIntent, error)
	ConfirmDeletion(ctx context.Context, id, token string) error
}

// FileStore is the subset of the file service used for attachments.
type FileStore interface {
	Save(ctx context.Context, r io.Reader, size int64, name, contentType, createdBy string) (*models.StoredFile, error)
	URL(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// CleanupQueue schedules removal of the blobs of a deleted request.
type CleanupQueue interface {
	EnqueueFileCleanup(ctx context.Context, requestID string, fileIDs []string) error
}

// Upload is one file submitted for a category. Open is called once.
type Upload struct {
	Category    models.FileCategory
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// DeleteIntent is handed to the client to confirm a deletion.
type DeleteIntent struct {
	RequestID string    `json:"requestId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DefaultCaseRequestService is the production implementation.
type DefaultCaseRequestService struct {
	Repo          caseRequestRepo.CaseRequestRepository
	Files         FileStore
	Confirmations ConfirmationStore
	// Cleanup may be nil, in which case deleted blobs are left in place.
	Cleanup CleanupQueue
	// ConfirmTTL bounds how long a delete token stays valid.
	ConfirmTTL time.Duration
}

const defaultConfirmTTL = 5 * time.Minute
