package bankRepo

import (
	"context"

	"caseflow/models"
)

// BankRepository defines data access for bank agency codes.
type BankRepository interface {
	Create(ctx context.Context, bank *models.BankAgencyCode) error
	GetByID(ctx context.Context, id string) (*models.BankAgencyCode, error)
	GetAll(ctx context.Context) ([]models.BankAgencyCode, error)
	Replace(ctx context.Context, bank *models.BankAgencyCode) error
	// UpsertByName inserts or overwrites the entry with the same bank name.
	UpsertByName(ctx context.Context, bank *models.BankAgencyCode) error
	Delete(ctx context.Context, id string) error
}
