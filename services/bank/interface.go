package bank

import (
	"context"
	"net/http"
	"time"

	bankRepo "caseflow/database/repository/bank"
	"caseflow/models"

	"github.com/go-redis/redis/v8"
)

type BankService interface {
	ListBanks(ctx context.Context) ([]models.BankAgencyCode, error)
	GetBank(ctx context.Context, id string) (*models.BankAgencyCode, error)
	CreateBank(ctx context.Context, input models.BankInput) (*models.BankAgencyCode, error)
	UpdateBank(ctx context.Context, id string, input models.BankInput) (*models.BankAgencyCode, error)
	DeleteBank(ctx context.Context, id string) error

	// Patterns returns the snapshot of bank codes used by document analysis.
	Patterns(ctx context.Context) ([]models.BankPattern, error)
	// ImportFromSheet upserts every row of the spreadsheet feed by bank name.
	ImportFromSheet(ctx context.Context) (*ImportSummary, error)
}

// DefaultBankService is the production implementation.
type DefaultBankService struct {
	Repo bankRepo.BankRepository
	// Cache holds the pattern snapshot; nil disables caching.
	Cache      *redis.Client
	SheetURL   string
	HTTPClient *http.Client
}

// ImportSummary reports the outcome of a spreadsheet import.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Banks    []string `json:"banks"`
}

const (
	patternCacheKey = "bank:patterns"
	patternGenKey   = "bank:patterns:gen"
	patternCacheTTL = 5 * time.Minute
)
