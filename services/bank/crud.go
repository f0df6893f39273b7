package bank

import (
	"context"
	"errors"
	"fmt"

	"caseflow/database"
	"caseflow/models"
	"caseflow/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	ErrBankNotFound    = errors.New("bank not found")
	ErrInvalidBankName = errors.New("bank name is required")
)

func (s *DefaultBankService) ListBanks(ctx context.Context) ([]models.BankAgencyCode, error) {
	banks, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

func (s *DefaultBankService) GetBank(ctx context.Context, id string) (*models.BankAgencyCode, error) {
	bank, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrBankNotFound
		}
		return nil, err
	}
	return bank, nil
}

func (s *DefaultBankService) CreateBank(ctx context.Context, input models.BankInput) (*models.BankAgencyCode, error) {
	bank := &models.BankAgencyCode{}
	applyInput(bank, input)
	if bank.BankName == "" {
		return nil, ErrInvalidBankName
	}
	if err := s.Repo.Create(ctx, bank); err != nil {
		return nil, fmt.Errorf("failed to create bank: %w", err)
	}
	s.invalidatePatterns(ctx)
	return bank, nil
}

// UpdateBank overwrites every field of the bank with the payload.
func (s *DefaultBankService) UpdateBank(ctx context.Context, id string, input models.BankInput) (*models.BankAgencyCode, error) {
	bank, err := s.GetBank(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInput(bank, input)
	if bank.BankName == "" {
		return nil, ErrInvalidBankName
	}
	if err := s.Repo.Replace(ctx, bank); err != nil {
		return nil, fmt.Errorf("failed to update bank %s: %w", id, err)
	}
	s.invalidatePatterns(ctx)
	return bank, nil
}

func (s *DefaultBankService) DeleteBank(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrBankNotFound
		}
		return fmt.Errorf("failed to delete bank %s: %w", id, err)
	}
	s.invalidatePatterns(ctx)
	return nil
}

// invalidatePatterns drops the snapshot and bumps the generation so that a
// snapshot built from pre-write data is never written back.
func (s *DefaultBankService) invalidatePatterns(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	_, err := s.Cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, patternGenKey)
		pipe.Del(ctx, patternCacheKey)
		return nil
	})
	if err != nil {
		utils.GetLogger().Warn("Failed to invalidate bank pattern cache", zap.Error(err))
	}
}
