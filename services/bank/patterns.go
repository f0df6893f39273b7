package bank

import (
	"context"
	"encoding/json"
	"errors"

	"caseflow/models"
	"caseflow/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Patterns serves the cached snapshot when present and rebuilds it from the
// repository otherwise. Cache failures fall through to the repository.
func (s *DefaultBankService) Patterns(ctx context.Context) ([]models.BankPattern, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, patternCacheKey).Bytes()
		switch {
		case err == nil:
			var cached []models.BankPattern
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return cached, nil
			}
			logger.Warn("Discarding unreadable bank pattern cache")
		case err != redis.Nil:
			logger.Warn("Bank pattern cache read failed", zap.Error(err))
		}
	}

	if s.Cache == nil {
		return s.loadPatterns(ctx)
	}

	// WATCH the generation counter so a registry write that lands between
	// the repository read and the cache write aborts the write-back.
	var (
		patterns []models.BankPattern
		loadErr  error
	)
	err := s.Cache.Watch(ctx, func(tx *redis.Tx) error {
		if patterns, loadErr = s.loadPatterns(ctx); loadErr != nil {
			return loadErr
		}
		raw, err := json.Marshal(patterns)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, patternCacheKey, raw, patternCacheTTL)
			return nil
		})
		return err
	}, patternGenKey)
	if loadErr != nil {
		return nil, loadErr
	}

	switch {
	case err == nil:
	case errors.Is(err, redis.TxFailedErr):
		logger.Debug("Bank registry changed while building the snapshot, not caching it")
	case patterns == nil:
		logger.Warn("Bank pattern cache unavailable", zap.Error(err))
		return s.loadPatterns(ctx)
	default:
		logger.Warn("Bank pattern cache write failed", zap.Error(err))
	}
	return patterns, nil
}

func (s *DefaultBankService) loadPatterns(ctx context.Context) ([]models.BankPattern, error) {
	banks, err := s.ListBanks(ctx)
	if err != nil {
		return nil, err
	}
	patterns := make([]models.BankPattern, 0, len(banks))
	for _, b := range banks {
		patterns = append(patterns, models.BankPattern{BankName: b.BankName, Codes: b.Codes})
	}
	return patterns, nil
}
