package caserequest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caseflow/database"
	"caseflow/utils"

	"go.uber.org/zap"
)

func (s *DefaultCaseRequestService) confirmTTL() time.Duration {
	if s.ConfirmTTL > 0 {
		return s.ConfirmTTL
	}
	return defaultConfirmTTL
}

func (s *DefaultCaseRequestService) RequestDeletion(ctx context.Context, id string) (*DeleteIntent, error) {
	if _, err := s.GetRequest(ctx, id); err != nil {
		return nil, err
	}
	ttl := s.confirmTTL()
	token, err := s.Confirmations.Issue(ctx, id, ttl)
	if err != nil {
		return nil, err
	}
	return &DeleteIntent{RequestID: id, Token: token, ExpiresAt: time.Now().Add(ttl)}, nil
}

// ConfirmDeletion deletes the request only if token is a live token for it.
// Concurrent calls with the same token delete at most once.
func (s *DefaultCaseRequestService) ConfirmDeletion(ctx context.Context, id, token string) error {
	logger := utils.GetLogger()

	ok, err := s.Confirmations.Consume(ctx, id, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConfirmationRequired
	}

	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to delete case request %s: %w", id, err)
	}
	logger.Info("Case request deleted", zap.String("id", id))

	if fileIDs := req.AllFileIDs(); len(fileIDs) > 0 && s.Cleanup != nil {
		if err := s.Cleanup.EnqueueFileCleanup(ctx, id, fileIDs); err != nil {
			logger.Error("Failed to enqueue file cleanup", zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}
