package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caseflow/database"
	"caseflow/models"
	"caseflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) AdminResetPassword(ctx context.Context, userID, newPassword string) error {
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return err
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"password_hash": string(hash), "updatedAt": time.Now()}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	utils.GetLogger().Info("Password reset by admin", zap.String("userID", userID))
	return s.RevokeUserAuthToken(ctx, userID)
}
