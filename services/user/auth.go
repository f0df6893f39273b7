package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"caseflow/database"
	"caseflow/models"
	"caseflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}

// RegisterUser creates the account and signs it in.
func (s *DefaultUserService) RegisterUser(ctx context.Context, reg models.UserRegistration) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	username := strings.TrimSpace(reg.Username)
	if email == "" || username == "" {
		return nil, ErrMissingIdentity
	}
	if err := VerifyPasswordComplexity(reg.Password); err != nil {
		return nil, err
	}

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrUserExists
	}
	if existing, err := s.Repo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("User registered", zap.String("userID", u.ID))
	return s.issueToken(ctx, u)
}

// AuthenticateUser checks the password of the user named by email or username.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		u   *models.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = s.Repo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		u, err = s.Repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		utils.GetLogger().Error("AuthenticateUser: Failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, u)
}

// issueToken signs a JWT, records its hash on the user and caches it.
func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(ctx, u.ID, bson.M{"token_hash": tokenHash, "updatedAt": time.Now()}); err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Set(ctx, utils.AuthCachePrefix+u.ID, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Failed to cache token hash", zap.String("userID", u.ID), zap.Error(err))
		}
	}

	return &AuthResponse{
		ID:       u.ID,
		Token:    token,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}, nil
}

// RevokeUserAuthToken clears the stored token hash, invalidating the session.
func (s *DefaultUserService) RevokeUserAuthToken(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"token_hash": "", "updatedAt": time.Now()}); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
			utils.GetLogger().Warn("Failed to clear token cache", zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}
