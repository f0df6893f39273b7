package user

import (
	"context"
	"time"

	userRepo "caseflow/database/repository/user"
	"caseflow/models"

	"github.com/go-redis/redis/v8"
)

type UserService interface {
	RegisterUser(ctx context.Context, reg models.UserRegistration) (*AuthResponse, error)
	AuthenticateUser(ctx context.Context, identifier, password string) (*AuthResponse, error)
	RevokeUserAuthToken(ctx context.Context, userID string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	// AdminResetPassword sets a new password and revokes the user's session.
	AdminResetPassword(ctx context.Context, userID, newPassword string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	// AuthCache mirrors token hashes for the auth middleware; nil skips caching.
	AuthCache *redis.Client
	TokenTTL  time.Duration
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}
