package caserequest

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const deleteConfirmPrefix = "case:delete:"

// ConfirmationStore holds single-use delete tokens.
type ConfirmationStore interface {
	Issue(ctx context.Context, requestID string, ttl time.Duration) (string, error)
	// Consume reports whether the token was valid. A token is accepted at most once.
	Consume(ctx context.Context, requestID, token string) (bool, error)
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// RedisConfirmationStore keeps tokens in Redis and consumes them with GETDEL.
type RedisConfirmationStore struct {
	client *redis.Client
}

func NewRedisConfirmationStore(client *redis.Client) *RedisConfirmationStore {
	return &RedisConfirmationStore{client: client}
}

func confirmKey(requestID, token string) string {
	return deleteConfirmPrefix + requestID + ":" + token
}

func (s *RedisConfirmationStore) Issue(ctx context.Context, requestID string, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, confirmKey(requestID, token), "1", ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store delete token: %w", err)
	}
	return token, nil
}

func (s *RedisConfirmationStore) Consume(ctx context.Context, requestID, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	err := s.client.GetDel(ctx, confirmKey(requestID, token)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to consume delete token: %w", err)
	}
	return true, nil
}

// MemoryConfirmationStore is an in-process store for single-instance runs without Redis.
type MemoryConfirmationStore struct {
	mu      sync.Mutex
	tokens  map[string]time.Time
	nowFunc func() time.Time
}

func NewMemoryConfirmationStore() *MemoryConfirmationStore {
	return &MemoryConfirmationStore{tokens: map[string]time.Time{}, nowFunc: time.Now}
}

func (s *MemoryConfirmationStore) Issue(ctx context.Context, requestID string, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFunc()
	// Abandoned tokens are dropped here; nothing else would remove them.
	for key, expires := range s.tokens {
		if !now.Before(expires) {
			delete(s.tokens, key)
		}
	}
	s.tokens[confirmKey(requestID, token)] = now.Add(ttl)
	return token, nil
}

func (s *MemoryConfirmationStore) Consume(ctx context.Context, requestID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := confirmKey(requestID, token)
	expires, ok := s.tokens[key]
	if !ok {
		return false, nil
	}
	delete(s.tokens, key)
	return s.nowFunc().Before(expires), nil
}
