package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// tokenKey is the single persisted piece of session state. Absence of the
// key is the canonical logged-out state; the value is the raw bearer token.
const tokenKey = "console:session:token"

// TokenStore persists the console's bearer token in Redis so a session
// survives process restarts. No TTL is set: the token is opaque and stays
// valid until the collaborator rejects it.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token store get: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, tokenKey, token, 0).Err(); err != nil {
		return fmt.Errorf("token store set: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, tokenKey).Err(); err != nil {
		return fmt.Errorf("token store clear: %w", err)
	}
	return nil
}
