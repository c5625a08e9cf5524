package redis

// Package redis provides Redis-based adapters for the session client.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/usermgmt-ui/internal/domain/auth"
)

// DefaultPrefix namespaces token keys so the store can share a Redis database.
const DefaultPrefix = "usermgmt:"

// DefaultKey is the fixed key the session token lives under.
const DefaultKey = "token"

// TokenStore keeps the session token as a raw string value in Redis.
// Tokens are stored without TTL; expiry is the server's concern.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

// NewTokenStore creates a Redis token store at DefaultPrefix+DefaultKey.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return NewTokenStoreWithKey(client, DefaultPrefix, DefaultKey)
}

// NewTokenStoreWithKey creates a Redis token store at prefix+key.
func NewTokenStoreWithKey(client redis.UniversalClient, prefix, key string) *TokenStore {
	if key == "" {
		key = DefaultKey
	}
	return &TokenStore{
		client: client,
		key:    prefix + key,
	}
}

// Key returns the full Redis key used by the store.
func (s *TokenStore) Key() string { return s.key }

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	tok, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return tok, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return domainauth.ErrEmptyToken
	}
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenStore) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
