package auth

import (
	"context"
	"time"

	"blogapi/internal/cache"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenStoreInterface defines the interface for token revocation storage.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token ids in Redis until they would have
// expired anyway.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke marks a token id as revoked until its natural expiry.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := revokedTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsRevoked checks whether a token id has been revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedTokenKeyPrefix + tokenID
	return s.cache.Exists(ctx, key)
}
