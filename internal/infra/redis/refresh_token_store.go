package redis

import (
	"context"
	"strconv"
	"time"

	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/repository"
	"housing/internal/errors"

	"github.com/go-redis/redis/v8"
)

// refreshTokenPrefix namespaces session entries in the shared keyspace.
const refreshTokenPrefix = "auth:refresh:"

// refreshTokenStore implements repository.RefreshTokenStore on Redis.
// A plain SET with TTL gives the overwrite-on-issue semantics the rotation
// protocol relies on; no history of previous tokens is kept.
type refreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore is the constructor for refreshTokenStore.
func NewRefreshTokenStore(client *redis.Client) repository.RefreshTokenStore {
	return &refreshTokenStore{client: client}
}

func refreshTokenKey(userID int64) string {
	return refreshTokenPrefix + strconv.FormatInt(userID, 10)
}

// Save upserts the current refresh token for the user, resetting the TTL.
func (s *refreshTokenStore) Save(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshTokenKey(userID), token, ttl).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return nil
}

// Get returns the stored token, or repository.ErrRefreshTokenNotFound when
// the entry is absent or its TTL elapsed.
func (s *refreshTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	token, err := s.client.Get(ctx, refreshTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrRefreshTokenNotFound
		}

		return "", domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return token, nil
}

// Delete removes the entry. Redis DEL on a missing key is a no-op, which
// gives revoke its idempotency.
func (s *refreshTokenStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, refreshTokenKey(userID)).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return nil
}
