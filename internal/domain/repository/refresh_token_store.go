package repository

import (
	"context"
	"errors"
	"time"
)

// ErrRefreshTokenNotFound is returned when no refresh token is stored for
// a user, either because none was issued or the entry's TTL elapsed.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenStore is the keyed ephemeral store holding the single current
// refresh token per user. Save overwrites and resets the TTL, which is the
// mechanism that enforces "one live refresh token per principal": issuing a
// new token implicitly invalidates the previous one.
//
// All operations are remote calls and must honor ctx cancellation.
type RefreshTokenStore interface {
	// Save upserts the current refresh token for the user.
	Save(ctx context.Context, userID int64, token string, ttl time.Duration) error

	// Get returns the stored token, or ErrRefreshTokenNotFound.
	Get(ctx context.Context, userID int64) (string, error)

	// Delete removes the entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, userID int64) error
}
