package redis

import (
	"context"
	"time"

	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/repository"
	"housing/internal/errors"

	"github.com/go-redis/redis/v8"
)

// The two verification keyspaces share the store but have different owners
// and lifetimes: codes belong to the send workflow (short TTL), verified
// markers to the verify workflow (longer TTL).
const (
	verificationCodePrefix   = "email:verify:code:"
	verificationStatusPrefix = "email:verify:verified:"
)

// verificationCodeStore implements repository.VerificationCodeStore on Redis.
type verificationCodeStore struct {
	client *redis.Client
}

// NewVerificationCodeStore is the constructor for verificationCodeStore.
func NewVerificationCodeStore(client *redis.Client) repository.VerificationCodeStore {
	return &verificationCodeStore{client: client}
}

func codeKey(email string) string {
	return verificationCodePrefix + email
}

// SaveCode upserts the code for the address; a resend overwrites the
// previous code rather than accumulating.
func (s *verificationCodeStore) SaveCode(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKey(email), code, ttl).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return nil
}

// GetCode returns the stored code, or repository.ErrCodeNotFound.
func (s *verificationCodeStore) GetCode(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, codeKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrCodeNotFound
		}

		return "", domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return code, nil
}

// DeleteCode removes the code entry.
func (s *verificationCodeStore) DeleteCode(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, codeKey(email)).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return nil
}

// verificationStatusStore implements repository.VerificationStatusStore on Redis.
type verificationStatusStore struct {
	client *redis.Client
}

// NewVerificationStatusStore is the constructor for verificationStatusStore.
func NewVerificationStatusStore(client *redis.Client) repository.VerificationStatusStore {
	return &verificationStatusStore{client: client}
}

func statusKey(email string) string {
	return verificationStatusPrefix + email
}

// MarkVerified sets the verified marker with its own TTL.
func (s *verificationStatusStore) MarkVerified(ctx context.Context, email string, ttl time.Duration) error {
	if err := s.client.Set(ctx, statusKey(email), "true", ttl).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return nil
}

// IsVerified reports whether a live marker exists for the address.
func (s *verificationStatusStore) IsVerified(ctx context.Context, email string) (bool, error) {
	n, err := s.client.Exists(ctx, statusKey(email)).Result()
	if err != nil {
		return false, domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return n > 0, nil
}

// DeleteVerified removes the marker.
func (s *verificationStatusStore) DeleteVerified(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, statusKey(email)).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage(err.Error())
	}

	return nil
}
