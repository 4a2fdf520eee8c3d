package repository

import (
	"context"
	"errors"
	"time"
)

// ErrCodeNotFound is returned when no verification code is on record for
// an email address. An expired code and a never-sent code are
// indistinguishable by design.
var ErrCodeNotFound = errors.New("verification code not found")

// VerificationCodeStore holds the one-time signup code per email address.
// Resending overwrites the previous code and resets the TTL.
type VerificationCodeStore interface {
	// SaveCode upserts the code for the address.
	SaveCode(ctx context.Context, email, code string, ttl time.Duration) error

	// GetCode returns the stored code, or ErrCodeNotFound.
	GetCode(ctx context.Context, email string) (string, error)

	// DeleteCode removes the code. Missing key is not an error.
	DeleteCode(ctx context.Context, email string) error
}

// VerificationStatusStore holds the "verified" marker per email address,
// written only after a code was successfully consumed.
type VerificationStatusStore interface {
	// MarkVerified sets the marker with its own TTL.
	MarkVerified(ctx context.Context, email string, ttl time.Duration) error

	// IsVerified reports whether a live marker exists.
	IsVerified(ctx context.Context, email string) (bool, error)

	// DeleteVerified removes the marker. Administrative cleanup path;
	// normal flow relies on TTL expiry.
	DeleteVerified(ctx context.Context, email string) error
}
