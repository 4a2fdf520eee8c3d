package usecase

import "context"

// VerifyCodeOutput reports the result of a code check. A mismatch is a
// normal negative result, not an error; only an absent code is an error
// (CodeExpired).
type VerifyCodeOutput struct {
	Verified bool
}

// EmailUsecase defines the signup email verification operations.
type EmailUsecase interface {
	// SendSignupCode generates a fresh code, stores it under the address
	// with the code TTL and mails it. Resending overwrites the previous
	// code and resets the TTL.
	SendSignupCode(ctx context.Context, email string) error

	// VerifyCode compares the submitted code against the stored one. On
	// match the code is deleted and the verified marker is set. Returns
	// CodeExpired when no code is on record.
	VerifyCode(ctx context.Context, email, code string) (*VerifyCodeOutput, error)

	// IsVerified reports whether a live verified marker exists.
	IsVerified(ctx context.Context, email string) (bool, error)

	// ClearVerified removes the verified marker. Administrative cleanup;
	// the normal lifecycle lets the marker lapse by TTL.
	ClearVerified(ctx context.Context, email string) error
}
