package service

import "context"

// EmailSender delivers verification mail. Implementations may short-circuit
// in development mode and log the code instead of sending.
type EmailSender interface {
	// SendVerificationCode sends the 6-digit signup code to the address.
	SendVerificationCode(ctx context.Context, to, code string) error
}

// CodeGenerator produces one-time verification codes from a
// cryptographically secure source.
type CodeGenerator interface {
	// Generate returns a 6-digit decimal code in [100000, 999999].
	Generate() (string, error)
}
