// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"housing/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for a local account to log in.
type LoginInput struct {
	LoginID  string
	Password string
}

// --- Output DTOs ---

// TokenPairOutput returns the freshly minted token pair. Every path that
// produces one (login, reissue, federated callback) also stores the
// refresh token server-side before returning.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Login verifies local credentials and mints a token pair.
	Login(ctx context.Context, input *LoginInput) (*TokenPairOutput, error)

	// Reissue rotates the presented refresh token into a new pair. The
	// presented token must be signature-valid AND byte-equal to the
	// stored value for its subject; the stored value is overwritten with
	// the new refresh token, so the old one is unusable afterwards.
	Reissue(ctx context.Context, refreshToken string) (*TokenPairOutput, error)

	// Logout deletes the stored refresh token for the subject of the
	// presented token. Idempotent; an already-absent entry is not an error.
	Logout(ctx context.Context, refreshToken string) error

	// AuthorizationURL returns the provider's consent page URL for the
	// named provider, or UnsupportedProvider.
	AuthorizationURL(provider, state string) (string, error)

	// OAuthLogin exchanges the callback code, links or creates the local
	// account and mints a token pair.
	OAuthLogin(ctx context.Context, provider, code string) (*TokenPairOutput, error)
}
