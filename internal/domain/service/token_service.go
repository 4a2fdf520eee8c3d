package service

import (
	"time"

	"housing/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminator claims embedded in every issued token.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the decoded view of a signed token. UserID is parsed from the
// registered subject; Role is empty on refresh tokens.
type Claims struct {
	UserID int64
	Role   entity.Role
	Type   string
	jwt.RegisteredClaims
}

// TokenService defines the interface for minting and validating signed
// tokens. Implementations must be safe for concurrent use; the signing key
// is fixed at construction.
type TokenService interface {
	// IssueAccessToken mints a short-lived token carrying the role claim.
	IssueAccessToken(userID int64, role entity.Role) (string, error)

	// IssueRefreshToken mints a long-lived token with no role claim.
	IssueRefreshToken(userID int64) (string, error)

	// Decode verifies signature and expiry and returns the claims.
	// Expired tokens fail with domain ErrTokenExpired; forged or malformed
	// tokens (including an unparsable subject) fail with ErrTokenInvalid.
	Decode(tokenString string) (*Claims, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
