// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"encoding/base64"
	"strconv"
	"time"

	"housing/config"
	"housing/internal/domain/entity"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The signing key is decoded once at construction and never mutated, so the
// service is safe to share across all concurrent callers.
type jwtService struct {
	key        []byte        // HMAC signing key, decoded from base64 config.
	accessTTL  time.Duration // Time-to-live for access tokens.
	refreshTTL time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService. It fails when the
// configured secret is missing or not valid base64, which aborts process
// startup rather than serving with an unusable key.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	key, err := base64.StdEncoding.DecodeString(cfg.JWT.Secret)
	if err != nil {
		return nil, errors.Wrap(err, "jwt secret is not valid base64")
	}

	return &jwtService{
		key:        key,
		accessTTL:  cfg.JWT.AccessTTL,
		refreshTTL: cfg.JWT.RefreshTTL,
	}, nil
}

// IssueAccessToken creates a short-lived token carrying the role claim.
func (s *jwtService) IssueAccessToken(userID int64, role entity.Role) (string, error) {
	return s.encode(userID, role, s.accessTTL, service.TokenTypeAccess)
}

// IssueRefreshToken creates a long-lived token with no role claim.
func (s *jwtService) IssueRefreshToken(userID int64) (string, error) {
	return s.encode(userID, "", s.refreshTTL, service.TokenTypeRefresh)
}

// Decode verifies signature and expiry and maps failures onto the domain
// taxonomy: expiry to ErrTokenExpired, everything else (bad signature,
// malformed payload, non-numeric subject) to ErrTokenInvalid.
func (s *jwtService) Decode(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("token past expiry")
		}

		return nil, domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("unexpected claims payload")
	}

	return s.toClaims(mapClaims)
}

// AccessTokenTTL returns the configured access token lifetime.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// encode is a private helper to create a JWT with the standard claim set.
func (s *jwtService) encode(userID int64, role entity.Role, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10), // Subject (who the token is for)
		"iat":  now.Unix(),                    // Issued At
		"exp":  now.Add(ttl).Unix(),           // Expiration Time
		"type": tokenType,                     // Type of token (access or refresh)
	}
	// Only the access token carries the role, for stateless authorization.
	if role != "" {
		claims["role"] = role.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// toClaims converts raw map claims into the typed domain view.
func (s *jwtService) toClaims(mapClaims jwt.MapClaims) (*service.Claims, error) {
	sub, err := mapClaims.GetSubject()
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("missing subject claim")
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("subject is not a user id")
	}

	claims := &service.Claims{UserID: userID}

	if roleStr, ok := mapClaims["role"].(string); ok {
		claims.Role = entity.RoleFromString(roleStr)
	}
	if tokenType, ok := mapClaims["type"].(string); ok {
		claims.Type = tokenType
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat
	}
	claims.Subject = sub

	return claims, nil
}
