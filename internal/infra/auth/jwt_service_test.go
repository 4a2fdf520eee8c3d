package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"housing/config"
	"housing/internal/domain/entity"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(accessTTL, refreshTTL time.Duration) *config.Config {
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

	return &config.Config{
		JWT: &config.JWTConfig{
			Secret:     secret,
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
	}
}

func TestNewJWTService_Config(t *testing.T) {
	t.Run("missing jwt section", func(t *testing.T) {
		_, err := NewJWTService(&config.Config{})
		require.Error(t, err)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewJWTService(&config.Config{JWT: &config.JWTConfig{}})
		require.Error(t, err)
	})

	t.Run("secret is not base64", func(t *testing.T) {
		cfg := &config.Config{JWT: &config.JWTConfig{Secret: "not-valid-base64!!!"}}
		_, err := NewJWTService(cfg)
		require.Error(t, err)
	})

	t.Run("valid secret", func(t *testing.T) {
		svc, err := NewJWTService(newTestConfig(time.Minute, time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Minute, svc.AccessTokenTTL())
		assert.Equal(t, time.Hour, svc.RefreshTokenTTL())
	})
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(time.Minute, time.Hour))
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(42, entity.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_RefreshTokenCarriesNoRole(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(time.Minute, time.Hour))
	require.NoError(t, err)

	token, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)

	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Empty(t, claims.Role)
	assert.Equal(t, service.TokenTypeRefresh, claims.Type)
}

func TestJWTService_Decode_Expired(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(-time.Second, time.Hour))
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(42, entity.RoleUser)
	require.NoError(t, err)

	_, err = svc.Decode(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
	assert.False(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_Decode_Invalid(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(time.Minute, time.Hour))
	require.NoError(t, err)

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.Decode("not.a.token")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Decode("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	})

	t.Run("signed with a different key", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  "42",
			"iat":  time.Now().Unix(),
			"exp":  time.Now().Add(time.Minute).Unix(),
			"type": service.TokenTypeAccess,
		})
		signed, signErr := forged.SignedString([]byte("some-other-signing-key-material!"))
		require.NoError(t, signErr)

		_, err := svc.Decode(signed)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		key, decodeErr := base64.StdEncoding.DecodeString(newTestConfig(time.Minute, time.Hour).JWT.Secret)
		require.NoError(t, decodeErr)

		crafted := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  "not-a-number",
			"iat":  time.Now().Unix(),
			"exp":  time.Now().Add(time.Minute).Unix(),
			"type": service.TokenTypeAccess,
		})
		signed, signErr := crafted.SignedString(key)
		require.NoError(t, signErr)

		_, err := svc.Decode(signed)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	})
}
