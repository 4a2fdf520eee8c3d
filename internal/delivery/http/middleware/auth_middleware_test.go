package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"housing/config"
	"housing/internal/domain/entity"
	"housing/internal/domain/service"
	infraauth "housing/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, accessTTL time.Duration) service.TokenService {
	t.Helper()

	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	svc, err := infraauth.NewJWTService(&config.Config{
		JWT: &config.JWTConfig{
			Secret:     secret,
			AccessTTL:  accessTTL,
			RefreshTTL: time.Hour,
		},
	})
	require.NoError(t, err)

	return svc
}

func runAuthenticate(t *testing.T, tokenSvc service.TokenService, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerRan := false
	mw := NewAuthMiddleware(tokenSvc)
	err := mw.Authenticate(func(c echo.Context) error {
		handlerRan = true

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	return rec, c, handlerRan
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) tokenFailureBody {
	t.Helper()

	var body tokenFailureBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthenticate_ValidAccessToken(t *testing.T) {
	tokenSvc := newTestTokenService(t, time.Minute)
	token, err := tokenSvc.IssueAccessToken(42, entity.RoleAdmin)
	require.NoError(t, err)

	rec, c, handlerRan := runAuthenticate(t, tokenSvc, "Bearer "+token)

	assert.True(t, handlerRan)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), c.Get(ContextKeyUserID))
	assert.Equal(t, entity.RoleAdmin, c.Get(ContextKeyRole))
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	tokenSvc := newTestTokenService(t, time.Minute)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not a bearer token", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, handlerRan := runAuthenticate(t, tokenSvc, tt.header)

			assert.False(t, handlerRan)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "TOKEN_INVALID", decodeFailure(t, rec).Code)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	tokenSvc := newTestTokenService(t, -time.Second)
	token, err := tokenSvc.IssueAccessToken(42, entity.RoleUser)
	require.NoError(t, err)

	rec, _, handlerRan := runAuthenticate(t, tokenSvc, "Bearer "+token)

	assert.False(t, handlerRan)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Stable code: clients branch on TOKEN_EXPIRED to trigger refresh.
	assert.Equal(t, "TOKEN_EXPIRED", decodeFailure(t, rec).Code)
}

func TestAuthenticate_RejectsRefreshToken(t *testing.T) {
	tokenSvc := newTestTokenService(t, time.Minute)
	token, err := tokenSvc.IssueRefreshToken(42)
	require.NoError(t, err)

	rec, _, handlerRan := runAuthenticate(t, tokenSvc, "Bearer "+token)

	assert.False(t, handlerRan)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", decodeFailure(t, rec).Code)
}

func TestRequireRole(t *testing.T) {
	tokenSvc := newTestTokenService(t, time.Minute)
	mw := NewAuthMiddleware(tokenSvc)

	run := func(role any) (*httptest.ResponseRecorder, bool) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(ContextKeyRole, role)
		}

		handlerRan := false
		err := mw.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
			handlerRan = true

			return c.NoContent(http.StatusOK)
		})(c)
		require.NoError(t, err)

		return rec, handlerRan
	}

	t.Run("matching role passes", func(t *testing.T) {
		rec, handlerRan := run(entity.RoleAdmin)
		assert.True(t, handlerRan)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		rec, handlerRan := run(entity.RoleUser)
		assert.False(t, handlerRan)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		rec, handlerRan := run(nil)
		assert.False(t, handlerRan)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
