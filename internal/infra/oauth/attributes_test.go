package oauth

import (
	"encoding/json"
	"testing"

	"housing/internal/domain/entity"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected entity.AuthType
		wantErr  bool
	}{
		{name: "google", input: "google", expected: entity.AuthTypeGoogle},
		{name: "kakao", input: "kakao", expected: entity.AuthTypeKakao},
		{name: "case insensitive", input: "Google", expected: entity.AuthTypeGoogle},
		{name: "unknown provider", input: "naver", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProvider(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedProvider))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGoogleAttributes_Normalize(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		payload := `{"sub":"1089123","email":"user@example.com","name":"Jane Doe","picture":"https://example.com/p.png"}`

		var attrs GoogleAttributes
		require.NoError(t, json.Unmarshal([]byte(payload), &attrs))

		user, err := attrs.Normalize()
		require.NoError(t, err)
		assert.Equal(t, entity.AuthTypeGoogle, user.Provider)
		assert.Equal(t, "1089123", user.ProviderID)
		assert.Equal(t, "user@example.com", user.Email)
		assert.Equal(t, "Jane Doe", user.Name)
	})

	t.Run("missing optional fields", func(t *testing.T) {
		attrs := GoogleAttributes{Sub: "42"}

		user, err := attrs.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "42", user.ProviderID)
		assert.Empty(t, user.Email)
		assert.Empty(t, user.Name)
	})

	t.Run("missing sub", func(t *testing.T) {
		attrs := GoogleAttributes{Email: "user@example.com"}

		_, err := attrs.Normalize()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrMissingProviderID))
	})
}

func TestKakaoAttributes_Normalize(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		payload := `{"id":2901776503,"kakao_account":{"email":"user@kakao.com","profile":{"nickname":"철수"}}}`

		var attrs KakaoAttributes
		require.NoError(t, json.Unmarshal([]byte(payload), &attrs))

		user, err := attrs.Normalize()
		require.NoError(t, err)
		assert.Equal(t, entity.AuthTypeKakao, user.Provider)
		assert.Equal(t, "2901776503", user.ProviderID)
		assert.Equal(t, "user@kakao.com", user.Email)
		assert.Equal(t, "철수", user.Name)
	})

	t.Run("missing account block", func(t *testing.T) {
		attrs := KakaoAttributes{ID: 7}

		user, err := attrs.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "7", user.ProviderID)
		assert.Empty(t, user.Email)
		assert.Empty(t, user.Name)
	})

	t.Run("missing id", func(t *testing.T) {
		var attrs KakaoAttributes

		_, err := attrs.Normalize()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrMissingProviderID))
	})
}

func TestBuildAuthorizationURL(t *testing.T) {
	google := &googleClient{
		clientID:    "test_client_id",
		redirectURI: "http://localhost:8080/callback",
		scopes:      "openid email profile",
	}
	assert.Equal(t,
		"https://accounts.google.com/o/oauth2/v2/auth?client_id=test_client_id&redirect_uri=http%3A%2F%2Flocalhost%3A8080%2Fcallback&response_type=code&scope=openid+email+profile&state=abc",
		google.BuildAuthorizationURL("abc"))

	kakao := &kakaoClient{
		clientID:    "kakao_app_key",
		redirectURI: "http://localhost:8080/callback",
	}
	assert.Equal(t,
		"https://kauth.kakao.com/oauth/authorize?client_id=kakao_app_key&redirect_uri=http%3A%2F%2Flocalhost%3A8080%2Fcallback&response_type=code&state=abc",
		kakao.BuildAuthorizationURL("abc"))
}
