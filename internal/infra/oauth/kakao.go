package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"housing/config"
	"housing/internal/domain/entity"
	"housing/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	kakaoAuthURL     = "https://kauth.kakao.com/oauth/authorize"
	kakaoTokenURL    = "https://kauth.kakao.com/oauth/token"
	kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"
)

// kakaoClient implements service.OAuthClient against Kakao's OAuth 2.0
// endpoints.
type kakaoClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
}

// NewKakaoClient creates the Kakao OAuth client from configuration.
// Returns nil when the provider is not configured; the usecase treats a
// missing client as an unsupported provider.
func NewKakaoClient(cfg *config.Config) service.OAuthClient {
	if cfg.OAuth == nil || cfg.OAuth.Kakao == nil {
		return nil
	}

	return &kakaoClient{
		clientID:     cfg.OAuth.Kakao.ClientID,
		clientSecret: cfg.OAuth.Kakao.ClientSecret,
		redirectURI:  cfg.OAuth.Kakao.RedirectURI,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Provider returns the auth type this client serves.
func (c *kakaoClient) Provider() entity.AuthType {
	return entity.AuthTypeKakao
}

// BuildAuthorizationURL constructs the Kakao consent page URL. Kakao does
// not take a scope parameter here; scopes are configured on the app.
func (c *kakaoClient) BuildAuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("response_type", "code")
	params.Set("state", state)

	return kakaoAuthURL + "?" + params.Encode()
}

// FetchUser exchanges the authorization code for an access token, fetches
// the /v2/user/me payload and normalizes it.
func (c *kakaoClient) FetchUser(ctx context.Context, code string) (*service.OAuthUser, error) {
	form := url.Values{
		"client_id":    {c.clientID},
		"code":         {code},
		"grant_type":   {"authorization_code"},
		"redirect_uri": {c.redirectURI},
	}
	// Kakao treats the client secret as optional app hardening.
	if c.clientSecret != "" {
		form.Set("client_secret", c.clientSecret)
	}

	accessToken, err := exchangeCode(ctx, c.httpClient, kakaoTokenURL, form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, kakaoUserInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var attrs KakaoAttributes
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	return attrs.Normalize()
}
