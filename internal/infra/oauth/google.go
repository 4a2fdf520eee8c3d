package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"housing/config"
	"housing/internal/domain/entity"
	"housing/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// googleClient implements service.OAuthClient against Google's OAuth 2.0
// endpoints.
type googleClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       string
	httpClient   *http.Client
}

// NewGoogleClient creates the Google OAuth client from configuration.
// Returns nil when the provider is not configured; the usecase treats a
// missing client as an unsupported provider.
func NewGoogleClient(cfg *config.Config) service.OAuthClient {
	if cfg.OAuth == nil || cfg.OAuth.Google == nil {
		return nil
	}

	return &googleClient{
		clientID:     cfg.OAuth.Google.ClientID,
		clientSecret: cfg.OAuth.Google.ClientSecret,
		redirectURI:  cfg.OAuth.Google.RedirectURI,
		scopes:       cfg.OAuth.Google.Scopes,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Provider returns the auth type this client serves.
func (c *googleClient) Provider() entity.AuthType {
	return entity.AuthTypeGoogle
}

// BuildAuthorizationURL constructs the Google consent page URL.
func (c *googleClient) BuildAuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", c.scopes)
	params.Set("response_type", "code")
	params.Set("state", state)

	return googleAuthURL + "?" + params.Encode()
}

// FetchUser exchanges the authorization code for an access token, fetches
// the userinfo payload and normalizes it.
func (c *googleClient) FetchUser(ctx context.Context, code string) (*service.OAuthUser, error) {
	accessToken, err := exchangeCode(ctx, c.httpClient, googleTokenURL, url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {c.redirectURI},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
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

	var attrs GoogleAttributes
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	return attrs.Normalize()
}

// exchangeCode performs the authorization-code grant against the provider's
// token endpoint and returns the access token.
func exchangeCode(ctx context.Context, client *http.Client, tokenURL string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to exchange code for token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}

	return tokenResponse.AccessToken, nil
}
