// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"housing/config"
	"housing/internal/delivery/http/response"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/service"
	"housing/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	refreshCookieName = "refreshToken"
	stateCookieName   = "oauthState"
	stateCookieTTL    = 10 * time.Minute
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc                  usecase.AuthUsecase
	tokenSvc            service.TokenService
	frontendRedirectURL string
	logger              *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, tokenSvc service.TokenService, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	frontendRedirectURL := ""
	if cfg.OAuth != nil {
		frontendRedirectURL = cfg.OAuth.FrontendRedirectURL
	}

	return &AuthHandler{
		uc:                  uc,
		tokenSvc:            tokenSvc,
		frontendRedirectURL: frontendRedirectURL,
		logger:              logger,
	}
}

type loginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login handles the local login request. The access token travels in the
// body, the refresh token only in the http-only cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		LoginID:  req.LoginID,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	return response.Success(c, http.StatusOK, tokenResponse{AccessToken: output.AccessToken}, "Login successful")
}

// Refresh rotates the refresh token presented in the cookie and returns a
// fresh access token. The rotated refresh token replaces the cookie.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return errors.Wrap(domainerrors.ErrTokenInvalid, "refresh token cookie missing")
	}

	output, err := h.uc.Reissue(c.Request().Context(), cookie.Value)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	return response.Success(c, http.StatusOK, tokenResponse{AccessToken: output.AccessToken}, "Token refreshed")
}

// Logout revokes the stored refresh token and expires the cookie. A
// request without a cookie still succeeds; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.uc.Logout(c.Request().Context(), cookie.Value); err != nil {
			return errors.WithStack(err)
		}
	}

	h.clearRefreshCookie(c)

	return c.JSON(http.StatusOK, map[string]string{"message": "LOGOUT_SUCCESS"})
}

// OAuthRedirect sends the browser to the provider's consent page. The
// CSRF state parameter is mirrored into a short-lived cookie.
func (h *AuthHandler) OAuthRedirect(c echo.Context) error {
	state := uuid.New().String()

	authURL, err := h.uc.AuthorizationURL(c.Param("provider"), state)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return c.Redirect(http.StatusFound, authURL)
}

// OAuthCallback completes the federated login: state check, code
// exchange, link-or-create, token pair.
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return errors.Wrap(domainerrors.ErrForbidden, "oauth state mismatch")
	}

	// State is single-use.
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	code := c.QueryParam("code")
	if code == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "authorization code missing")
	}

	output, err := h.uc.OAuthLogin(c.Request().Context(), c.Param("provider"), code)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	if h.frontendRedirectURL != "" {
		redirect := h.frontendRedirectURL + "?accessToken=" + url.QueryEscape(output.AccessToken)

		return c.Redirect(http.StatusFound, redirect)
	}

	return response.Success(c, http.StatusOK, tokenResponse{AccessToken: output.AccessToken}, "Login successful")
}

// setRefreshCookie installs the refresh token as an http-only, secure,
// cross-site cookie whose lifetime matches the token's TTL.
func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenSvc.RefreshTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
