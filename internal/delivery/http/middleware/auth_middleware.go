package middleware

import (
	"net/http"
	"strings"

	"housing/internal/domain/entity"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/service"
	"housing/internal/errors"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
)

// tokenFailureBody is the stable 401 shape emitted for any access token
// failure. Code is machine-readable; clients branch on TOKEN_EXPIRED to
// trigger the refresh flow.
type tokenFailureBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AuthMiddleware validates access tokens and translates token failures
// into structured 401 responses before any handler logic runs.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return tokenInvalid(c, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return tokenInvalid(c, "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Decode(tokenString)
		if err != nil {
			if errors.Is(err, domainerrors.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, tokenFailureBody{
					Code:    "TOKEN_EXPIRED",
					Message: "Access token has expired",
				})
			}

			return tokenInvalid(c, "Access token is invalid")
		}

		if claims.Type != service.TokenTypeAccess {
			return tokenInvalid(c, "Access token is invalid")
		}

		// Set user info on the context for handlers to use.
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if role != requiredRole {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + requiredRole.String() + "' role"})
			}

			return next(c)
		}
	}
}

func tokenInvalid(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, tokenFailureBody{
		Code:    "TOKEN_INVALID",
		Message: message,
	})
}
