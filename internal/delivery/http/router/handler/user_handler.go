package handler

import (
	"log/slog"
	"net/http"

	"housing/internal/delivery/http/middleware"
	"housing/internal/delivery/http/response"
	"housing/internal/domain/entity"
	"housing/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-account handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

type signupRequest struct {
	LoginID  string `json:"loginId" validate:"required,min=4,max=30"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
}

// userResponse is the sanitized account shape returned by the API.
// Password hashes never leave the server.
type userResponse struct {
	ID      int64  `json:"id"`
	LoginID string `json:"loginId,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:      user.ID,
		LoginID: user.LoginID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role.String(),
	}
}

// Signup handles local account registration.
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signup(c.Request().Context(), &usecase.SignupInput{
		LoginID:  req.LoginID,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User), "User registered successfully")
}

// Me returns the authenticated principal's identity as seen by the token.
func (h *UserHandler) Me(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextKeyUserID).(int64)
	role, _ := c.Get(middleware.ContextKeyRole).(entity.Role)

	return response.Success(c, http.StatusOK, map[string]any{
		"id":   userID,
		"role": role.String(),
	}, "")
}
