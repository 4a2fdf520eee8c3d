package handler

import (
	"log/slog"
	"net/http"

	"housing/internal/delivery/http/response"
	"housing/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EmailHandler holds dependencies for email verification handlers.
type EmailHandler struct {
	uc     usecase.EmailUsecase
	logger *slog.Logger
}

// NewEmailHandler is the constructor for EmailHandler, injected by Fx.
func NewEmailHandler(uc usecase.EmailUsecase, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{uc: uc, logger: logger}
}

type sendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type verifyCodeResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// SendCode issues a fresh verification code for the address.
func (h *EmailHandler) SendCode(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SendSignupCode(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "EMAIL_CODE_SENT"})
}

// VerifyCode checks the submitted code. Mismatch is a 200 with
// verified=false; an absent code surfaces as 410 through the error handler.
func (h *EmailHandler) VerifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.VerifyCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	body := verifyCodeResponse{Verified: output.Verified, Message: "EMAIL_VERIFIED"}
	if !output.Verified {
		body.Message = "INVALID_CODE"
	}

	return c.JSON(http.StatusOK, body)
}
