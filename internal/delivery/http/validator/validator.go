// Package validator plugs go-playground/validator into echo's binding
// pipeline.
package validator

import (
	domainerrors "housing/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a shared validator instance for echo.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates the echo validator.
func New() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Failures surface as the domain's
// validation error so the error handler renders a 400.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
