package usecase

import (
	"context"

	"housing/internal/domain/entity"
)

// SignupInput defines the data required to register a new local account.
type SignupInput struct {
	LoginID  string
	Password string
	Email    string
	Name     string
}

// SignupOutput returns the newly created user's basic information.
type SignupOutput struct {
	User *entity.User
}

// UserUsecase defines the interface for user-account business operations.
type UserUsecase interface {
	// Signup registers a local account. The email must carry a live
	// verified marker; the marker is consumed on success.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
}
