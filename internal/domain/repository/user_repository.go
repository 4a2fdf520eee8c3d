// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"housing/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their numeric ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByLoginID retrieves a local account by its login identifier.
	FindByLoginID(ctx context.Context, loginID string) (*entity.User, error)

	// FindByAuthTypeAndProviderID retrieves a federated account by the
	// (auth type, provider id) pair. Lookup is never by email.
	FindByAuthTypeAndProviderID(ctx context.Context, authType entity.AuthType, providerID string) (*entity.User, error)

	// FindLocalByEmail retrieves a local account by email. Federated
	// accounts are excluded; their emails are not identity keys.
	FindLocalByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error
}
