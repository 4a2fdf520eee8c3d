package service

import (
	"context"

	"housing/internal/domain/entity"
)

// OAuthUser is the provider-neutral identity produced by attribute
// normalization. ProviderID is the only mandatory field.
type OAuthUser struct {
	Provider   entity.AuthType
	ProviderID string
	Email      string
	Name       string
}

// OAuthClient talks to one external identity provider. One implementation
// per provider; the set of providers is a fixed allow-list.
type OAuthClient interface {
	// Provider returns the auth type this client serves.
	Provider() entity.AuthType

	// BuildAuthorizationURL returns the provider's consent page URL with
	// the given CSRF state parameter.
	BuildAuthorizationURL(state string) string

	// FetchUser exchanges the authorization code and returns the
	// normalized identity.
	FetchUser(ctx context.Context, code string) (*OAuthUser, error)
}
