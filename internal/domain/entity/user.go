// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core entity in the system, representing a single account.
// An account is either local (login id + password hash) or federated
// (auth type + provider id); the token layer only cares about ID and Role.
type User struct {
	ID           int64    // Numeric identifier; the subject of every issued token.
	LoginID      string   // Local login identifier. Empty for federated accounts.
	PasswordHash string   // Bcrypt hash of the local password. Empty for federated accounts.
	Email        string   // Contact email. May be empty for federated accounts that withhold it.
	Name         string   // Display name. Federated accounts get a generated fallback when missing.
	Role         Role     // The account's role, embedded in access tokens.
	AuthType     AuthType // How this account authenticates (local, google, kakao).
	ProviderID   string   // The external provider's user id. Empty for local accounts.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsFederated reports whether this account was created through an
// external identity provider.
func (u *User) IsFederated() bool {
	return u.AuthType != AuthTypeLocal
}
