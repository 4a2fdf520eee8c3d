package entity

// AuthType identifies how an account authenticates. Federated lookups key
// on (AuthType, ProviderID), never on email, so two providers reporting the
// same email still produce two distinct accounts.
type AuthType string

const (
	// AuthTypeLocal indicates a login-id/password account.
	AuthTypeLocal AuthType = "LOCAL"
	// AuthTypeGoogle indicates an account created through Google sign-in.
	AuthTypeGoogle AuthType = "GOOGLE"
	// AuthTypeKakao indicates an account created through Kakao sign-in.
	AuthTypeKakao AuthType = "KAKAO"
)

// String returns the string representation of the AuthType.
func (t AuthType) String() string {
	return string(t)
}

// IsValid checks if the AuthType is a valid value.
func (t AuthType) IsValid() bool {
	switch t {
	case AuthTypeLocal, AuthTypeGoogle, AuthTypeKakao:
		return true
	default:
		return false
	}
}
