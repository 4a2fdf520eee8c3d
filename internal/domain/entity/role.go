// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUser indicates a regular user role.
	RoleUser Role = "USER"
	// RoleAdmin indicates an administrator role.
	RoleAdmin Role = "ADMIN"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleFromString converts a claim string back to a Role. Unknown values
// map to RoleUser so a forged role claim never escalates privileges.
func RoleFromString(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleUser
	}

	return role
}
