package enums

import "fmt"

// Role is the account-level role of a user.
type Role string

const (
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
)

var validRoles = []Role{RoleArtist, RoleAdmin}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
