package models

import "gorm.io/gorm"

// Valid values for User.Role. Role checks are exact matches: an Admin
// token does not satisfy a Driver-only gate.
const (
	RoleAdmin     = "Admin"
	RoleDriver    = "Driver"
	RolePassenger = "Passenger"
)

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Role     string `json:"role"`
}

// ValidRole reports whether role is one of the three enumerated values.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDriver, RolePassenger:
		return true
	}
	return false
}
