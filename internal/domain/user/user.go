package user

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleShipping = "shipping"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsStaff reports whether the role may act on other users' orders and
// returns (the shipping group and admins).
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleShipping
}
