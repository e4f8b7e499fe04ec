package domain

import (
	"strings"
	"time"
)

// User is a person who owns quotations: a seller, technician or admin.
type User struct {
	ID           string
	Login        string
	Name         string
	Role         UserRole
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Validate() error {
	u.Login = strings.ToLower(strings.TrimSpace(u.Login))
	u.Name = strings.TrimSpace(u.Name)
	if u.Login == "" {
		return NewValidationError("login", ErrRequired)
	}
	if u.Name == "" {
		return NewValidationError("name", ErrNameRequired)
	}
	if !ValidUserRoles[u.Role] {
		return NewValidationError("role", ErrInvalidValue)
	}
	return nil
}
