package model

import (
	"errors"
	"strings"
)

// Role is the closed set of roles the backend issues.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleUser       Role = "USER"
)

// Valid reports whether the role is one the client knows about.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleUser:
		return true
	}
	return false
}

// User represents the authenticated principal as returned by the backend.
// Immutable on the client except by replacing the whole session.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate checks the credentials before any network call is made.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("email is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// RegisterData is the registration request payload. ConfirmPassword is a
// client-side check only and is never sent to the backend.
type RegisterData struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"-"`
}

// Validate mirrors the registration form checks: required fields, minimum
// password length and the confirmation match.
func (d RegisterData) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		return errors.New("last name is required")
	}
	if strings.TrimSpace(d.Email) == "" {
		return errors.New("email is required")
	}
	if len(d.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if d.ConfirmPassword != "" && d.Password != d.ConfirmPassword {
		return errors.New("passwords do not match")
	}
	return nil
}

// LoginResponse is the payload both /auth/login and /auth/register return
// inside the backend's data envelope.
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
