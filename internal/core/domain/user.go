// Package domain defines the core domain models for custrack.
package domain

import (
	"strings"
	"time"
)

// User is the authenticated user identity as returned by the server.
type User struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Credentials carries a username/password pair for login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// LoginResponse is the server response to POST /api/auth/login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	User      User   `json:"user"`
}

// RefreshResponse is the server response to POST /api/auth/refresh.
type RefreshResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// LogoutResponse is the server response to POST /api/auth/logout.
type LogoutResponse struct {
	Message string `json:"message"`
}
