// Package session owns the authentication lifecycle for the tracker client.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// trackerClaims mirrors the claims the tracker server puts in its
// bearer tokens.
type trackerClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// TokenExpiry reads the expiry claim out of the current token. The
// client holds no signing key, so the claims are read without
// verification; the server remains the authority on validity. Opaque
// or claim-less tokens report ok=false.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := new(trackerClaims)
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// NeedsRefresh reports whether the token expires within the given
// window. An unreadable expiry never triggers a refresh; the 401 path
// handles genuinely expired tokens.
func (m *Manager) NeedsRefresh(window time.Duration) bool {
	exp, ok := m.TokenExpiry()
	if !ok {
		return false
	}
	return time.Until(exp) < window
}
