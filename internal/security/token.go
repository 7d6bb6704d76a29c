package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the displayable subset of the backend-issued access token.
// The console never verifies the signature (it has no key material); these
// claims inform display and expiry warnings only, never authorization.
type TokenClaims struct {
	Subject   string
	RoleID    int
	ExpiresAt time.Time
}

func InspectToken(tokenStr string) (*TokenClaims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if roleID, ok := claims["roleId"].(float64); ok {
		out.RoleID = int(roleID)
	}
	return out, nil
}

// Expired reports whether the token carries an exp claim in the past.
func (c *TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
