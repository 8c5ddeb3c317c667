// Package token reads the claims the identity provider embeds in the bearer
// token. Signatures are not checked here; the policy backend verifies every
// token it receives.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleClaim is the custom attribute the identity provider uses for the role.
const RoleClaim = "custom:role"

var (
	ErrMissing   = errors.New("token missing")
	ErrMalformed = errors.New("token malformed")
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"custom:role"`
	jwt.RegisteredClaims
}

// Expired reports whether the exp claim is before now. Tokens without an
// exp claim are treated as not expired.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now)
}

// Present reports whether raw looks like a stored token at all.
func Present(raw string) bool {
	switch raw {
	case "", "null", "undefined":
		return false
	}
	return true
}

var parser = jwt.NewParser()

func Decode(raw string) (*Claims, error) {
	if !Present(raw) {
		return nil, ErrMissing
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return claims, nil
}
