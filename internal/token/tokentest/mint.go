// Package tokentest mints bearer tokens shaped like the identity provider's.
package tokentest

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ghaggin/policy-portal/internal/token"
)

const signingKey = "tokentest-signing-key"

// Mint signs a token for email with the given role, expiring at exp.
// A zero exp omits the claim.
func Mint(email, role string, exp time.Time) string {
	claims := token.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(time.Unix(1700000000, 0)),
		},
	}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		panic(err)
	}
	return s
}
