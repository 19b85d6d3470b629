// Package auth signs the session cookie. The cookie carries the opaque
// session token inside an HS256 JWT so tampered or foreign cookies are
// rejected before any store lookup; the session record stays authoritative.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mutix31/Sharebin/internal/common"
)

// Claims carries the session token next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	SessionToken string `json:"sid"`
}

// GenerateToken signs sessionToken with an expiry matching the session.
func GenerateToken(sessionToken string, secretKey []byte, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		SessionToken: sessionToken,
	})

	return token.SignedString(secretKey)
}

// GetSessionToken verifies tokenString and returns the session token inside.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification common.ErrInvalidToken.
func GetSessionToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.SessionToken == "" {
		return "", common.ErrInvalidToken
	}

	return claims.SessionToken, nil
}
