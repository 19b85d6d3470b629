package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mutix31/Sharebin/internal/common"
)

// TicketClaims authorizes one payload download after a view was admitted.
// It stands in for a presigned URL when the store cannot presign.
type TicketClaims struct {
	jwt.RegisteredClaims
	ArtifactID string `json:"aid"`
}

const ticketAudience = "sharebin-download"

// GenerateDownloadTicket signs a download ticket for artifactID.
func GenerateDownloadTicket(artifactID string, secretKey []byte, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TicketClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{ticketAudience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		ArtifactID: artifactID,
	})
	return token.SignedString(secretKey)
}

// VerifyDownloadTicket checks that ticket was issued for artifactID and is
// still valid.
func VerifyDownloadTicket(ticket, artifactID string, secretKey []byte) error {
	claims := &TicketClaims{}

	_, err := jwt.ParseWithClaims(ticket, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithAudience(ticketAudience))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.ArtifactID != artifactID {
		return common.ErrInvalidToken
	}
	return nil
}
