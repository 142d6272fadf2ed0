// Package auth issues and verifies the access tokens the API uses for
// authentication, and hashes user passwords.
//
// Tokens are HS256-signed JWTs carrying the user's ID, email, and role.
// The signing secret is passed in explicitly rather than read from the
// environment here — configuration is a collaborator, not ambient state.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devanshm/turfbook/internal/models"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned when a token fails signature or claims checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload for an access token.
// Subject (the standard "sub" field) carries the user's UUID.
type Claims struct {
	jwt.RegisteredClaims
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// IssueToken signs a token for the given user, valid for TokenTTL.
func IssueToken(user *models.User, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Email: user.Email,
		Role:  user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a token's signature and expiry and returns its claims
// along with the user ID parsed from the subject.
func ParseToken(tokenStr, secret string) (*Claims, uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, uuid.Nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, ErrInvalidToken
	}
	return claims, userID, nil
}
