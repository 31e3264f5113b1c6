// Package auth implements the credential primitives of the server: password
// hashing and signed session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/groupspend/groupspend/internal/common"
)

// GenerateToken issues an HS256-signed JWT carrying the subject and an
// absolute expiry of now+ttl.
func GenerateToken(subject string, secretKey []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies the token signature and expiry and returns the
// subject claim.
//
// The signature is checked before any embedded field is trusted, so a
// tampered token always surfaces as ErrInvalidToken, never as ErrTokenExpired.
// An expired but well-signed token is ErrTokenExpired. A well-signed,
// unexpired token without a subject is ErrMalformedClaims.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", common.ErrInvalidToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		default:
			return "", common.ErrInvalidToken
		}
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", common.ErrMalformedClaims
	}

	return claims.Subject, nil
}
