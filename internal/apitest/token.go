package apitest

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims issued by the fake login endpoint.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// GenerateToken signs an HS256 token for subject valid for validityDuration.
// A negative duration yields an already expired token.
func GenerateToken(subject, name string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Name: name,
	})

	return token.SignedString(secretKey)
}

// SubjectFromToken verifies tokenString and returns its subject.
func SubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", common.ErrTokenExpired
	}
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
