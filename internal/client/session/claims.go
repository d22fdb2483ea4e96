package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client reads from its access token. The signature is
// the backend's business; the client only needs the expiry and identity.
type Claims struct {
	Subject   string
	Name      string
	ExpiresAt time.Time // zero when the token carries no exp
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// ParseClaims decodes token without verifying its signature.
func ParseClaims(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	c := Claims{Subject: tc.Subject, Name: tc.Name}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}

// Expired reports whether the claims are past their expiry at now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
