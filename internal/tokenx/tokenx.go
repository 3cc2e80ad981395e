// Package tokenx reads the claims of a bearer token without verifying it.
//
// The client never trusts these claims; the backend stays the only judge of
// a token's validity. They are used for display (whoami) and for a log line
// when a stored token is already past its expiry.
package tokenx

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/naijatax/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Info is what could be read from a token.
type Info struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// HasExpiry reports whether the token declared an exp claim.
func (i Info) HasExpiry() bool {
	return !i.ExpiresAt.IsZero()
}

// Expired reports whether exp lies before now. Tokens without exp never
// expire client-side.
func (i Info) Expired(now time.Time) bool {
	return i.HasExpiry() && !now.Before(i.ExpiresAt)
}

// Inspect parses token as a JWT without checking its signature.
// Opaque (non-JWT) tokens yield common.ErrInvalidToken.
func Inspect(token string) (Info, error) {
	claims := &jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	info := Info{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	return info, nil
}
