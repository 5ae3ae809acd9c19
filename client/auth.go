package client

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// HeaderProvider supplies pre-resolved authentication headers for a call.
// Call adds them to the request verbatim.
type HeaderProvider interface {
	Headers(ctx context.Context) (http.Header, error)
}

// StaticHeaders is a HeaderProvider returning the same headers on every call.
type StaticHeaders http.Header

func (h StaticHeaders) Headers(context.Context) (http.Header, error) {
	return http.Header(h).Clone(), nil
}

// BearerToken sends a pre-issued token as "Authorization: Bearer <token>".
type BearerToken struct {
	token string
}

func NewBearerToken(token string) BearerToken {
	return BearerToken{token: token}
}

func (t BearerToken) Headers(context.Context) (http.Header, error) {
	if t.token == "" {
		return nil, errors.New("bearer token is empty")
	}

	h := http.Header{}
	h.Set("Authorization", "Bearer "+t.token)

	return h, nil
}

// ExpiresAt reads the exp claim when the token is a JWT. The signature is not
// verified; this is only used to warn about tokens that are already stale.
func (t BearerToken) ExpiresAt() (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(t.token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
