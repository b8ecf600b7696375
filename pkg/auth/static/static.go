package static

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/portrait/pkg/auth"
)

var _ auth.Provider = (*Provider)(nil)

// Provider accepts requests carrying a single shared bearer token.
type Provider struct {
	token string
	user  string
}

func New(token string) (*Provider, error) {
	return &Provider{
		token: token,
		user:  "static",
	}, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	if p.token == "" {
		return ctx, nil
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")

	if !ok {
		return ctx, errors.New("missing bearer token")
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(p.token)) != 1 {
		return ctx, errors.New("invalid token")
	}

	return context.WithValue(ctx, auth.UserContextKey, p.user), nil
}
