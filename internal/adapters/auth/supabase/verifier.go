package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vetco/internal/platform/httpclient"
	"vetco/internal/ports/auth"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Verify valida el access token contra GoTrue (GET /auth/v1/user) y
// devuelve los claims. Una llamada por token; el caching vive en la
// session cache del dominio accounts, no acá.
func (c *Client) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var u gotrueUser
	err := c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", c.headers(token), nil, &u)
	if err != nil {
		var herr *httpclient.HTTPError
		if errors.As(err, &herr) && (herr.StatusCode == http.StatusUnauthorized || herr.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrInvalidToken
		}
		return auth.Claims{}, fmt.Errorf("supabase: verify token: %w", err)
	}

	if u.ID == "" {
		return auth.Claims{}, ErrInvalidToken
	}
	return auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

var _ auth.AuthVerifier = (*Client)(nil)
